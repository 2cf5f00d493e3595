package strata

// SpinItem is the per-layer working state of the spin processor. An item is
// only created for layers whose clamped RPM is positive; a layer without an
// item is simply never rotated by spin.
type SpinItem struct {
	drawable Drawable

	// baseRotation is the rotation at item creation. It is fixed for the
	// item's lifetime and never re-sampled; Reset snaps back to it.
	baseRotation float64

	rpm       float64
	radPerSec float64
	direction Direction
	enabled   bool
}

// SpinProcessor rotates sprites about their own centers at a configured
// angular rate. Per frame:
//
//	rotation = base + direction * radiansPerSecond * elapsed
//
// where elapsed accumulates monotonically from processor init, not from the
// wall clock. Control operations address items by layer id; operations on
// unknown ids are no-ops.
type SpinProcessor struct {
	items   map[string]*SpinItem
	order   []string
	elapsed float64
}

// NewSpinProcessor creates an empty spin processor.
func NewSpinProcessor() *SpinProcessor {
	return &SpinProcessor{items: make(map[string]*SpinItem)}
}

// Init builds spin items from the layer set, discarding any previous items.
// Layers with a clamped RPM of 0 get no item.
func (p *SpinProcessor) Init(layers []BuiltLayer) {
	p.items = make(map[string]*SpinItem)
	p.order = p.order[:0]
	p.elapsed = 0

	for _, layer := range layers {
		cfg := layer.Config.Spin
		if cfg == nil {
			continue
		}
		rpm := ClampRPM(cfg.RPM)
		if rpm <= 0 {
			continue
		}
		p.items[layer.ID] = &SpinItem{
			drawable:     layer.Drawable,
			baseRotation: layer.Drawable.Rotation(),
			rpm:          rpm,
			radPerSec:    RPMToRadPerSec(rpm),
			direction:    parseDirection(cfg.Direction),
			enabled:      true,
		}
		p.order = append(p.order, layer.ID)
	}
}

// Tick advances the shared elapsed time and writes each enabled item's
// rotation.
func (p *SpinProcessor) Tick(dt float64) {
	if len(p.items) == 0 {
		return
	}
	p.elapsed += dt
	for _, id := range p.order {
		item := p.items[id]
		if !item.enabled {
			continue
		}
		item.drawable.SetRotation(item.baseRotation + float64(item.direction)*item.radPerSec*p.elapsed)
	}
}

// Resize is a no-op: rotation is resolution-independent.
func (p *SpinProcessor) Resize(width, height float64) {}

// Animating reports whether any enabled item exists.
func (p *SpinProcessor) Animating() bool {
	for _, item := range p.items {
		if item.enabled {
			return true
		}
	}
	return false
}

// Dispose clears all items.
func (p *SpinProcessor) Dispose() {
	p.items = make(map[string]*SpinItem)
	p.order = nil
}

// --- Control operations ---

// RPM returns the current RPM for a layer, 0 for unknown ids.
func (p *SpinProcessor) RPM(id string) float64 {
	if item, ok := p.items[id]; ok {
		return item.rpm
	}
	return 0
}

// SetRPM re-clamps and applies a new angular speed. The item's enabled flag
// follows the result: 0 disables, anything positive enables.
func (p *SpinProcessor) SetRPM(id string, rpm float64) {
	item, ok := p.items[id]
	if !ok {
		return
	}
	item.rpm = ClampRPM(rpm)
	item.radPerSec = RPMToRadPerSec(item.rpm)
	item.enabled = item.rpm > 0
}

// SetEnabled toggles an item without touching its rate.
func (p *SpinProcessor) SetEnabled(id string, enabled bool) {
	if item, ok := p.items[id]; ok {
		item.enabled = enabled
	}
}

// SetDirection flips the rotation sign. The base rotation is untouched.
func (p *SpinProcessor) SetDirection(id string, dir Direction) {
	if item, ok := p.items[id]; ok {
		item.direction = dir
	}
}

// Reset snaps every item's rotation back to its base rotation and zeroes the
// elapsed time. This is a discontinuous jump, not an animated transition.
func (p *SpinProcessor) Reset() {
	p.elapsed = 0
	for _, id := range p.order {
		item := p.items[id]
		item.drawable.SetRotation(item.baseRotation)
	}
}
