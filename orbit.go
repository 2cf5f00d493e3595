package strata

import "math"

// OrbitItem is the per-layer working state of the orbit processor.
//
// The orbit radius is never configured directly. The layer's configured
// position is treated as a point relative to the orbit center and projected
// onto the stage border along the ray from the center through it; the
// distance from the center to the projected point becomes the radius. This
// lets authors place a layer visually near where its orbit should cross the
// frame edge instead of computing trigonometry by hand.
type OrbitItem struct {
	drawable Drawable

	direction Direction
	rpm       float64
	radPerSec float64

	centerPct Vec2 // percent, clamped to [0, 100]
	centerX   float64
	centerY   float64

	startPct Vec2 // the layer's configured position, fixed for life
	radius   float64

	basePhase float64 // radians

	policy       OrientPolicy
	orientOffset float64 // radians

	// spinSnapshot is the layer's clamped spin RPM captured once at item
	// creation. OrientAuto defers to an existing spin animation: a positive
	// snapshot suppresses orientation writes for good, even if the spin
	// processor is reconfigured later.
	spinSnapshot float64

	active bool
}

// Radius returns the current orbit radius in pixels.
func (it *OrbitItem) Radius() float64 { return it.radius }

// Center returns the current orbit center in pixels.
func (it *OrbitItem) Center() (x, y float64) { return it.centerX, it.centerY }

// BasePhase returns the current base phase angle in radians.
func (it *OrbitItem) BasePhase() float64 { return it.basePhase }

// Active reports whether the item is currently moving its sprite.
func (it *OrbitItem) Active() bool { return it.active }

// Policy returns the item's orientation policy.
func (it *OrbitItem) Policy() OrientPolicy { return it.policy }

// OrbitProcessor moves sprites along circles around (possibly off-center)
// points. Per frame:
//
//	angle    = basePhase + direction * radiansPerSecond * elapsed
//	position = center + radius * (cos angle, sin angle)
//
// Orientation policies decide whether the sprite's rotation follows the
// angle (see OrientPolicy). Control operations address items by layer id and
// are no-ops for unknown ids.
type OrbitProcessor struct {
	items   map[string]*OrbitItem
	order   []string
	elapsed float64
	width   float64
	height  float64
}

// NewOrbitProcessor creates an orbit processor for the given stage size.
func NewOrbitProcessor(width, height float64) *OrbitProcessor {
	return &OrbitProcessor{
		items:  make(map[string]*OrbitItem),
		width:  width,
		height: height,
	}
}

// Init builds orbit items from the layer set, discarding any previous items.
// A layer gets an item only when its clamped orbit RPM is positive and its
// derived radius is positive; a radius-0 orbit would be inert, so the item is
// never created.
func (p *OrbitProcessor) Init(layers []BuiltLayer) {
	p.items = make(map[string]*OrbitItem)
	p.order = p.order[:0]
	p.elapsed = 0

	for _, layer := range layers {
		cfg := layer.Config.Orbit
		if cfg == nil {
			continue
		}
		rpm := ClampRPM(cfg.RPM)
		if rpm <= 0 {
			continue
		}

		item := &OrbitItem{
			drawable:     layer.Drawable,
			direction:    parseDirection(cfg.Direction),
			rpm:          rpm,
			radPerSec:    RPMToRadPerSec(rpm),
			centerPct:    clampPct(cfg.CenterPct()),
			startPct:     layer.Config.Position,
			policy:       parseOrient(cfg.Orient),
			orientOffset: DegToRad(cfg.OrientAngle),
			spinSnapshot: layer.Config.SpinRPM(),
		}
		item.centerX = p.width * item.centerPct.X / 100
		item.centerY = p.height * item.centerPct.Y / 100

		projX, projY := p.projectStart(item)
		item.radius = Distance(item.centerX, item.centerY, projX, projY)
		if item.radius <= 0 {
			continue
		}

		if cfg.Phase != nil {
			item.basePhase = DegToRad(normalizeDeg(*cfg.Phase))
		} else {
			// Start exactly where the layer was statically placed.
			item.basePhase = math.Atan2(projY-item.centerY, projX-item.centerX)
		}

		item.active = true
		p.items[layer.ID] = item
		p.order = append(p.order, layer.ID)
	}
}

// projectStart projects the item's configured start position onto the stage
// border from the item's current center.
func (p *OrbitProcessor) projectStart(item *OrbitItem) (x, y float64) {
	sx := p.width * item.startPct.X / 100
	sy := p.height * item.startPct.Y / 100
	return ProjectToRectBorder(item.centerX, item.centerY, sx, sy, p.width, p.height)
}

// Tick advances the shared elapsed time and moves every active item.
func (p *OrbitProcessor) Tick(dt float64) {
	if len(p.items) == 0 {
		return
	}
	p.elapsed += dt
	for _, id := range p.order {
		item := p.items[id]
		if !item.active {
			continue
		}
		angle := item.angleAt(p.elapsed)
		sin, cos := math.Sincos(angle)
		item.drawable.SetPosition(item.centerX+item.radius*cos, item.centerY+item.radius*sin)

		switch item.policy {
		case OrientOverride:
			item.drawable.SetRotation(angle + item.orientOffset)
		case OrientAuto:
			if item.spinSnapshot <= 0 {
				item.drawable.SetRotation(angle + item.orientOffset)
			}
		}
	}
}

// angleAt evaluates the per-frame angle formula at the given elapsed time.
func (it *OrbitItem) angleAt(elapsed float64) float64 {
	return it.basePhase + float64(it.direction)*it.radPerSec*elapsed
}

// Resize recomputes every item's center and radius against the new stage
// size while preserving its current on-orbit angular position, so a resize
// never produces a visual jump by itself.
func (p *OrbitProcessor) Resize(width, height float64) {
	p.width = width
	p.height = height
	for _, id := range p.order {
		p.recompute(p.items[id])
	}
}

// recompute re-derives an item's pixel center and projected radius, then
// adjusts basePhase so that re-evaluating the per-frame formula at the
// current elapsed time reproduces the sprite's present angle. The present
// angle is read from the drawable's position relative to the old center;
// when the sprite sits exactly on the center (degenerate atan2 input) the
// formula value is used instead.
func (p *OrbitProcessor) recompute(item *OrbitItem) {
	px, py := item.drawable.Position()
	dx, dy := px-item.centerX, py-item.centerY

	current := item.angleAt(p.elapsed)
	if dx != 0 || dy != 0 {
		current = math.Atan2(dy, dx)
	}

	item.centerX = p.width * item.centerPct.X / 100
	item.centerY = p.height * item.centerPct.Y / 100

	projX, projY := p.projectStart(item)
	item.radius = Distance(item.centerX, item.centerY, projX, projY)
	item.active = item.radius > 0 && item.rpm > 0

	item.basePhase = current - float64(item.direction)*item.radPerSec*p.elapsed
}

// Animating reports whether any active item exists.
func (p *OrbitProcessor) Animating() bool {
	for _, item := range p.items {
		if item.active {
			return true
		}
	}
	return false
}

// Dispose clears all items.
func (p *OrbitProcessor) Dispose() {
	p.items = make(map[string]*OrbitItem)
	p.order = nil
}

// --- Control operations ---

// Item returns the orbit item for a layer id.
func (p *OrbitProcessor) Item(id string) (*OrbitItem, bool) {
	item, ok := p.items[id]
	return item, ok
}

// Items returns the currently active items in layer order.
func (p *OrbitProcessor) Items() []*OrbitItem {
	active := make([]*OrbitItem, 0, len(p.order))
	for _, id := range p.order {
		if item := p.items[id]; item.active {
			active = append(active, item)
		}
	}
	return active
}

// SetRPM re-clamps and applies a new angular speed. The active flag follows
// both the new RPM and the current radius.
func (p *OrbitProcessor) SetRPM(id string, rpm float64) {
	item, ok := p.items[id]
	if !ok {
		return
	}
	item.rpm = ClampRPM(rpm)
	item.radPerSec = RPMToRadPerSec(item.rpm)
	item.active = item.rpm > 0 && item.radius > 0
}

// SetDirection flips the orbital travel sign.
func (p *OrbitProcessor) SetDirection(id string, dir Direction) {
	if item, ok := p.items[id]; ok {
		item.direction = dir
	}
}

// UpdateCenter moves an item's orbit center to new stage percentages
// (clamped to [0, 100]) and immediately recomputes radius and phase with the
// same jump-free algorithm used on resize.
func (p *OrbitProcessor) UpdateCenter(id string, pctX, pctY float64) {
	item, ok := p.items[id]
	if !ok {
		return
	}
	item.centerPct = clampPct(Vec2{X: pctX, Y: pctY})
	p.recompute(item)
}

// --- Helpers ---

// clampPct clamps both components of a percentage pair to [0, 100].
func clampPct(v Vec2) Vec2 {
	return Vec2{X: Clamp(v.X, 0, 100), Y: Clamp(v.Y, 0, 100)}
}

// normalizeDeg maps any angle in degrees to [0, 360). Non-finite input
// collapses to 0, per the configuration-laxity policy.
func normalizeDeg(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
