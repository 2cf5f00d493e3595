package strata

// TransformProcessor computes each layer's static placement from its
// configuration: percentage position to stage pixels, percentage scale to a
// linear multiplier, degrees to radians, and the z index implied by the
// layer ordering. It is a pure function of configuration and stage size, so
// a resize simply recomputes everything from scratch — absolute pixel
// coordinates are rederived, never interpolated.
//
// Transform runs first in the pipeline. It does no per-frame work; spin,
// orbit, and effects overwrite its output for the properties they animate.
type TransformProcessor struct {
	layers []BuiltLayer
	width  float64
	height float64
}

// NewTransformProcessor creates a transform processor for the given stage
// size in pixels.
func NewTransformProcessor(width, height float64) *TransformProcessor {
	return &TransformProcessor{width: width, height: height}
}

// Init captures the layer set and applies the static layout. The layer slice
// is expected to already be in render order (see SortLayersByZIndex); the
// slice index doubles as the drawable's z index.
func (p *TransformProcessor) Init(layers []BuiltLayer) {
	p.layers = layers
	p.apply()
}

// Tick is a no-op: static layout has no time dependence.
func (p *TransformProcessor) Tick(dt float64) {}

// Resize recomputes the full layout against the new stage size.
func (p *TransformProcessor) Resize(width, height float64) {
	p.width = width
	p.height = height
	p.apply()
}

// Animating always returns false; the transform processor never needs ticks.
func (p *TransformProcessor) Animating() bool { return false }

// Dispose drops the layer references.
func (p *TransformProcessor) Dispose() {
	p.layers = nil
}

// apply writes position, scale, rotation, and z index for every layer.
func (p *TransformProcessor) apply() {
	for i, layer := range p.layers {
		x, y := p.Project(layer.Config.Position)
		d := layer.Drawable
		d.SetPosition(x, y)
		d.SetScale(layer.Config.ScalePct() / 100)
		d.SetRotation(DegToRad(layer.Config.Angle))
		d.SetZIndex(i)
	}
}

// Project converts a percentage position to stage pixel coordinates.
// Percentages are unbounded: values outside [0, 100] land off-stage.
func (p *TransformProcessor) Project(pct Vec2) (x, y float64) {
	return p.width * pct.X / 100, p.height * pct.Y / 100
}
