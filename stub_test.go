package strata

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

// fakeDrawable is an in-memory Drawable for driving the processors without a
// display. It records enough state to assert on accumulation semantics.
type fakeDrawable struct {
	x, y     float64
	scale    float64
	rotation float64
	alpha    float64
	tint     Color
	zIndex   int

	auras        []*fakeDrawable
	disposed     bool
	panicDispose bool

	rotationWrites int
}

func newFakeDrawable() *fakeDrawable {
	return &fakeDrawable{scale: 1, alpha: 1, tint: ColorWhite}
}

func (f *fakeDrawable) Position() (float64, float64) { return f.x, f.y }
func (f *fakeDrawable) SetPosition(x, y float64)     { f.x, f.y = x, y }
func (f *fakeDrawable) Scale() float64               { return f.scale }
func (f *fakeDrawable) SetScale(s float64)           { f.scale = s }
func (f *fakeDrawable) Rotation() float64            { return f.rotation }
func (f *fakeDrawable) SetRotation(r float64) {
	f.rotation = r
	f.rotationWrites++
}
func (f *fakeDrawable) Alpha() float64     { return f.alpha }
func (f *fakeDrawable) SetAlpha(a float64) { f.alpha = a }
func (f *fakeDrawable) SetTint(c Color)    { f.tint = c }
func (f *fakeDrawable) SetZIndex(z int)    { f.zIndex = z }

func (f *fakeDrawable) SpawnAura() Drawable {
	aura := newFakeDrawable()
	aura.x, aura.y = f.x, f.y
	aura.scale = f.scale
	aura.rotation = f.rotation
	aura.zIndex = f.zIndex
	f.auras = append(f.auras, aura)
	return aura
}

func (f *fakeDrawable) Dispose() {
	if f.panicDispose {
		panic("dispose failed")
	}
	f.disposed = true
}

// fakeFactory builds fake drawables and remembers them by layer id.
type fakeFactory struct {
	drawables map[string]*fakeDrawable
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{drawables: make(map[string]*fakeDrawable)}
}

func (f *fakeFactory) factory(layer LayerConfig) (Drawable, error) {
	d := newFakeDrawable()
	f.drawables[layer.ID] = d
	return d, nil
}

// testEnv returns a deterministic Env: pointer pinned to the center,
// viewport fixed, capability forced by the argument.
func testEnv(capable bool) *Env {
	return &Env{
		Pointer:    func() (float64, float64) { return 0.5, 0.5 },
		Viewport:   func() (float64, float64) { return DefaultStageWidth, DefaultStageHeight },
		Capability: func() bool { return capable },
	}
}

// buildLayers wraps configs in BuiltLayers with fresh fake drawables.
func buildLayers(cfgs ...LayerConfig) ([]BuiltLayer, []*fakeDrawable) {
	layers := make([]BuiltLayer, 0, len(cfgs))
	fakes := make([]*fakeDrawable, 0, len(cfgs))
	for _, cfg := range cfgs {
		d := newFakeDrawable()
		layers = append(layers, BuiltLayer{ID: cfg.ID, Config: cfg, Drawable: d})
		fakes = append(fakes, d)
	}
	return layers, fakes
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
