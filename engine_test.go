package strata

import (
	"errors"
	"math"
	"testing"
	"time"
)

var engineEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func staticScene() SceneConfig {
	return SceneConfig{Layers: []LayerConfig{
		{ID: "bg", Position: Vec2{X: 50, Y: 50}},
		{ID: "moon07", Position: Vec2{X: 25, Y: 25}, Scale: floatPtr(50)},
	}}
}

func spinningScene() SceneConfig {
	return SceneConfig{Layers: []LayerConfig{
		{ID: "bg", Position: Vec2{X: 50, Y: 50}},
		{ID: "planet03", Position: Vec2{X: 70, Y: 50}, Spin: &SpinConfig{RPM: 30}},
	}}
}

func newTestEngine(t *testing.T, cfg SceneConfig) (*Engine, *fakeFactory) {
	t.Helper()
	f := newFakeFactory()
	e, err := NewEngine(cfg, f.factory, WithEnv(testEnv(false)))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Dispose)
	return e, f
}

func TestEngineStaticSceneNeverStartsClock(t *testing.T) {
	e, f := newTestEngine(t, staticScene())

	if e.Animating() {
		t.Error("static scene reported animating")
	}
	if e.Clock().Running() {
		t.Error("clock started for a static scene")
	}

	// Layout still happened at build time.
	assertNear(t, "bg.x", f.drawables["bg"].x, 512)
	assertNear(t, "moon.y", f.drawables["moon07"].y, 256)
	assertNear(t, "moon.scale", f.drawables["moon07"].scale, 0.5)

	// Pumping a static scene stays a no-op.
	e.Pump(engineEpoch)
	if e.Clock().Running() {
		t.Error("pump started the clock without animatable content")
	}
}

func TestEnginePumpAdvancesSpin(t *testing.T) {
	e, f := newTestEngine(t, spinningScene())

	if !e.Clock().Running() {
		t.Fatal("clock not started for an animated scene")
	}

	e.Pump(engineEpoch) // first pump observes zero delta
	e.Pump(engineEpoch.Add(time.Second))

	// 30 RPM clockwise for one second is π radians.
	assertNearTol(t, "planet rotation", f.drawables["planet03"].rotation, math.Pi, 1e-9)
	assertNear(t, "bg rotation", f.drawables["bg"].rotation, 0)
}

func TestEngineClockRestartsAfterControlOp(t *testing.T) {
	e, f := newTestEngine(t, spinningScene())

	// Drive the scene static through the control surface, stop the clock.
	e.Spin().SetRPM("planet03", 0)
	e.Clock().Stop()
	if e.Animating() {
		t.Fatal("rpm 0 should leave nothing animating")
	}

	e.Spin().SetRPM("planet03", 60)
	e.Pump(engineEpoch) // lazily restarts the clock
	if !e.Clock().Running() {
		t.Error("pump did not restart the clock after re-animation")
	}

	e.Pump(engineEpoch.Add(500 * time.Millisecond))
	assertNearTol(t, "rotation", f.drawables["planet03"].rotation, math.Pi, 1e-9)
}

func TestEngineLayerOrderFollowsZKeys(t *testing.T) {
	cfg := SceneConfig{Layers: []LayerConfig{
		{ID: "fog20"},
		{ID: "bg"},
		{ID: "planet05"},
	}}
	e, _ := newTestEngine(t, cfg)

	want := []string{"bg", "planet05", "fog20"}
	layers := e.Layers()
	if len(layers) != len(want) {
		t.Fatalf("got %d layers", len(layers))
	}
	for i, id := range want {
		if layers[i].ID != id {
			t.Errorf("layers[%d] = %q, want %q", i, layers[i].ID, id)
		}
	}

	if _, ok := e.Layer("planet05"); !ok {
		t.Error("Layer lookup failed")
	}
	if _, ok := e.Layer("ghost"); ok {
		t.Error("Layer lookup invented a layer")
	}
}

func TestEngineResizePropagates(t *testing.T) {
	cfg := SceneConfig{Layers: []LayerConfig{
		{ID: "a", Position: Vec2{X: 50, Y: 50}},
	}}
	e, f := newTestEngine(t, cfg)

	e.Resize(2048, 512)
	w, h := e.Size()
	assertNear(t, "width", w, 2048)
	assertNear(t, "height", h, 512)
	assertNear(t, "a.x", f.drawables["a"].x, 1024)
	assertNear(t, "a.y", f.drawables["a"].y, 256)

	// Degenerate sizes are ignored.
	e.Resize(0, 100)
	w, _ = e.Size()
	assertNear(t, "width unchanged", w, 2048)
}

func TestEngineDuplicateLayerID(t *testing.T) {
	cfg := SceneConfig{Layers: []LayerConfig{{ID: "a"}, {ID: "a"}}}
	f := newFakeFactory()
	if _, err := NewEngine(cfg, f.factory, WithEnv(testEnv(false))); err == nil {
		t.Fatal("duplicate id not rejected")
	}
}

func TestEngineEmptyLayerID(t *testing.T) {
	cfg := SceneConfig{Layers: []LayerConfig{{ID: ""}}}
	f := newFakeFactory()
	if _, err := NewEngine(cfg, f.factory, WithEnv(testEnv(false))); err == nil {
		t.Fatal("empty id not rejected")
	}
}

func TestEngineFactoryErrorAborts(t *testing.T) {
	boom := errors.New("texture upload failed")
	built := []*fakeDrawable{}
	factory := func(layer LayerConfig) (Drawable, error) {
		if layer.ID == "bad" {
			return nil, boom
		}
		d := newFakeDrawable()
		built = append(built, d)
		return d, nil
	}

	cfg := SceneConfig{Layers: []LayerConfig{{ID: "a"}, {ID: "bad"}, {ID: "c"}}}
	_, err := NewEngine(cfg, factory, WithEnv(testEnv(false)))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped factory error", err)
	}
	// Layers built before the failure are cleaned up.
	for i, d := range built {
		if !d.disposed {
			t.Errorf("drawable %d leaked after aborted build", i)
		}
	}
}

func TestEngineDispose(t *testing.T) {
	f := newFakeFactory()
	e, err := NewEngine(spinningScene(), f.factory, WithEnv(testEnv(false)))
	if err != nil {
		t.Fatal(err)
	}

	e.Dispose()
	if e.Clock().Running() {
		t.Error("clock still running after dispose")
	}
	for id, d := range f.drawables {
		if !d.disposed {
			t.Errorf("drawable %q not disposed", id)
		}
	}

	e.Dispose() // idempotent
	e.Pump(engineEpoch)
	e.Resize(10, 10) // both must be no-ops after dispose
}

func TestEngineStageDefaults(t *testing.T) {
	e, _ := newTestEngine(t, SceneConfig{Layers: []LayerConfig{{ID: "a"}}})
	w, h := e.Size()
	assertNear(t, "default width", w, DefaultStageWidth)
	assertNear(t, "default height", h, DefaultStageHeight)
}
