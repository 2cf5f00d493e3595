package strata

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DrawableFactory creates the drawable for one layer. The factory is the
// boundary to the host's asset/rendering world: strata never loads images or
// touches textures itself. An error aborts the scene build.
type DrawableFactory func(layer LayerConfig) (Drawable, error)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithEnv injects the platform environment. Defaults to [DefaultEnv].
func WithEnv(env *Env) Option {
	return func(e *Engine) { e.env = env }
}

// WithLogger injects a structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// Engine is the composition point of the animation layer. It builds the
// scene's layers through a DrawableFactory, owns the ordered processor
// pipeline (Transform, Spin, Orbit, Effect), and drives the lifecycle:
// init at construction, tick per frame, resize on viewport changes, dispose
// at teardown.
//
// Everything runs on the caller's thread. Dispose must not be invoked from
// within a tick callback of the same engine instance.
type Engine struct {
	cfg    SceneConfig
	layers []BuiltLayer
	byID   map[string]int

	transform *TransformProcessor
	spin      *SpinProcessor
	orbit     *OrbitProcessor
	effects   *EffectProcessor
	procs     []Processor

	clock *Clock
	env   *Env
	log   *zap.Logger

	width  float64
	height float64

	disposed bool
}

// NewEngine builds a scene from the config: layers are ordered by their z
// key, drawables are created through the factory, and every processor is
// initialized against the built layer set. The clock starts only when at
// least one processor has animatable content; a fully static scene never
// ticks.
func NewEngine(cfg SceneConfig, factory DrawableFactory, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.env == nil {
		e.env = DefaultEnv()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}

	e.width, e.height = cfg.Stage.Size()

	ordered := SortLayersByZIndex(cfg.Layers)
	e.byID = make(map[string]int, len(ordered))
	for _, layer := range ordered {
		if layer.ID == "" {
			e.disposeLayers()
			return nil, fmt.Errorf("strata: layer with empty id")
		}
		if _, dup := e.byID[layer.ID]; dup {
			e.disposeLayers()
			return nil, fmt.Errorf("strata: duplicate layer id %q", layer.ID)
		}
		d, err := factory(layer)
		if err != nil {
			e.disposeLayers()
			return nil, fmt.Errorf("strata: building layer %q: %w", layer.ID, err)
		}
		e.byID[layer.ID] = len(e.layers)
		e.layers = append(e.layers, BuiltLayer{ID: layer.ID, Config: layer, Drawable: d})
	}

	e.transform = NewTransformProcessor(e.width, e.height)
	e.spin = NewSpinProcessor()
	e.orbit = NewOrbitProcessor(e.width, e.height)
	e.effects = NewEffectProcessor(e.env)
	e.procs = []Processor{e.transform, e.spin, e.orbit, e.effects}

	// Init order matters: Transform lays the layers out first, so Spin
	// samples base rotations and Effect samples base alpha/scale from the
	// laid-out state. Orbit reads its spin snapshot from config, not from
	// the spin processor, so it only depends on Transform.
	for _, proc := range e.procs {
		proc.Init(e.layers)
	}

	e.clock = NewClock(e.log)
	for _, proc := range e.procs {
		e.clock.Add(proc.Tick)
	}
	if e.Animating() {
		e.clock.Start()
	}

	e.log.Info("scene built",
		zap.Int("layers", len(e.layers)),
		zap.Bool("animating", e.Animating()),
		zap.Bool("advanced_effects", e.env.Capable()),
	)
	return e, nil
}

// Update pumps one frame at the current wall-clock time. Hosts call this
// once per displayed frame (for ebiten, from Game.Update). If a control
// operation has animated a previously static scene, the clock is started
// here.
func (e *Engine) Update() {
	e.Pump(time.Now())
}

// Pump is Update with an explicit timestamp, for hosts that own their clock
// and for deterministic tests.
func (e *Engine) Pump(now time.Time) {
	if e.disposed {
		return
	}
	if !e.clock.Running() && e.Animating() {
		e.clock.Start()
	}
	e.clock.Pump(now)
}

// Resize propagates new stage dimensions to every processor in pipeline
// order. Resize is synchronous: it may interleave between ticks but must not
// run concurrently with one.
func (e *Engine) Resize(width, height float64) {
	if e.disposed || width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	for _, proc := range e.procs {
		proc.Resize(width, height)
	}
	e.log.Debug("stage resized", zap.Float64("width", width), zap.Float64("height", height))
}

// Animating reports whether any processor currently has animatable content.
func (e *Engine) Animating() bool {
	for _, proc := range e.procs {
		if proc.Animating() {
			return true
		}
	}
	return false
}

// Layers returns the built layers in render order.
// The returned slice MUST NOT be mutated by the caller.
func (e *Engine) Layers() []BuiltLayer {
	return e.layers
}

// Layer returns the built layer for an id.
func (e *Engine) Layer(id string) (BuiltLayer, bool) {
	if i, ok := e.byID[id]; ok {
		return e.layers[i], true
	}
	return BuiltLayer{}, false
}

// Clock returns the engine's frame clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Spin returns the spin processor's control surface.
func (e *Engine) Spin() *SpinProcessor { return e.spin }

// Orbit returns the orbit processor's control surface.
func (e *Engine) Orbit() *OrbitProcessor { return e.orbit }

// Effects returns the effect processor.
func (e *Engine) Effects() *EffectProcessor { return e.effects }

// Size returns the current stage dimensions.
func (e *Engine) Size() (w, h float64) { return e.width, e.height }

// Dispose stops the clock, disposes every processor in registration order,
// and destroys the layer drawables. Idempotent. Partially-completed frame
// ticks are not rolled back.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.clock.Dispose()
	for _, proc := range e.procs {
		proc.Dispose()
	}
	e.disposeLayers()
	e.log.Info("scene disposed")
}

// disposeLayers destroys the built drawables, tolerating destroy failures.
func (e *Engine) disposeLayers() {
	for _, layer := range e.layers {
		safeDispose(layer.Drawable)
	}
	e.layers = nil
}
