package strata

import (
	"math"

	"github.com/tanema/gween/ease"
)

// effectKind tags a parsed basic effect. Effects arrive as loosely-typed
// config entries and are normalized at parse time into a closed set of
// value-typed specs; unknown kinds are dropped, never erred.
type effectKind uint8

const (
	effectFade effectKind = iota
	effectPulse
	effectTilt
)

// tiltAxis selects which pointer axes feed a tilt effect.
type tiltAxis uint8

const (
	tiltAxisBoth tiltAxis = iota
	tiltAxisX
	tiltAxisY
)

// basicEffect is one normalized fade/pulse/tilt spec. Fields are grouped by
// kind; only the group matching kind is meaningful.
type basicEffect struct {
	kind effectKind

	// fade
	from     float64
	to       float64
	duration float64 // seconds
	loop     bool
	easing   ease.TweenFunc

	// pulse
	pulseAlpha bool // property: false = scale, true = alpha
	amplitude  float64
	phase      float64 // radians

	// tilt
	timeMode bool
	axis     tiltAxis
	maxRad   float64

	// pulse and tilt share a period
	period float64 // seconds
}

// basicItem holds a layer's parsed basic effects plus the base alpha and
// scale the multipliers apply to, captured once at init (after the transform
// processor has laid the layer out).
type basicItem struct {
	drawable  Drawable
	effects   []basicEffect
	baseAlpha float64
	baseScale float64

	// prevTilt is last frame's tilt contribution. Tilt is applied as an
	// incremental rotation delta, not an absolute overwrite, because spin
	// and orbit may drive rotation in the same frame.
	prevTilt float64
}

// EffectProcessor composes time-driven visual effects. It runs two
// sub-pipelines off one shared elapsed-time accumulator: the basic pipeline
// (fade, pulse, tilt — always available) and the advanced pipeline
// (aura, distort, shockwave — built only when the environment's capability
// predicate holds; see aura.go).
//
// Effect runs last in the pipeline: distort perturbs the position other
// processors set this frame, and tilt increments the rotation they wrote.
type EffectProcessor struct {
	env      *Env
	basics   []*basicItem
	advanced []*advancedItem
	elapsed  float64
}

// NewEffectProcessor creates an effect processor reading pointer and
// capability signals from env. env must not be nil.
func NewEffectProcessor(env *Env) *EffectProcessor {
	return &EffectProcessor{env: env}
}

// Init parses every layer's effect list and builds fresh items; previously
// built items are discarded, not merged. Advanced items are only built when
// the capability predicate is satisfied.
func (p *EffectProcessor) Init(layers []BuiltLayer) {
	p.disposeAdvanced()
	p.basics = nil
	p.advanced = nil
	p.elapsed = 0

	capable := p.env.Capable()

	for _, layer := range layers {
		if len(layer.Config.Effects) == 0 {
			continue
		}
		if effects := parseBasicEffects(layer.Config.Effects); len(effects) > 0 {
			p.basics = append(p.basics, &basicItem{
				drawable:  layer.Drawable,
				effects:   effects,
				baseAlpha: layer.Drawable.Alpha(),
				baseScale: layer.Drawable.Scale(),
			})
		}
		if capable {
			if item := buildAdvancedItem(layer); item != nil {
				p.advanced = append(p.advanced, item)
			}
		}
	}
}

// Tick advances the shared elapsed time and applies both pipelines.
// A processor with no items treats Tick as a no-op.
func (p *EffectProcessor) Tick(dt float64) {
	if len(p.basics) == 0 && len(p.advanced) == 0 {
		return
	}
	p.elapsed += dt
	p.tickBasics()
	p.tickAdvanced()
}

// Resize is a no-op: effect multipliers are resolution-independent, and the
// advanced pipeline tracks per-frame positions rather than fixed anchors.
func (p *EffectProcessor) Resize(width, height float64) {}

// Animating reports whether any effect item exists.
func (p *EffectProcessor) Animating() bool {
	return len(p.basics) > 0 || len(p.advanced) > 0
}

// Dispose destroys all aura drawables and clears the item lists.
func (p *EffectProcessor) Dispose() {
	p.disposeAdvanced()
	p.basics = nil
	p.advanced = nil
}

// tickBasics folds each item's effect list, in declared order, into a
// combined alpha value, scale multiplier, and additive tilt angle, then
// writes them: alpha clamped to [0, 1], scale relative to the base, and the
// tilt delta added to whatever rotation this frame's earlier processors set.
func (p *EffectProcessor) tickBasics() {
	for _, item := range p.basics {
		alpha := item.baseAlpha
		scaleMul := 1.0
		tilt := 0.0

		for i := range item.effects {
			eff := &item.effects[i]
			switch eff.kind {
			case effectFade:
				alpha *= eff.fadeValue(p.elapsed)
			case effectPulse:
				v := eff.pulseValue(p.elapsed)
				if eff.pulseAlpha {
					alpha = Clamp01(alpha * v)
				} else {
					scaleMul *= v
				}
			case effectTilt:
				tilt += eff.tiltValue(p.elapsed, p.env)
			}
		}

		d := item.drawable
		d.SetAlpha(Clamp01(alpha))
		d.SetScale(item.baseScale * scaleMul)
		d.SetRotation(d.Rotation() + tilt - item.prevTilt)
		item.prevTilt = tilt
	}
}

// fadeValue evaluates a fade at the given elapsed time.
//
// The phase is computed via modulo regardless of the loop flag, so a
// non-looping fade re-triggers every period; only the ping-pong shaping is
// gated on loop. Downstream configurations depend on this periodic restart,
// so it is kept as-is rather than turned into a true one-shot.
func (e *basicEffect) fadeValue(elapsed float64) float64 {
	phase := math.Mod(elapsed, e.duration) / e.duration
	if e.loop {
		// Ping-pong: rise to 1 at the midpoint, then fall back.
		if phase < 0.5 {
			phase *= 2
		} else {
			phase = 2 - phase*2
		}
	}
	eased := float64(e.easing(float32(phase), 0, 1, 1))
	return Lerp(e.from, e.to, eased)
}

// PulseIntensity returns the raw sinusoidal pulse intensity in [-1, 1] for
// the given elapsed time in seconds, period in seconds, and phase in radians.
func PulseIntensity(elapsed, period, phase float64) float64 {
	return math.Sin(2*math.Pi/period*elapsed + phase)
}

// pulseValue evaluates a pulse multiplier at the given elapsed time.
// An amplitude of 0 yields a constant 1 for all elapsed times.
func (e *basicEffect) pulseValue(elapsed float64) float64 {
	return 1 + e.amplitude*PulseIntensity(elapsed, e.period, e.phase)
}

// tiltValue computes the tilt angle contribution in radians.
func (e *basicEffect) tiltValue(elapsed float64, env *Env) float64 {
	if e.timeMode {
		return math.Sin(2*math.Pi*elapsed/e.period) * e.maxRad
	}

	// Pointer mode: map the normalized [0, 1] pointer signal to [-1, 1]
	// per axis, centered at the middle of the viewport.
	nx, ny := env.pointer()
	sx := (nx - 0.5) * 2
	sy := (ny - 0.5) * 2

	var signal float64
	switch e.axis {
	case tiltAxisX:
		signal = -sx
	case tiltAxisY:
		signal = sy
	default:
		// Average of the y signal and the negated x signal.
		signal = (sy - sx) / 2
	}
	return signal * e.maxRad
}

// parseBasicEffects keeps fade/pulse/tilt entries in declared order,
// normalized with their documented defaults. Other types belong to the
// advanced pipeline or are unknown; both are skipped here.
func parseBasicEffects(cfgs []EffectConfig) []basicEffect {
	var out []basicEffect
	for _, cfg := range cfgs {
		switch cfg.Type {
		case "fade":
			out = append(out, parseFade(cfg))
		case "pulse":
			out = append(out, parsePulse(cfg))
		case "tilt":
			out = append(out, parseTilt(cfg))
		}
	}
	return out
}

func parseFade(cfg EffectConfig) basicEffect {
	e := basicEffect{
		kind:     effectFade,
		from:     floatOr(cfg.From, 1),
		to:       floatOr(cfg.To, 1),
		duration: msToSec(floatOr(cfg.Duration, defaultFadeDuration)),
		loop:     boolOr(cfg.Loop, true),
		easing:   ease.Linear,
	}
	if cfg.Easing == "sine-in-out" {
		e.easing = ease.InOutSine
	}
	return e
}

func parsePulse(cfg EffectConfig) basicEffect {
	e := basicEffect{
		kind:       effectPulse,
		pulseAlpha: cfg.Property == "alpha",
		period:     msToSec(floatOr(cfg.Period, defaultPulsePeriod)),
		phase:      DegToRad(finiteOr(cfg.Phase, 0)),
	}
	if e.pulseAlpha {
		e.amplitude = floatOr(cfg.Amplitude, defaultPulseAmpAlpha)
	} else {
		e.amplitude = floatOr(cfg.Amplitude, defaultPulseAmpScale)
	}
	return e
}

func parseTilt(cfg EffectConfig) basicEffect {
	e := basicEffect{
		kind:     effectTilt,
		timeMode: cfg.Mode == "time",
		maxRad:   DegToRad(floatOr(cfg.MaxDeg, defaultTiltMaxDeg)),
		period:   msToSec(floatOr(cfg.Period, defaultTiltPeriod)),
	}
	switch cfg.Axis {
	case "x":
		e.axis = tiltAxisX
	case "y":
		e.axis = tiltAxisY
	}
	return e
}

// --- Normalization helpers ---

// floatOr dereferences an optional config value, substituting def for nil
// and non-finite values.
func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return finiteOr(*v, def)
}

// finiteOr substitutes def for NaN and infinities.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// msToSec converts a config duration in milliseconds to seconds, guarding
// non-positive periods (a zero period would divide by zero every frame).
func msToSec(ms float64) float64 {
	if ms <= 0 {
		ms = defaultFadeDuration
	}
	return ms / 1000
}
