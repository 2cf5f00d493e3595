package strata

import "math"

// Advanced effect defaults. Like the basic pipeline, missing fields are
// normalized, never erred.
const (
	defaultGlowScale   = 1.2
	defaultGlowAlpha   = 0.5
	defaultBloomScale  = 1.4
	defaultBloomAlpha  = 0.35
	defaultDistortAmp  = 6.0 // px
	defaultDistortFreq = 0.8 // Hz
	defaultShockScale  = 1.5
	defaultShockPeriod = 1500.0 // ms

	// distortYFreqRatio detunes the vertical sinusoid against the
	// horizontal one so the perturbation traces a drifting Lissajous path
	// instead of a fixed diagonal.
	distortYFreqRatio = 0.9
)

// auraState is one glow/bloom aura: an auxiliary drawable sharing the
// owner's visual asset, tracking the owner's transform every frame. The
// effect processor owns the drawable and destroys it on dispose.
type auraState struct {
	drawable    Drawable
	scaleFactor float64
	pulsePeriod float64 // seconds; 0 disables the scale pulse
	pulseAmp    float64
	pulsePhase  float64 // radians
}

// distortSpec perturbs the owner's position with two phase-offset sinusoids.
type distortSpec struct {
	ampX  float64
	ampY  float64
	freq  float64 // Hz
	phase float64 // radians
}

// shockSpec cyclically overwrites the owner's scale (and optionally alpha).
type shockSpec struct {
	maxScale   float64
	period     float64 // seconds
	alphaPulse bool
}

// advancedItem holds a layer's hardware-gated effects: zero or more auras,
// an optional distort, and an optional shockwave.
type advancedItem struct {
	drawable Drawable
	auras    []auraState
	distort  *distortSpec
	shock    *shockSpec

	// Shockwave overwrites are absolute against these, not composed with
	// whatever spin/orbit-driven values the frame produced.
	baseScale float64
	baseAlpha float64
}

// buildAdvancedItem parses a layer's glow/bloom/distort/shockwave entries.
// Returns nil when the layer has none.
func buildAdvancedItem(layer BuiltLayer) *advancedItem {
	item := &advancedItem{
		drawable:  layer.Drawable,
		baseScale: layer.Drawable.Scale(),
		baseAlpha: layer.Drawable.Alpha(),
	}

	for _, cfg := range layer.Config.Effects {
		switch cfg.Type {
		case "glow":
			item.auras = append(item.auras, buildAura(layer.Drawable, cfg, defaultGlowScale, defaultGlowAlpha))
		case "bloom":
			item.auras = append(item.auras, buildAura(layer.Drawable, cfg, defaultBloomScale, defaultBloomAlpha))
		case "distort":
			amp := floatOr(cfg.Amplitude, 0)
			item.distort = &distortSpec{
				ampX:  floatOr(cfg.AmpX, firstPositive(amp, defaultDistortAmp)),
				ampY:  floatOr(cfg.AmpY, firstPositive(amp, defaultDistortAmp)),
				freq:  firstPositive(floatOr(cfg.Freq, 0), defaultDistortFreq),
				phase: DegToRad(finiteOr(cfg.Phase, 0)),
			}
		case "shockwave":
			item.shock = &shockSpec{
				maxScale:   firstPositive(floatOr(cfg.MaxScale, 0), defaultShockScale),
				period:     msToSec(floatOr(cfg.Period, defaultShockPeriod)),
				alphaPulse: cfg.AlphaPulse,
			}
		}
	}

	if len(item.auras) == 0 && item.distort == nil && item.shock == nil {
		return nil
	}
	return item
}

// buildAura spawns the aura drawable behind its owner and applies tint and
// alpha from config.
func buildAura(owner Drawable, cfg EffectConfig, defScale, defAlpha float64) auraState {
	aura := owner.SpawnAura()
	if cfg.Color != nil {
		aura.SetTint(*cfg.Color)
	}
	aura.SetAlpha(Clamp01(floatOr(cfg.Alpha, defAlpha)))

	state := auraState{
		drawable:    aura,
		scaleFactor: firstPositive(floatOr(cfg.Scale, 0), defScale),
		pulseAmp:    floatOr(cfg.Amplitude, defaultPulseAmpScale),
		pulsePhase:  DegToRad(finiteOr(cfg.Phase, 0)),
	}
	if cfg.Period != nil {
		state.pulsePeriod = msToSec(*cfg.Period)
	}
	return state
}

// tickAdvanced applies distort, shockwave, then aura tracking. Distort runs
// against the position the earlier processors set this frame (it is additive
// per frame, not anchored), and auras track the owner's final transform
// including any shockwave overwrite.
func (p *EffectProcessor) tickAdvanced() {
	for _, item := range p.advanced {
		d := item.drawable

		if spec := item.distort; spec != nil {
			x, y := d.Position()
			dx := spec.ampX * math.Sin(2*math.Pi*spec.freq*p.elapsed+spec.phase)
			dy := spec.ampY * math.Sin(2*math.Pi*spec.freq*distortYFreqRatio*p.elapsed+spec.phase+math.Pi/2)
			d.SetPosition(x+dx, y+dy)
		}

		if spec := item.shock; spec != nil {
			phase := math.Mod(p.elapsed, spec.period) / spec.period
			d.SetScale(item.baseScale * (1 + (spec.maxScale-1)*math.Sin(math.Pi*phase)))
			if spec.alphaPulse {
				d.SetAlpha(Clamp01(item.baseAlpha * (0.5 + 0.5*math.Cos(2*math.Pi*phase))))
			}
		}

		if len(item.auras) > 0 {
			ox, oy := d.Position()
			rot := d.Rotation()
			scale := d.Scale()
			for i := range item.auras {
				aura := &item.auras[i]
				aura.drawable.SetPosition(ox, oy)
				aura.drawable.SetRotation(rot)
				s := scale * aura.scaleFactor
				if aura.pulsePeriod > 0 {
					s *= 1 + aura.pulseAmp*PulseIntensity(p.elapsed, aura.pulsePeriod, aura.pulsePhase)
				}
				aura.drawable.SetScale(s)
			}
		}
	}
}

// disposeAdvanced destroys all aura drawables, tolerating destroy failures
// silently per the dispose contract.
func (p *EffectProcessor) disposeAdvanced() {
	for _, item := range p.advanced {
		for i := range item.auras {
			safeDispose(item.auras[i].drawable)
		}
	}
}

// safeDispose disposes a drawable, swallowing any panic from the host's
// destroy path.
func safeDispose(d Drawable) {
	defer func() { _ = recover() }()
	d.Dispose()
}

// firstPositive returns v when positive, otherwise def.
func firstPositive(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
