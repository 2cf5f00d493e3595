package strata

import (
	"sort"
	"strings"
)

// Default effect parameters. Missing optional fields are normalized to these,
// never reported as errors.
const (
	defaultScalePct      = 100.0
	defaultFadeDuration  = 1000.0 // ms
	defaultPulseAmpScale = 0.05
	defaultPulseAmpAlpha = 0.1
	defaultPulsePeriod   = 1000.0 // ms
	defaultTiltMaxDeg    = 8.0
	defaultTiltPeriod    = 4000.0 // ms
)

// SceneConfig is the root configuration object: a stage size, an asset
// resolution table, and a flat list of layers. It is supplied whole at scene
// build time and never mutated by the core.
type SceneConfig struct {
	Stage  StageConfig   `yaml:"stage"`
	Assets AssetConfig   `yaml:"assets"`
	Layers []LayerConfig `yaml:"layers"`
}

// StageConfig is the logical stage size in pixels. Zero values fall back to
// DefaultStageWidth/DefaultStageHeight.
type StageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Size returns the configured stage dimensions with defaults applied.
func (s StageConfig) Size() (w, h float64) {
	w, h = s.Width, s.Height
	if w <= 0 {
		w = DefaultStageWidth
	}
	if h <= 0 {
		h = DefaultStageHeight
	}
	return w, h
}

// AssetConfig maps image references to loadable URLs. Lookup order: the
// Images table first, then BaseURL joined with the reference.
type AssetConfig struct {
	BaseURL string            `yaml:"baseUrl"`
	Images  map[string]string `yaml:"images"`
}

// LayerConfig declares one animated sprite layer. Position and orbit center
// are percentages of the stage; position is deliberately unbounded, values
// outside [0, 100] mean off-stage placement.
type LayerConfig struct {
	ID       string         `yaml:"id"`
	Image    string         `yaml:"image"`
	Position Vec2           `yaml:"position"`
	Scale    *float64       `yaml:"scale"` // percent, default 100
	Angle    float64        `yaml:"angle"` // initial rotation, degrees
	Spin     *SpinConfig    `yaml:"spin"`
	Orbit    *OrbitConfig   `yaml:"orbit"`
	Effects  []EffectConfig `yaml:"effects"`
}

// ScalePct returns the layer's scale percentage with the default applied.
func (c LayerConfig) ScalePct() float64 {
	if c.Scale == nil {
		return defaultScalePct
	}
	return *c.Scale
}

// SpinRPM returns the layer's clamped spin RPM, 0 when spin is unconfigured.
func (c LayerConfig) SpinRPM() float64 {
	if c.Spin == nil {
		return 0
	}
	return ClampRPM(c.Spin.RPM)
}

// SpinConfig declares continuous rotation about the sprite's own center.
type SpinConfig struct {
	RPM       float64 `yaml:"rpm"`
	Direction string  `yaml:"direction"` // "cw" (default) or "ccw"
}

// OrbitConfig declares circular motion around a center point. The orbit
// radius is never configured directly: it is derived by projecting the
// layer's configured position onto the stage border along the ray from the
// center. Phase is optional; when nil the sprite starts exactly where it was
// statically placed.
type OrbitConfig struct {
	RPM         float64  `yaml:"rpm"`
	Direction   string   `yaml:"direction"`
	Center      *Vec2    `yaml:"center"`      // percent, default 50/50
	Phase       *float64 `yaml:"phase"`       // degrees, normalized to [0, 360)
	Orient      string   `yaml:"orient"`      // "none" (default), "auto", "override"
	OrientAngle float64  `yaml:"orientAngle"` // degrees, added to the travel angle
}

// CenterPct returns the orbit center percentages with the default applied.
func (c OrbitConfig) CenterPct() Vec2 {
	if c.Center == nil {
		return Vec2{X: 50, Y: 50}
	}
	return *c.Center
}

// EffectConfig is one entry in a layer's effect list. Type selects the
// effect; all other fields are optional and effect-specific. Unknown types
// are dropped at parse time, not erred.
type EffectConfig struct {
	Type string `yaml:"type"` // fade, pulse, tilt, glow, bloom, distort, shockwave

	// fade
	From     *float64 `yaml:"from"`
	To       *float64 `yaml:"to"`
	Duration *float64 `yaml:"duration"` // ms
	Loop     *bool    `yaml:"loop"`
	Easing   string   `yaml:"easing"` // "linear" (default) or "sine-in-out"

	// pulse (also the aura scale pulse and shockwave cycle)
	Property  string   `yaml:"property"` // "scale" (default) or "alpha"
	Amplitude *float64 `yaml:"amplitude"`
	Period    *float64 `yaml:"period"` // ms
	Phase     float64  `yaml:"phase"`  // degrees

	// tilt
	Mode   string   `yaml:"mode"` // "pointer" (default) or "time"
	Axis   string   `yaml:"axis"` // "both" (default), "x", "y"
	MaxDeg *float64 `yaml:"maxDeg"`

	// glow / bloom
	Color *Color   `yaml:"color"`
	Alpha *float64 `yaml:"alpha"`
	Scale *float64 `yaml:"scale"` // aura scale factor relative to the owner

	// distort
	AmpX *float64 `yaml:"ampX"` // px
	AmpY *float64 `yaml:"ampY"` // px
	Freq *float64 `yaml:"freq"` // Hz

	// shockwave
	MaxScale   *float64 `yaml:"maxScale"`
	AlphaPulse bool     `yaml:"alphaPulse"`
}

// --- Parsing helpers ---

// parseDirection maps a config direction string to a sign. Anything other
// than an explicit counter-clockwise spelling is clockwise.
func parseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ccw", "counterclockwise", "counter-clockwise":
		return CounterClockwise
	default:
		return Clockwise
	}
}

// parseOrient maps a config orientation policy string to an OrientPolicy.
func parseOrient(s string) OrientPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return OrientAuto
	case "override":
		return OrientOverride
	default:
		return OrientNone
	}
}

// --- Layer ordering ---

// LayerZKey extracts the render-order key from a layer id: the value of the
// first run of decimal digits, or 0 when the id contains none.
func LayerZKey(id string) int {
	start := -1
	for i, r := range id {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(id[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(id[start:])
	}
	return 0
}

// parseDigits converts a digit-only substring to an int, saturating rather
// than overflowing on absurdly long runs.
func parseDigits(s string) int {
	const maxKey = 1 << 30
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > maxKey {
			return maxKey
		}
	}
	return n
}

// SortLayersByZIndex returns the layers ordered by their numeric z key,
// ties broken by lexicographic id order. The input slice is not modified.
// This ordering happens once, before sprite construction, and also determines
// the z-index assigned to each drawable.
func SortLayersByZIndex(layers []LayerConfig) []LayerConfig {
	ordered := make([]LayerConfig, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool {
		ki, kj := LayerZKey(ordered[i].ID), LayerZKey(ordered[j].ID)
		if ki != kj {
			return ki < kj
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// --- Asset resolution ---

// ResolveImageURL maps a layer's image reference to a loadable URL using the
// scene's asset table. Returns "" when the reference cannot be resolved.
func ResolveImageURL(cfg SceneConfig, ref string) string {
	if ref == "" {
		return ""
	}
	if url, ok := cfg.Assets.Images[ref]; ok {
		return url
	}
	if cfg.Assets.BaseURL == "" {
		return ref
	}
	base := strings.TrimSuffix(cfg.Assets.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(ref, "/")
}
