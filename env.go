package strata

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// Env carries every platform signal the core consumes, as explicit injected
// dependencies: the normalized pointer position, the viewport size, and the
// hardware probes behind the advanced-effects capability gate. Tests supply
// deterministic functions; [DefaultEnv] wires the real ebiten-backed ones.
type Env struct {
	// Pointer returns the pointer position normalized to [0, 1] per axis.
	Pointer func() (x, y float64)

	// Viewport returns the current viewport size in pixels.
	Viewport func() (w, h float64)

	// Probes supplies the hardware facts behind the capability predicate.
	Probes Probes

	// Capability, when non-nil, replaces the probe-derived predicate
	// entirely. Used by the Effect processor to decide whether to build the
	// advanced pipeline.
	Capability func() bool
}

// Probes are optional hardware probes. A nil probe means "not reported"; the
// capability predicate only rejects on facts that are actually reported.
type Probes struct {
	Accelerated    func() bool
	DeviceMemoryGB func() float64
	Concurrency    func() int
}

// Capability thresholds for the advanced effect pipeline.
const (
	minDeviceMemoryGB = 4.0
	minConcurrency    = 4
)

// Capable evaluates the advanced-effects capability predicate: graphics
// acceleration available, and sufficient memory and CPU concurrency where
// reported. Unsupported hardware is not an error, it simply disables the
// advanced pipeline.
func (e *Env) Capable() bool {
	if e.Capability != nil {
		return e.Capability()
	}
	if e.Probes.Accelerated != nil && !e.Probes.Accelerated() {
		return false
	}
	if e.Probes.DeviceMemoryGB != nil && e.Probes.DeviceMemoryGB() < minDeviceMemoryGB {
		return false
	}
	if e.Probes.Concurrency != nil && e.Probes.Concurrency() < minConcurrency {
		return false
	}
	return true
}

// pointer returns the normalized pointer position, center-defaulting when no
// signal is injected.
func (e *Env) pointer() (x, y float64) {
	if e == nil || e.Pointer == nil {
		return 0.5, 0.5
	}
	return e.Pointer()
}

// DefaultEnv returns an Env backed by ebiten: cursor position normalized by
// the window size, window size as the viewport, and runtime.NumCPU as the
// concurrency probe. Acceleration is assumed present (ebiten refuses to start
// without a graphics context), and device memory is left unreported because
// the platform does not expose it.
func DefaultEnv() *Env {
	return &Env{
		Pointer: func() (float64, float64) {
			cx, cy := ebiten.CursorPosition()
			w, h := ebiten.WindowSize()
			if w <= 0 || h <= 0 {
				return 0.5, 0.5
			}
			return Clamp01(float64(cx) / float64(w)), Clamp01(float64(cy) / float64(h))
		},
		Viewport: func() (float64, float64) {
			w, h := ebiten.WindowSize()
			return float64(w), float64(h)
		},
		Probes: Probes{
			Accelerated: func() bool { return true },
			Concurrency: runtime.NumCPU,
		},
	}
}
