package strata

import (
	"math"
	"testing"
)

// --- ClampRPM ---

func TestClampRPMRange(t *testing.T) {
	inputs := []float64{-100, -1, 0, 0.5, 1, 30, 59.999, 60, 61, 1e9}
	for _, v := range inputs {
		got := ClampRPM(v)
		if got < 0 || got > MaxRPM {
			t.Errorf("ClampRPM(%v) = %v, outside [0, %v]", v, got, MaxRPM)
		}
	}
}

func TestClampRPMInvalidCollapsesToZero(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5, 0} {
		if got := ClampRPM(v); got != 0 {
			t.Errorf("ClampRPM(%v) = %v, want 0", v, got)
		}
	}
}

func TestClampRPMMonotonic(t *testing.T) {
	prev := ClampRPM(0)
	for v := 0.0; v <= 60; v += 0.5 {
		got := ClampRPM(v)
		if got < prev {
			t.Fatalf("ClampRPM not monotonic at %v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestClampRPMIdentityInRange(t *testing.T) {
	assertNear(t, "ClampRPM(30)", ClampRPM(30), 30)
	assertNear(t, "ClampRPM(60)", ClampRPM(60), 60)
	assertNear(t, "ClampRPM(120)", ClampRPM(120), 60)
}

// --- Conversions ---

func TestDegToRad(t *testing.T) {
	assertNear(t, "180deg", DegToRad(180), math.Pi)
	assertNear(t, "-90deg", DegToRad(-90), -math.Pi/2)
	assertNear(t, "roundtrip", RadToDeg(DegToRad(37.5)), 37.5)
}

func TestRPMToRadPerSec(t *testing.T) {
	// 60 RPM = 1 revolution per second = 2π rad/s.
	assertNear(t, "60rpm", RPMToRadPerSec(60), 2*math.Pi)
	assertNear(t, "30rpm", RPMToRadPerSec(30), math.Pi)
}

// --- Clamp / Lerp / Distance ---

func TestClamp(t *testing.T) {
	assertNear(t, "below", Clamp(-1, 0, 10), 0)
	assertNear(t, "above", Clamp(11, 0, 10), 10)
	assertNear(t, "inside", Clamp(5, 0, 10), 5)
	assertNear(t, "clamp01 low", Clamp01(-0.5), 0)
	assertNear(t, "clamp01 high", Clamp01(1.5), 1)
}

func TestLerp(t *testing.T) {
	assertNear(t, "t=0", Lerp(2, 10, 0), 2)
	assertNear(t, "t=1", Lerp(2, 10, 1), 10)
	assertNear(t, "t=0.25", Lerp(2, 10, 0.25), 4)
	// t is deliberately unclamped.
	assertNear(t, "t=2", Lerp(2, 10, 2), 18)
}

func TestDistance(t *testing.T) {
	assertNear(t, "3-4-5", Distance(0, 0, 3, 4), 5)
	assertNear(t, "zero", Distance(7, 7, 7, 7), 0)
}

func TestRotateVec(t *testing.T) {
	// Screen space: rotating +x by 90° lands on +y (downward).
	x, y := RotateVec(1, 0, math.Pi/2)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)

	x, y = RotateVec(0, 1, math.Pi)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, -1)
}

// --- ProjectToRectBorder ---

func TestProjectInteriorPointUnchanged(t *testing.T) {
	// Inside the rect: returned as-is, radius is the direct distance.
	x, y := ProjectToRectBorder(512, 512, 512, 50, 1024, 1024)
	assertNear(t, "x", x, 512)
	assertNear(t, "y", y, 50)
	assertNear(t, "radius", Distance(512, 512, x, y), 462)
}

func TestProjectExteriorPointAboveTop(t *testing.T) {
	x, y := ProjectToRectBorder(512, 512, 512, -100, 1024, 1024)
	assertNear(t, "x", x, 512)
	assertNear(t, "y", y, 0)
	assertNear(t, "radius", Distance(512, 512, x, y), 512)
}

func TestProjectExteriorPointRight(t *testing.T) {
	x, y := ProjectToRectBorder(512, 512, 2048, 512, 1024, 1024)
	assertNear(t, "x", x, 1024)
	assertNear(t, "y", y, 512)
}

func TestProjectDiagonalPicksNearestEdge(t *testing.T) {
	// Ray from the center through (1536, 1024) exits the right edge at
	// (1024, 768) before reaching the bottom edge.
	x, y := ProjectToRectBorder(512, 512, 1536, 1024, 1024, 1024)
	assertNear(t, "x", x, 1024)
	assertNear(t, "y", y, 768)
}

func TestProjectDegenerateDirectionClamps(t *testing.T) {
	// Point coincides with an exterior center: no ray direction, so the
	// point is clamped into the rectangle.
	x, y := ProjectToRectBorder(-50, -50, -50, -50, 1024, 1024)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 0)
}

func TestProjectOffAxisCenter(t *testing.T) {
	// Center near the left edge, point far beyond the right edge: the ray
	// is horizontal and exits at the right edge at the center's height.
	x, y := ProjectToRectBorder(100, 300, 5000, 300, 1024, 1024)
	assertNear(t, "x", x, 1024)
	assertNear(t, "y", y, 300)
}

func TestProjectCornerTolerance(t *testing.T) {
	// A ray grazing the corner must still hit: cross coordinate within the
	// 1-unit tolerance counts.
	x, y := ProjectToRectBorder(512, 512, 1537, 1536.5, 1024, 1024)
	if x < 1023 || y < 1023 {
		t.Errorf("corner graze projected to (%v, %v), want near (1024, 1024)", x, y)
	}
}

func BenchmarkProjectToRectBorder(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		ProjectToRectBorder(512, 512, 1536, 1200, 1024, 1024)
	}
}
