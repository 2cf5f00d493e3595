package strata

import "math"

// MaxRPM is the upper bound for configured angular speeds.
const MaxRPM = 60.0

// borderTolerance is how far (in stage units) an edge intersection's cross
// coordinate may fall outside the edge's span and still count as a hit.
// Absorbs float error when a ray grazes a corner.
const borderTolerance = 1.0

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp limits n to the closed interval [min, max].
func Clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Clamp01 limits n to [0, 1]. Used for every alpha write.
func Clamp01(n float64) float64 {
	return Clamp(n, 0, 1)
}

// ClampRPM maps any value to a valid revolutions-per-minute figure in
// [0, MaxRPM]. Non-finite and non-positive inputs collapse to 0, which
// downstream code treats as "not animated".
func ClampRPM(rpm float64) float64 {
	if math.IsNaN(rpm) || math.IsInf(rpm, 0) || rpm <= 0 {
		return 0
	}
	if rpm > MaxRPM {
		return MaxRPM
	}
	return rpm
}

// RPMToRadPerSec converts revolutions per minute to radians per second.
func RPMToRadPerSec(rpm float64) float64 {
	return rpm * math.Pi / 30
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// RotateVec rotates the vector (x, y) by angle radians (screen-space:
// positive angles rotate clockwise because Y grows downward).
func RotateVec(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// ProjectToRectBorder projects the point (px, py) onto the border of the
// rectangle [0, w] x [0, h] along the ray from (cx, cy) through the point.
//
// If the point already lies inside the rectangle it is returned unchanged:
// an interior point defines an interior orbit and needs no projection. For an
// exterior point, the ray from the center through it is intersected with all
// four edges; intersections behind the center (negative parameter) or whose
// cross coordinate misses the edge span by more than borderTolerance are
// discarded, and the nearest remaining intersection wins. If the direction is
// degenerate (the point coincides with the center) or no edge qualifies, the
// point's coordinates are clamped into the rectangle instead.
func ProjectToRectBorder(cx, cy, px, py, w, h float64) (float64, float64) {
	if px >= 0 && px <= w && py >= 0 && py <= h {
		return px, py
	}

	dx := px - cx
	dy := py - cy

	bestT := math.Inf(1)
	var bestX, bestY float64
	found := false

	// Vertical edges x=0 and x=w.
	if dx != 0 {
		for _, edgeX := range [2]float64{0, w} {
			t := (edgeX - cx) / dx
			if t <= 0 {
				continue
			}
			y := cy + t*dy
			if y < -borderTolerance || y > h+borderTolerance {
				continue
			}
			if t < bestT {
				bestT, bestX, bestY = t, edgeX, y
				found = true
			}
		}
	}

	// Horizontal edges y=0 and y=h.
	if dy != 0 {
		for _, edgeY := range [2]float64{0, h} {
			t := (edgeY - cy) / dy
			if t <= 0 {
				continue
			}
			x := cx + t*dx
			if x < -borderTolerance || x > w+borderTolerance {
				continue
			}
			if t < bestT {
				bestT, bestX, bestY = t, x, edgeY
				found = true
			}
		}
	}

	if !found {
		return Clamp(px, 0, w), Clamp(py, 0, h)
	}
	return bestX, bestY
}
