package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClosestPointOnSegment projects p onto segment [a, b]
// Returns the closest point and its parametric value in [0, 1]
// A zero-length segment yields a with t = 0
func ClosestPointOnSegment(a, b, p mgl64.Vec3) (mgl64.Vec3, float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon {
		return a, 0
	}
	t := Clamp01(p.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Mul(t)), t
}

// ClosestPointsOnSegments returns the pair of points minimizing the distance between
// segments S1 = p1 + s(q1-p1) and S2 = p2 + t(q2-p2), with s, t clamped to [0, 1]
//
// Solves the 2x2 normal equations, clamps s first (re-deriving t's numerator and
// denominator), then clamps t (re-deriving s). Nearly parallel segments force s = 0
// and solve t = e/c directly. Zero-length segments collapse to point projections.
func ClosestPointsOnSegments(p1, q1, p2, q2 mgl64.Vec3) (c1, c2 mgl64.Vec3, s, t float64) {
	u := q1.Sub(p1)
	v := q2.Sub(p2)
	w := p1.Sub(p2)

	a := u.Dot(u)
	b := u.Dot(v)
	c := v.Dot(v)
	d := u.Dot(w)
	e := v.Dot(w)

	// Degenerate inputs: one or both segments are points
	switch {
	case a < Epsilon && c < Epsilon:
		return p1, p2, 0, 0
	case a < Epsilon:
		c2, t = ClosestPointOnSegment(p2, q2, p1)
		return p1, c2, 0, t
	case c < Epsilon:
		c1, s = ClosestPointOnSegment(p1, q1, p2)
		return c1, p2, s, 0
	}

	denom := a*c - b*b
	sN, sD := denom, denom
	tN, tD := denom, denom

	if denom < ParallelEpsilon {
		// Parallel: pin s to the start of S1 and solve for t
		sN = 0
		sD = 1
		tN = e
		tD = c
	} else {
		sN = b*e - c*d
		tN = a*e - b*d
		if sN < 0 {
			sN = 0
			tN = e
			tD = c
		} else if sN > sD {
			sN = sD
			tN = e + b
			tD = c
		}
	}

	if tN < 0 {
		tN = 0
		switch {
		case -d < 0:
			sN = 0
		case -d > a:
			sN = sD
		default:
			sN = -d
			sD = a
		}
	} else if tN > tD {
		tN = tD
		switch {
		case -d+b < 0:
			sN = 0
		case -d+b > a:
			sN = sD
		default:
			sN = -d + b
			sD = a
		}
	}

	s = safeRatio(sN, sD)
	t = safeRatio(tN, tD)

	c1 = p1.Add(u.Mul(s))
	c2 = p2.Add(v.Mul(t))
	return c1, c2, s, t
}

// SegmentDistance returns the minimal distance between two segments
func SegmentDistance(p1, q1, p2, q2 mgl64.Vec3) float64 {
	c1, c2, _, _ := ClosestPointsOnSegments(p1, q1, p2, q2)
	return c1.Sub(c2).Len()
}

// safeRatio divides and clamps to [0, 1], treating tiny numerators as zero
func safeRatio(n, d float64) float64 {
	if math.Abs(n) < Epsilon || d == 0 {
		return 0
	}
	return Clamp01(n / d)
}
