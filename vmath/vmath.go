package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon guards divisions by squared lengths in segment math
const Epsilon = 1e-9

// ParallelEpsilon is the denominator threshold below which two segments are treated as parallel
const ParallelEpsilon = 1e-6

// --- Scalars ---

// Lerp interpolates from a to b by t (t is not clamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps x to [0, 1]
func Clamp01(x float64) float64 {
	return mgl64.Clamp(x, 0, 1)
}

// InverseLerp returns where x sits between a and b, clamped to [0, 1]
// Returns 0 when a == b
func InverseLerp(a, b, x float64) float64 {
	if b == a {
		return 0
	}
	return Clamp01((x - a) / (b - a))
}

// SmoothFactor returns the frame-rate independent lerp factor 1 - e^(-speed*dt)
func SmoothFactor(speed, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-speed*dt)
}

// LerpVec2 interpolates 2D vectors component-wise
func LerpVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpVec3 interpolates 3D vectors component-wise
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// --- Randomness ---

// Source yields uniform floats in [0, 1)
// Satisfied by *FastRand; tests substitute fixed sequences
type Source interface {
	Float64() float64
}

// FastRand is a seedable xorshift64 generator
// Not safe for concurrent use; each simulation owns one
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range draws uniformly from [lo, hi)
func Range(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Symmetric draws uniformly from [-r, r)
func Symmetric(src Source, r float64) float64 {
	return (src.Float64() - 0.5) * 2 * r
}

// Chance reports true with probability p
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Disc samples a point uniformly inside a disc of the given radius
// Angle is drawn first, then radius as R*sqrt(u)
func Disc(src Source, radius float64) mgl64.Vec2 {
	angle := src.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(src.Float64())
	return mgl64.Vec2{math.Cos(angle) * r, math.Sin(angle) * r}
}
