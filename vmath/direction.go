package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the local axis a facing quaternion rotates onto the target direction
var Forward = mgl64.Vec3{0, 0, 1}

// Normalize returns the unit vector and false for zero-length input
// mgl64.Vec3.Normalize divides by zero on a zero vector
func Normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	lenSq := v.Dot(v)
	if lenSq < Epsilon*Epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / math.Sqrt(lenSq)), true
}

// Reflect mirrors dir about the plane with the given unit normal and renormalizes
// r = dir - 2(dir·n)n; zero dir stays zero
func Reflect(dir, normal mgl64.Vec3) mgl64.Vec3 {
	r := dir.Sub(normal.Mul(2 * dir.Dot(normal)))
	n, _ := Normalize(r)
	return n
}

// FacingQuat returns the rotation taking Forward onto dir
// Zero dir returns identity and false
func FacingQuat(dir mgl64.Vec3) (mgl64.Quat, bool) {
	n, ok := Normalize(dir)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatBetweenVectors(Forward, n), true
}

// AngleBetweenDeg returns the angle between two directions in degrees
// Zero-length input yields 0
func AngleBetweenDeg(a, b mgl64.Vec3) float64 {
	na, okA := Normalize(a)
	nb, okB := Normalize(b)
	if !okA || !okB {
		return 0
	}
	dot := mgl64.Clamp(na.Dot(nb), -1, 1)
	return mgl64.RadToDeg(math.Acos(dot))
}
