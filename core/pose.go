package core

import "github.com/go-gl/mathgl/mgl64"

// BladeAxis is the fallback blade direction when a host reports a zero vector
var BladeAxis = mgl64.Vec3{0, 1, 0}

// PlayerPose is the viewpoint reported by the host each step
type PlayerPose struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	Forward  mgl64.Vec3 `json:"forward" msgpack:"forward"`
}

// BladePose is the blade center line reported by the host each step
type BladePose struct {
	Center    mgl64.Vec3 `json:"center" msgpack:"center"`
	Direction mgl64.Vec3 `json:"direction" msgpack:"direction"`
}

// PlayerTarget is the hit sphere derived from the player pose
type PlayerTarget struct {
	Position mgl64.Vec3
	Radius   float64
}

// BladeSegment is the per-step immutable snapshot of the blade collision line
type BladeSegment struct {
	Center     mgl64.Vec3
	Direction  mgl64.Vec3 // Unit
	HalfLength float64
}

// NewBladeSegment snapshots a pose into a segment, normalizing the direction
func NewBladeSegment(pose BladePose, halfLength float64) BladeSegment {
	dir := BladeAxis
	if lenSq := pose.Direction.Dot(pose.Direction); lenSq > 1e-18 {
		dir = pose.Direction.Normalize()
	}
	return BladeSegment{
		Center:     pose.Center,
		Direction:  dir,
		HalfLength: halfLength,
	}
}

// Start is the hilt-side endpoint
func (b BladeSegment) Start() mgl64.Vec3 {
	return b.Center.Sub(b.Direction.Mul(b.HalfLength))
}

// End is the tip-side endpoint
func (b BladeSegment) End() mgl64.Vec3 {
	return b.Center.Add(b.Direction.Mul(b.HalfLength))
}
