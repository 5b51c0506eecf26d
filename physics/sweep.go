package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/vmath"
)

// Contact describes the closest approach between a swept bolt path and the blade
type Contact struct {
	BoltPoint  mgl64.Vec3 // on the swept path
	BladePoint mgl64.Vec3 // on the blade center line
	Distance   float64
}

// SweepPlayer tests the swept path [start, end] against the player sphere
// Returns the closest point on the path when it lies strictly inside the radius
func SweepPlayer(start, end mgl64.Vec3, player core.PlayerTarget) (bool, mgl64.Vec3) {
	closest, _ := vmath.ClosestPointOnSegment(start, end, player.Position)
	if closest.Sub(player.Position).Len() < player.Radius {
		return true, closest
	}
	return false, mgl64.Vec3{}
}

// SweepBlade tests the swept path [start, end] against the blade segment
// radius is the blade's effective collision radius
func SweepBlade(start, end mgl64.Vec3, blade core.BladeSegment, radius float64) (Contact, bool) {
	cBolt, cBlade, _, _ := vmath.ClosestPointsOnSegments(start, end, blade.Start(), blade.End())
	c := Contact{
		BoltPoint:  cBolt,
		BladePoint: cBlade,
		Distance:   cBolt.Sub(cBlade).Len(),
	}
	return c, c.Distance < radius
}
