package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/vmath"
)

// Deflect reflects b about the local contact normal and marks it reflected
//
// The normal runs from the blade-side closest point to the bolt-side closest point.
// It approximates the cylinder surface normal and deviates from it near the tip.
// When the two points coincide the normal is taken from the incoming direction's
// component perpendicular to the blade axis, then from the reversed direction.
//
// Returns false without touching b when it is already reflected or has zero velocity
func Deflect(b *Bolt, c Contact, blade core.BladeSegment, multiplier float64) bool {
	if b.Reflected {
		return false
	}
	dir, ok := vmath.Normalize(b.Velocity)
	if !ok {
		return false
	}

	n := contactNormal(dir, c, blade.Direction)
	speed := b.Speed() * multiplier

	b.Velocity = vmath.Reflect(dir, n).Mul(speed)
	b.Reflected = true
	b.Position = c.BladePoint
	b.Orient()
	return true
}

func contactNormal(dir mgl64.Vec3, c Contact, axis mgl64.Vec3) mgl64.Vec3 {
	if n, ok := vmath.Normalize(c.BoltPoint.Sub(c.BladePoint)); ok {
		return n
	}
	perp := dir.Sub(axis.Mul(dir.Dot(axis)))
	if n, ok := vmath.Normalize(perp.Mul(-1)); ok {
		return n
	}
	return dir.Mul(-1)
}
