package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/vmath"
)

// Bolt is a live projectile
// Owned by the bolt system; mutated only during a simulation step
type Bolt struct {
	ID          core.BoltID
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3 // units/sec, magnitude is speed
	Reflected   bool       // set once on first blade contact, never cleared
	Age         float64    // seconds since spawn
	Orientation mgl64.Quat
	Handle      core.VisualHandle
}

// NewBolt creates a bolt facing along its velocity
func NewBolt(id core.BoltID, position, velocity mgl64.Vec3) *Bolt {
	b := &Bolt{
		ID:          id,
		Position:    position,
		Velocity:    velocity,
		Orientation: mgl64.QuatIdent(),
	}
	b.Orient()
	return b
}

func (b *Bolt) Speed() float64 {
	return b.Velocity.Len()
}

// Advance integrates position over dt and returns the swept path of the step
func (b *Bolt) Advance(dt float64) (start, end mgl64.Vec3) {
	start = b.Position
	b.Position = start.Add(b.Velocity.Mul(dt))
	b.Age += dt
	return start, b.Position
}

// Orient aligns the facing quaternion with velocity
// Zero velocity keeps the previous orientation and returns false
func (b *Bolt) Orient() bool {
	q, ok := vmath.FacingQuat(b.Velocity)
	if ok {
		b.Orientation = q
	}
	return ok
}

// Escaped reports whether the bolt is beyond farClip from the world origin
func (b *Bolt) Escaped(farClip float64) bool {
	return b.Position.Dot(b.Position) > farClip*farClip
}

// View returns the presentation copy of the bolt
func (b *Bolt) View() core.BoltView {
	return core.BoltView{
		ID:          b.ID,
		Position:    b.Position,
		Velocity:    b.Velocity,
		Orientation: b.Orientation,
		Reflected:   b.Reflected,
		Age:         b.Age,
	}
}
