package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
)

const tol = 1e-9

func verticalBlade() core.BladeSegment {
	return core.NewBladeSegment(core.BladePose{
		Center:    mgl64.Vec3{0, 0, 0},
		Direction: mgl64.Vec3{0, 1, 0},
	}, 0.5)
}

func TestAdvanceReturnsSweptPath(t *testing.T) {
	b := NewBolt(1, mgl64.Vec3{0, 0, -2}, mgl64.Vec3{0, 0, 4})
	start, end := b.Advance(0.25)

	if !start.ApproxEqual(mgl64.Vec3{0, 0, -2}) || !end.ApproxEqual(mgl64.Vec3{0, 0, -1}) {
		t.Fatalf("swept path = %v -> %v", start, end)
	}
	if b.Age != 0.25 {
		t.Errorf("age = %v, want 0.25", b.Age)
	}
}

func TestOrientZeroVelocity(t *testing.T) {
	b := NewBolt(1, mgl64.Vec3{}, mgl64.Vec3{0, 0, 3})
	before := b.Orientation

	b.Velocity = mgl64.Vec3{}
	if b.Orient() {
		t.Fatal("Orient should report false on zero velocity")
	}
	if b.Orientation != before {
		t.Errorf("orientation changed on zero velocity: %v", b.Orientation)
	}
}

func TestOrientFollowsVelocity(t *testing.T) {
	b := NewBolt(1, mgl64.Vec3{}, mgl64.Vec3{3, 0, 0})
	got := b.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-6) {
		t.Fatalf("facing = %v, want +X", got)
	}
}

func TestEscaped(t *testing.T) {
	b := NewBolt(1, mgl64.Vec3{0, 0, 49}, mgl64.Vec3{})
	if b.Escaped(50) {
		t.Error("bolt inside far clip reported escaped")
	}
	b.Position = mgl64.Vec3{30, 0, 41}
	if !b.Escaped(50) {
		t.Error("bolt beyond far clip not reported escaped")
	}
}

// Endpoint sampling would miss: both ends are 1 unit from the player
func TestSweepPlayerTunneling(t *testing.T) {
	player := core.PlayerTarget{Position: mgl64.Vec3{}, Radius: 0.15}
	b := NewBolt(1, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 20})
	start, end := b.Advance(0.1)

	if end.Len() < player.Radius || start.Len() < player.Radius {
		t.Fatal("test setup: endpoints must lie outside the hit sphere")
	}

	hit, contact := SweepPlayer(start, end, player)
	if !hit {
		t.Fatal("swept path through the player was not detected")
	}
	if contact.Len() > tol {
		t.Errorf("contact = %v, want origin", contact)
	}
}

func TestSweepPlayerMiss(t *testing.T) {
	player := core.PlayerTarget{Position: mgl64.Vec3{}, Radius: 0.15}
	hit, _ := SweepPlayer(mgl64.Vec3{0.2, 0, -1}, mgl64.Vec3{0.2, 0, 1}, player)
	if hit {
		t.Fatal("path 0.2 from player should miss a 0.15 sphere")
	}
}

func TestSweepBlade(t *testing.T) {
	blade := verticalBlade()

	tests := []struct {
		name       string
		start, end mgl64.Vec3
		wantHit    bool
		wantDist   float64
	}{
		{"through center", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1}, true, 0},
		{"within radius", mgl64.Vec3{0.05, 0.2, -1}, mgl64.Vec3{0.05, 0.2, 1}, true, 0.05},
		{"beside blade", mgl64.Vec3{0.1, 0, -1}, mgl64.Vec3{0.1, 0, 1}, false, 0.1},
		{"above tip", mgl64.Vec3{0, 0.6, -1}, mgl64.Vec3{0, 0.6, 1}, false, 0.1},
		{"short of blade", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -0.5}, false, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hit := SweepBlade(tt.start, tt.end, blade, 0.08)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if math.Abs(c.Distance-tt.wantDist) > 1e-9 {
				t.Errorf("distance = %v, want %v", c.Distance, tt.wantDist)
			}
		})
	}
}

func TestDeflectHeadOnThroughAxis(t *testing.T) {
	blade := verticalBlade()
	b := NewBolt(1, mgl64.Vec3{0, 0, -0.7}, mgl64.Vec3{0, 0, 4})
	start, end := b.Advance(0.3)

	c, hit := SweepBlade(start, end, blade, 0.08)
	if !hit {
		t.Fatal("expected blade contact")
	}
	if !Deflect(b, c, blade, 1.1) {
		t.Fatal("Deflect returned false")
	}

	if !b.Reflected {
		t.Error("bolt not marked reflected")
	}
	if b.Velocity.Z() >= 0 {
		t.Errorf("z velocity not reversed: %v", b.Velocity)
	}
	if math.Abs(b.Speed()-4.4) > 1e-9 {
		t.Errorf("speed = %v, want 4.4", b.Speed())
	}
	if !b.Position.ApproxEqual(c.BladePoint) {
		t.Errorf("position %v not snapped to blade point %v", b.Position, c.BladePoint)
	}
}

func TestDeflectUsesContactNormal(t *testing.T) {
	blade := verticalBlade()

	tests := []struct {
		name    string
		vel     mgl64.Vec3
		contact Contact
		want    mgl64.Vec3
	}{
		{
			name:    "bounce back",
			vel:     mgl64.Vec3{0, -2, 0},
			contact: Contact{BoltPoint: mgl64.Vec3{0, 0.55, 0}, BladePoint: mgl64.Vec3{0, 0.5, 0}, Distance: 0.05},
			want:    mgl64.Vec3{0, 1, 0},
		},
		{
			name:    "tangential",
			vel:     mgl64.Vec3{2, 0, 0},
			contact: Contact{BoltPoint: mgl64.Vec3{0, 0.55, 0}, BladePoint: mgl64.Vec3{0, 0.5, 0}, Distance: 0.05},
			want:    mgl64.Vec3{1, 0, 0},
		},
		{
			name:    "along axis degenerate",
			vel:     mgl64.Vec3{0, -2, 0},
			contact: Contact{BoltPoint: mgl64.Vec3{0, 0.5, 0}, BladePoint: mgl64.Vec3{0, 0.5, 0}},
			want:    mgl64.Vec3{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBolt(1, mgl64.Vec3{}, tt.vel)
			if !Deflect(b, tt.contact, blade, 1.1) {
				t.Fatal("Deflect returned false")
			}
			dir := b.Velocity.Normalize()
			if !dir.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("direction = %v, want %v", dir, tt.want)
			}
			if math.Abs(b.Speed()-2.2) > 1e-9 {
				t.Errorf("speed = %v, want 2.2", b.Speed())
			}
		})
	}
}

func TestDeflectOnlyOnce(t *testing.T) {
	blade := verticalBlade()
	c := Contact{BoltPoint: mgl64.Vec3{0, 0.55, 0}, BladePoint: mgl64.Vec3{0, 0.5, 0}, Distance: 0.05}
	b := NewBolt(1, mgl64.Vec3{}, mgl64.Vec3{0, -2, 0})

	if !Deflect(b, c, blade, 1.1) {
		t.Fatal("first deflect failed")
	}
	vel := b.Velocity
	if Deflect(b, c, blade, 1.1) {
		t.Fatal("second deflect should be rejected")
	}
	if b.Velocity != vel {
		t.Errorf("velocity changed on rejected deflect: %v -> %v", vel, b.Velocity)
	}
}

func TestDeflectZeroVelocity(t *testing.T) {
	blade := verticalBlade()
	b := NewBolt(1, mgl64.Vec3{0, 0, 0.01}, mgl64.Vec3{})
	if Deflect(b, Contact{BoltPoint: b.Position}, blade, 1.1) {
		t.Fatal("zero velocity deflect should be a no-op")
	}
	if b.Reflected {
		t.Error("zero velocity bolt marked reflected")
	}
}
