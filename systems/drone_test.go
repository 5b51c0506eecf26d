package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/vmath"
)

var lookNegZ = core.PlayerPose{Position: mgl64.Vec3{}, Forward: mgl64.Vec3{0, 0, -1}}

func TestDroneInitialPlacement(t *testing.T) {
	cfg := config.Default()
	d := NewDroneSystem(cfg, fixedSource(0.5), nil)
	d.Update(0, lookNegZ)

	want := mgl64.Vec3{0, 0, -cfg.Drone.BaseDistance}
	if !d.Position().ApproxEqual(want) {
		t.Fatalf("position = %v, want %v", d.Position(), want)
	}
	if d.Distance() != cfg.Drone.BaseDistance {
		t.Errorf("distance = %v, want %v", d.Distance(), cfg.Drone.BaseDistance)
	}
	if d.State() != DroneIdle {
		t.Errorf("state = %s, want idle", d.State())
	}
}

func TestDroneIdleToDash(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.5), nil)

	// Initial idle lasts 2s; 0.5 < dash chance so the next state is dash
	for i := 0; i < 4; i++ {
		d.Update(0.5, lookNegZ)
	}
	if d.State() != DroneIdle {
		t.Fatalf("left idle early: %s", d.State())
	}
	d.Update(0.5, lookNegZ)
	if d.State() != DroneDash {
		t.Fatalf("state = %s, want dash", d.State())
	}

	// Dash lasts 0.325s at u=0.5 and always returns to idle
	d.Update(0.5, lookNegZ)
	if d.State() != DroneIdle {
		t.Fatalf("state = %s, want idle after dash", d.State())
	}
	if d.Recenters() != 0 {
		t.Errorf("unexpected recenters: %d", d.Recenters())
	}
}

func TestDroneIdleStaysIdle(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.9), nil)
	for i := 0; i < 10; i++ {
		d.Update(0.5, lookNegZ)
		if d.State() != DroneIdle {
			t.Fatalf("step %d: state = %s, want idle", i, d.State())
		}
	}
}

func TestDroneRecenter(t *testing.T) {
	cfg := config.Default()
	batch := &event.Batch{}
	d := NewDroneSystem(cfg, fixedSource(0.9), batch)
	d.Update(0.1, lookNegZ)
	batch.Reset()

	turned := core.PlayerPose{Position: mgl64.Vec3{}, Forward: mgl64.Vec3{1, 0, 0}}
	d.Update(0.1, turned)

	if d.Recenters() != 1 {
		t.Fatalf("recenters = %d, want 1", d.Recenters())
	}
	if d.State() != DroneDash {
		t.Fatalf("state = %s, want dash", d.State())
	}

	var dashEvents int
	for _, ev := range batch.Events() {
		if ev.Type == event.EventDroneStateChange && ev.State == string(DroneDash) {
			dashEvents++
		}
	}
	if dashEvents != 1 {
		t.Errorf("dash state events = %d, want 1", dashEvents)
	}

	for i := 0; i < 100; i++ {
		d.Update(0.1, turned)
	}
	anchor := mgl64.Vec3{cfg.Drone.BaseDistance, 0, 0}
	if off := d.Position().Sub(anchor).Len(); off > cfg.Drone.DashRadius+0.05 {
		t.Errorf("drone %v did not settle near %v (off %v)", d.Position(), anchor, off)
	}
	if angle := vmath.AngleBetweenDeg(turned.Forward, d.Position()); angle > cfg.Drone.RecenterAngleDeg {
		t.Errorf("drone still outside view cone: %v deg", angle)
	}
}

func TestDroneFacesPlayer(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.3), nil)
	player := core.PlayerPose{Position: mgl64.Vec3{0.5, 1.2, 0}, Forward: mgl64.Vec3{0, 0, -1}}
	for i := 0; i < 20; i++ {
		d.Update(0.05, player)
	}

	want := player.Position.Sub(d.Position()).Normalize()
	got := d.Facing().Rotate(vmath.Forward)
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Fatalf("facing = %v, want %v", got, want)
	}
}

func TestDroneNonPositiveDtHoldsPosition(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.5), nil)
	d.Update(0.2, lookNegZ)
	pos := d.Position()

	d.Update(0, lookNegZ)
	d.Update(-1, lookNegZ)
	if d.Position() != pos {
		t.Fatalf("position moved on dt<=0: %v -> %v", pos, d.Position())
	}
}

func TestDroneZeroForward(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.5), nil)
	d.Update(0.1, core.PlayerPose{})
	if d.Position().Z() >= 0 {
		t.Fatalf("zero forward should place drone along -Z, got %v", d.Position())
	}
}

func TestDroneReset(t *testing.T) {
	d := NewDroneSystem(config.Default(), fixedSource(0.5), nil)
	for i := 0; i < 6; i++ {
		d.Update(0.5, lookNegZ)
	}
	d.Update(0.1, core.PlayerPose{Forward: mgl64.Vec3{1, 0, 0}})

	d.Reset()
	if d.State() != DroneIdle || d.Recenters() != 0 {
		t.Fatalf("reset left state=%s recenters=%d", d.State(), d.Recenters())
	}

	moved := core.PlayerPose{Position: mgl64.Vec3{3, 0, 0}, Forward: mgl64.Vec3{0, 0, -1}}
	d.Update(0, moved)
	if !d.Position().ApproxEqual(mgl64.Vec3{3, 0, -1.6}) {
		t.Errorf("not re-placed after reset: %v", d.Position())
	}
}
