package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/event"
)

func newBoltFixture() (*BoltSystem, *FireScheduler, *recordingScene, *event.Batch) {
	cfg := config.Default()
	scene := newRecordingScene()
	batch := &event.Batch{}
	return NewBoltSystem(cfg, scene, batch), NewFireScheduler(cfg, fixedSource(0.5)), scene, batch
}

func countEvents(b *event.Batch, t event.EventType) int {
	n := 0
	for _, ev := range b.Events() {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Drone at (0,0,-2) fires at the player; the blade at the origin lies on the path
// The player stands behind the blade so the blade is reached first
func TestBoltScenarioDeflect(t *testing.T) {
	bs, fire, scene, batch := newBoltFixture()
	pos, vel := fire.Aim(mgl64.Vec3{0, 0, -2}, mgl64.Vec3{})
	b := bs.Spawn(pos, vel)
	speed := b.Speed()

	player := playerAt(mgl64.Vec3{0, 0, 1})
	blade := bladeAt(mgl64.Vec3{})

	for i := 0; i < 4; i++ {
		bs.Step(0.3, player, blade)
	}

	if n := countEvents(batch, event.EventBoltDeflected); n != 1 {
		t.Fatalf("deflected events = %d, want 1", n)
	}
	if n := countEvents(batch, event.EventPlayerHit); n != 0 {
		t.Fatalf("hit events = %d, want 0", n)
	}
	if bs.Len() != 1 {
		t.Fatalf("live bolts = %d, want 1", bs.Len())
	}
	if b.Velocity.Z() >= 0 {
		t.Errorf("z velocity not reversed: %v", b.Velocity)
	}
	if math.Abs(b.Speed()-speed*1.1) > 1e-9 {
		t.Errorf("speed = %v, want %v", b.Speed(), speed*1.1)
	}
	if v := scene.last[b.Handle]; !v.Reflected {
		t.Error("scene not re-synced with reflected view")
	}
}

func TestBoltScenarioHit(t *testing.T) {
	bs, fire, scene, batch := newBoltFixture()
	pos, vel := fire.Aim(mgl64.Vec3{0, 0, -2}, mgl64.Vec3{})
	b := bs.Spawn(pos, vel)

	player := playerAt(mgl64.Vec3{})
	blade := bladeAt(mgl64.Vec3{5, 0, 0})

	var hits int
	for i := 0; i < 4; i++ {
		hits += bs.Step(0.3, player, blade).Hits
	}

	if hits != 1 || countEvents(batch, event.EventPlayerHit) != 1 {
		t.Fatalf("hits = %d, events = %d, want 1", hits, countEvents(batch, event.EventPlayerHit))
	}
	if bs.Len() != 0 {
		t.Fatalf("bolt not removed, live = %d", bs.Len())
	}
	if scene.removed[b.Handle] != 1 {
		t.Errorf("RemoveBolt calls = %d, want 1", scene.removed[b.Handle])
	}
	if b.Position.Len() > 1e-9 {
		t.Errorf("position %v not snapped to contact", b.Position)
	}
}

// Player check runs before the blade check within a step
func TestBoltPlayerCheckPrecedesBlade(t *testing.T) {
	bs, _, _, batch := newBoltFixture()
	bs.Spawn(mgl64.Vec3{0, 0, -0.7}, mgl64.Vec3{0, 0, 4})

	res := bs.Step(0.3, playerAt(mgl64.Vec3{}), bladeAt(mgl64.Vec3{}))
	if res.Hits != 1 || res.Deflections != 0 {
		t.Fatalf("result = %+v, want one hit and no deflection", res)
	}
	if countEvents(batch, event.EventBoltDeflected) != 0 {
		t.Error("bolt scored as both hit and deflection")
	}
}

func TestBoltReflectedSkipsBlade(t *testing.T) {
	bs, _, _, batch := newBoltFixture()
	b := bs.Spawn(mgl64.Vec3{0, 0, -0.5}, mgl64.Vec3{0, 0, 4})
	b.Reflected = true
	vel := b.Velocity

	// Player at origin is also ignored for reflected bolts
	res := bs.Step(0.25, playerAt(mgl64.Vec3{}), bladeAt(mgl64.Vec3{}))
	if res.Deflections != 0 || res.Hits != 0 {
		t.Fatalf("reflected bolt interacted: %+v", res)
	}
	if b.Velocity != vel {
		t.Errorf("velocity changed: %v -> %v", vel, b.Velocity)
	}
	if countEvents(batch, event.EventBoltDeflected) != 0 {
		t.Error("deflected event emitted for reflected bolt")
	}
}

func TestBoltEscape(t *testing.T) {
	bs, _, scene, batch := newBoltFixture()
	b := bs.Spawn(mgl64.Vec3{0, 0, 49.9}, mgl64.Vec3{0, 0, 4})

	res := bs.Step(0.1, playerAt(mgl64.Vec3{}), bladeAt(mgl64.Vec3{}))
	if res.Escaped != 1 || bs.Len() != 0 {
		t.Fatalf("escape not processed: %+v live=%d", res, bs.Len())
	}
	if scene.removed[b.Handle] != 1 || scene.synced[b.Handle] != 0 {
		t.Errorf("scene calls: removed=%d synced=%d", scene.removed[b.Handle], scene.synced[b.Handle])
	}
	if countEvents(batch, event.EventBoltEscaped) != 1 {
		t.Error("missing escape event")
	}
}

// Every bolt is processed even when neighbours are removed in the same step
func TestBoltBackwardRemoval(t *testing.T) {
	bs, _, scene, _ := newBoltFixture()
	keep := []int{1, 3}
	for i := 0; i < 5; i++ {
		z := 49.9
		for _, k := range keep {
			if i == k {
				z = 10
			}
		}
		bs.Spawn(mgl64.Vec3{0, 0, z}, mgl64.Vec3{0, 0, 4})
	}

	res := bs.Step(0.1, playerAt(mgl64.Vec3{}), bladeAt(mgl64.Vec3{}))
	if res.Escaped != 3 {
		t.Fatalf("escaped = %d, want 3", res.Escaped)
	}
	if bs.Len() != 2 {
		t.Fatalf("live = %d, want 2", bs.Len())
	}
	if bs.Bolts()[0].ID != 2 || bs.Bolts()[1].ID != 4 {
		t.Errorf("survivor order = %d,%d, want 2,4", bs.Bolts()[0].ID, bs.Bolts()[1].ID)
	}
	for _, b := range bs.Bolts() {
		if scene.synced[b.Handle] != 1 {
			t.Errorf("bolt %d synced %d times", b.ID, scene.synced[b.Handle])
		}
		if b.Age != 0.1 {
			t.Errorf("bolt %d age = %v", b.ID, b.Age)
		}
	}
}

func TestBoltClear(t *testing.T) {
	bs, _, scene, _ := newBoltFixture()
	bs.Spawn(mgl64.Vec3{0, 0, -2}, mgl64.Vec3{0, 0, 4})
	bs.Spawn(mgl64.Vec3{0, 0, -3}, mgl64.Vec3{0, 0, 4})

	bs.Clear()
	if bs.Len() != 0 {
		t.Fatalf("live = %d after clear", bs.Len())
	}
	if len(scene.removed) != 2 {
		t.Errorf("removed %d visuals, want 2", len(scene.removed))
	}
	if b := bs.Spawn(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}); b.ID != 1 {
		t.Errorf("ids not restarted after clear: %d", b.ID)
	}
}

func TestBoltSpawnEvent(t *testing.T) {
	bs, _, scene, batch := newBoltFixture()
	b := bs.Spawn(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 4})

	if b.Handle == 0 {
		t.Fatal("scene handle not stored")
	}
	if _, ok := scene.spawned[b.Handle]; !ok {
		t.Fatal("SpawnBolt not called")
	}
	evs := batch.Events()
	if len(evs) != 1 || evs[0].Type != event.EventBoltSpawned || evs[0].Bolt != b.ID {
		t.Fatalf("events = %+v", evs)
	}
}
