// @focus: #combat { bolt, collision } #lifecycle { despawn }
package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/physics"
)

// BoltStepResult counts outcomes of one bolt step
type BoltStepResult struct {
	Hits        int
	Deflections int
	Escaped     int
}

// BoltSystem owns the live bolt set
// Only Spawn appends and only Step removes
type BoltSystem struct {
	bladeRadius       float64
	farClip           float64
	reflectMultiplier float64

	scene  core.Scene
	events *event.Batch

	bolts  []*physics.Bolt
	nextID core.BoltID
}

// NewBoltSystem creates a bolt system; nil scene discards presentation calls
func NewBoltSystem(cfg *config.Config, scene core.Scene, events *event.Batch) *BoltSystem {
	if scene == nil {
		scene = core.NopScene{}
	}
	return &BoltSystem{
		bladeRadius:       cfg.Blade.Radius,
		farClip:           cfg.Bolt.FarClip,
		reflectMultiplier: cfg.Bolt.ReflectMultiplier,
		scene:             scene,
		events:            events,
	}
}

// Spawn adds a bolt and requests its visual from the scene
func (s *BoltSystem) Spawn(position, velocity mgl64.Vec3) *physics.Bolt {
	s.nextID++
	b := physics.NewBolt(s.nextID, position, velocity)
	b.Handle = s.scene.SpawnBolt(b.View())
	s.bolts = append(s.bolts, b)

	ev := event.New(event.EventBoltSpawned, 0)
	ev.Bolt = b.ID
	ev.Position = b.Position
	ev.Velocity = b.Velocity
	s.events.Push(ev)
	return b
}

// Step advances every live bolt by dt and resolves collisions on its swept path
//
// Per bolt: advance, far-clip escape, player test, blade test, orient.
// The first terminal outcome ends that bolt's processing for the step.
// Iterates from the highest index down so removal never skips a bolt.
func (s *BoltSystem) Step(dt float64, player core.PlayerTarget, blade core.BladeSegment) BoltStepResult {
	var res BoltStepResult

	for i := len(s.bolts) - 1; i >= 0; i-- {
		b := s.bolts[i]
		start, end := b.Advance(dt)

		if b.Escaped(s.farClip) {
			s.emit(event.EventBoltEscaped, b, b.Position)
			s.remove(i)
			res.Escaped++
			continue
		}

		if !b.Reflected {
			if hit, contact := physics.SweepPlayer(start, end, player); hit {
				b.Position = contact
				s.emit(event.EventPlayerHit, b, contact)
				s.remove(i)
				res.Hits++
				continue
			}

			if c, hit := physics.SweepBlade(start, end, blade, s.bladeRadius); hit {
				if physics.Deflect(b, c, blade, s.reflectMultiplier) {
					s.emit(event.EventBoltDeflected, b, c.BladePoint)
					res.Deflections++
				}
			}
		}

		b.Orient()
		s.scene.SyncBolt(b.Handle, b.View())
	}

	return res
}

func (s *BoltSystem) emit(t event.EventType, b *physics.Bolt, at mgl64.Vec3) {
	ev := event.New(t, 0)
	ev.Bolt = b.ID
	ev.Position = at
	ev.Velocity = b.Velocity
	s.events.Push(ev)
}

// remove drops index i preserving spawn order and releases the visual
func (s *BoltSystem) remove(i int) {
	b := s.bolts[i]
	s.scene.RemoveBolt(b.Handle)

	last := len(s.bolts) - 1
	copy(s.bolts[i:], s.bolts[i+1:])
	s.bolts[last] = nil
	s.bolts = s.bolts[:last]
}

// Bolts returns the live set in spawn order; callers must not mutate it
func (s *BoltSystem) Bolts() []*physics.Bolt {
	return s.bolts
}

func (s *BoltSystem) Len() int {
	return len(s.bolts)
}

// Views returns presentation copies of the live set
func (s *BoltSystem) Views() []core.BoltView {
	views := make([]core.BoltView, len(s.bolts))
	for i, b := range s.bolts {
		views[i] = b.View()
	}
	return views
}

// Clear removes every bolt through the scene without emitting events
func (s *BoltSystem) Clear() {
	for i := len(s.bolts) - 1; i >= 0; i-- {
		s.remove(i)
	}
	s.nextID = 0
}
