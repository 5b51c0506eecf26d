package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/audio"
	"github.com/lixenwraith/saber-drill/autopilot"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine"
)

const (
	bladeStep  = 0.05 // world units per key press
	angleStep  = 15.0 // degrees per key press
	turnStep   = 10.0 // degrees per key press
	bladeReach = 0.5  // default distance of the blade center in front of the player
)

var worldUp = mgl64.Vec3{0, 1, 0}

// sandbox holds the keyboard-driven poses fed to the simulation
type sandbox struct {
	screen     tcell.Screen
	sim        *engine.Simulation
	view       *view
	cues       *audio.CuePlayer
	halfLength float64

	player  core.PlayerPose
	heading float64    // degrees, 0 faces -z, positive turns right
	offset  mgl64.Vec2 // blade center in the player frame: x right, y forward
	lean    float64    // degrees around the forward axis
	pitch   float64    // degrees around the right axis

	paused bool
	auto   bool
	muted  bool
}

func newSandbox(screen tcell.Screen, sim *engine.Simulation, v *view, cues *audio.CuePlayer, halfLength float64) *sandbox {
	s := &sandbox{
		screen:     screen,
		sim:        sim,
		view:       v,
		cues:       cues,
		halfLength: halfLength,
		offset:     mgl64.Vec2{0, bladeReach},
	}
	s.turn(0)
	return s
}

// turn rotates the player heading by delta degrees
func (s *sandbox) turn(delta float64) {
	s.heading = math.Mod(s.heading+delta, 360)
	rad := mgl64.DegToRad(s.heading)
	s.player.Forward = mgl64.Vec3{math.Sin(rad), 0, -math.Cos(rad)}
}

// bladePose maps the manual controls into world space, or defers to the autopilot
func (s *sandbox) bladePose() core.BladePose {
	if s.auto {
		pose, _, _ := autopilot.Guard(s.player, s.sim.Snapshot().Bolts, bladeReach)
		return pose
	}

	fwd := s.player.Forward
	right := fwd.Cross(worldUp)
	center := s.player.Position.Add(right.Mul(s.offset.X())).Add(fwd.Mul(s.offset.Y()))

	lean := mgl64.QuatRotate(mgl64.DegToRad(s.lean), fwd)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(s.pitch), right)
	return core.BladePose{
		Center:    center,
		Direction: lean.Mul(pitch).Rotate(worldUp),
	}
}

// tick steps the simulation by the wall-clock delta and redraws
func (s *sandbox) tick(dt float64) {
	blade := s.bladePose()
	if !s.paused {
		s.sim.Step(dt, s.player, blade)
		s.view.age(dt)
	}
	s.view.draw(frame{
		snap:   s.sim.Snapshot(),
		player: s.player,
		blade:  core.NewBladeSegment(blade, s.halfLength),
		paused: s.paused,
		muted:  s.muted || s.cues == nil,
		auto:   s.auto,
	})
}

// handleEvent returns false to quit
func (s *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			s.offset[0] -= bladeStep
		case tcell.KeyRight:
			s.offset[0] += bladeStep
		case tcell.KeyUp:
			s.offset[1] += bladeStep
		case tcell.KeyDown:
			s.offset[1] -= bladeStep
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'a':
		s.lean -= angleStep
	case 'd':
		s.lean += angleStep
	case 'w':
		s.pitch += angleStep
	case 's':
		s.pitch -= angleStep
	case 'j':
		s.turn(-turnStep)
	case 'l':
		s.turn(turnStep)
	case 'g':
		s.auto = !s.auto
	case ' ':
		s.paused = !s.paused
	case 'r':
		s.sim.Reset()
		s.view.flashes = nil
	case 'm':
		if s.cues != nil {
			s.muted = !s.cues.ToggleMute()
		}
	}
	return true
}
