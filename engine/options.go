package engine

import (
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/vmath"
)

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithScene sets the presentation port receiving bolt spawn/sync/remove calls
func WithScene(scene core.Scene) Option {
	return func(s *Simulation) {
		if scene != nil {
			s.scene = scene
		}
	}
}

// WithObserver registers an observer for the given types, or every type when none given
func WithObserver(o event.Observer, types ...event.EventType) Option {
	return func(s *Simulation) {
		s.Subscribe(o, types...)
	}
}

// WithSource replaces the seeded generator, typically with a fixed sequence in tests
func WithSource(src vmath.Source) Option {
	return func(s *Simulation) {
		s.rng = src
	}
}
