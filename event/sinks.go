package event

import (
	"log"
	"sync"
)

// Score is a point-in-time copy of the scoreboard
type Score struct {
	HitsTaken     int `json:"hitsTaken" msgpack:"hitsTaken"`
	HitsDeflected int `json:"hitsDeflected" msgpack:"hitsDeflected"`
}

// Scoreboard counts hits taken and bolts deflected
// Written from the stepping goroutine, readable from any goroutine
type Scoreboard struct {
	mu    sync.RWMutex
	score Score
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

func (s *Scoreboard) OnEvent(ev GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Type {
	case EventPlayerHit:
		s.score.HitsTaken++
	case EventBoltDeflected:
		s.score.HitsDeflected++
	}
}

func (s *Scoreboard) Snapshot() Score {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

func (s *Scoreboard) Reset() {
	s.mu.Lock()
	s.score = Score{}
	s.mu.Unlock()
}

// LogObserver writes scoring events to a logger
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver logs to logger, or to the standard logger when nil
func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{logger: logger}
}

func (l *LogObserver) OnEvent(ev GameEvent) {
	switch ev.Type {
	case EventPlayerHit:
		l.logger.Printf("Player hit: bolt=%d frame=%d at=%.3v", ev.Bolt, ev.Frame, ev.Position)
	case EventBoltDeflected:
		l.logger.Printf("Bolt deflected: bolt=%d frame=%d at=%.3v", ev.Bolt, ev.Frame, ev.Position)
	case EventDroneStateChange:
		l.logger.Printf("Drone state: %s frame=%d", ev.State, ev.Frame)
	}
}
