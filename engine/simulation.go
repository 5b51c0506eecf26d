package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/systems"
	"github.com/lixenwraith/saber-drill/vmath"
)

// StepResult summarizes one simulation step
type StepResult struct {
	Frame       int64             `json:"frame" msgpack:"frame"`
	Hits        int               `json:"hits" msgpack:"hits"`
	Deflections int               `json:"deflections" msgpack:"deflections"`
	Escaped     int               `json:"escaped" msgpack:"escaped"`
	Spawned     int               `json:"spawned" msgpack:"spawned"`
	Events      []event.GameEvent `json:"events" msgpack:"events"`
}

// Stats accumulates counters since construction or the last Reset
type Stats struct {
	Frames      int64   `json:"frames" msgpack:"frames"`
	Elapsed     float64 `json:"elapsed" msgpack:"elapsed"`
	Spawned     int     `json:"spawned" msgpack:"spawned"`
	Hits        int     `json:"hits" msgpack:"hits"`
	Deflections int     `json:"deflections" msgpack:"deflections"`
	Escaped     int     `json:"escaped" msgpack:"escaped"`
	Live        int     `json:"live" msgpack:"live"`
}

// DroneView is the presentation copy of the drone
type DroneView struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	Facing   mgl64.Quat `json:"-" msgpack:"-"`
	State    string     `json:"state" msgpack:"state"`
	Distance float64    `json:"distance" msgpack:"distance"`
}

// Snapshot is a read-only copy of simulation state after the last step
type Snapshot struct {
	Frame    int64           `json:"frame" msgpack:"frame"`
	Time     float64         `json:"time" msgpack:"time"`
	Drone    DroneView       `json:"drone" msgpack:"drone"`
	Bolts    []core.BoltView `json:"bolts" msgpack:"bolts"`
	Score    event.Score     `json:"score" msgpack:"score"`
	NextShot float64         `json:"nextShot" msgpack:"nextShot"`
}

// Simulation composes drone, fire scheduler and bolt systems behind a single Step
// Not safe for concurrent use; hosts serialize calls per simulation
type Simulation struct {
	cfg *config.Config
	rng vmath.Source

	scene  core.Scene
	router *event.Router
	score  *event.Scoreboard
	batch  *event.Batch

	drone *systems.DroneSystem
	fire  *systems.FireScheduler
	bolts *systems.BoltSystem

	stats Stats
}

// New builds a simulation from cfg; nil cfg uses defaults
// cfg is copied, later changes by the caller have no effect
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	s := &Simulation{
		cfg:    cfg,
		scene:  core.NopScene{},
		router: event.NewRouter(),
		score:  event.NewScoreboard(),
		batch:  &event.Batch{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Sim.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		s.rng = vmath.NewFastRand(seed)
	}
	s.router.SubscribeAll(s.score)

	s.drone = systems.NewDroneSystem(cfg, s.rng, s.batch)
	s.fire = systems.NewFireScheduler(cfg, s.rng)
	s.bolts = systems.NewBoltSystem(cfg, s.scene, s.batch)

	return s, nil
}

// Step advances the simulation by dt seconds
//
// Order: drone update, fire tick and spawn, bolt step, event dispatch.
// dt above Sim.MaxDeltaTime is clamped; dt <= 0 performs no motion.
// Poses are snapshotted once and treated as immutable for the step.
func (s *Simulation) Step(dt float64, player core.PlayerPose, blade core.BladePose) StepResult {
	if dt <= 0 {
		return StepResult{Frame: s.stats.Frames}
	}
	if limit := s.cfg.Sim.MaxDeltaTime; limit > 0 && dt > limit {
		dt = limit
	}

	s.stats.Frames++
	s.stats.Elapsed += dt
	s.batch.Frame = s.stats.Frames

	res := StepResult{Frame: s.stats.Frames}

	s.drone.Update(dt, player)

	if s.fire.Tick(dt, s.drone.Distance()) {
		pos, vel := s.fire.Aim(s.drone.Position(), player.Position)
		s.bolts.Spawn(pos, vel)
		res.Spawned++
	}

	target := core.PlayerTarget{Position: player.Position, Radius: s.cfg.Player.HitRadius}
	segment := core.NewBladeSegment(blade, s.cfg.Blade.HalfLength())
	br := s.bolts.Step(dt, target, segment)

	res.Hits = br.Hits
	res.Deflections = br.Deflections
	res.Escaped = br.Escaped

	res.Events = s.batch.Events()
	s.batch.Reset()
	s.router.Dispatch(res.Events)

	s.stats.Spawned += res.Spawned
	s.stats.Hits += res.Hits
	s.stats.Deflections += res.Deflections
	s.stats.Escaped += res.Escaped
	s.stats.Live = s.bolts.Len()

	return res
}

// Subscribe registers an observer for the given types, or every type when none given
func (s *Simulation) Subscribe(o event.Observer, types ...event.EventType) {
	if len(types) == 0 {
		s.router.SubscribeAll(o)
		return
	}
	s.router.Subscribe(o, types...)
}

// Snapshot copies the state after the last step
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame: s.stats.Frames,
		Time:  s.stats.Elapsed,
		Drone: DroneView{
			Position: s.drone.Position(),
			Facing:   s.drone.Facing(),
			State:    string(s.drone.State()),
			Distance: s.drone.Distance(),
		},
		Bolts:    s.bolts.Views(),
		Score:    s.score.Snapshot(),
		NextShot: s.fire.NextInterval() - s.fire.Timer(),
	}
}

func (s *Simulation) Stats() Stats {
	return s.stats
}

func (s *Simulation) Score() event.Score {
	return s.score.Snapshot()
}

// Reset removes every bolt through the scene and restarts drone, scheduler and score
// Observers stay registered
func (s *Simulation) Reset() {
	s.bolts.Clear()
	s.batch.Reset()
	s.batch.Frame = 0
	s.drone.Reset()
	s.fire.Reset()
	s.score.Reset()
	s.stats = Stats{}
}

// Config returns a copy of the active configuration
func (s *Simulation) Config() *config.Config {
	return s.cfg.Clone()
}
