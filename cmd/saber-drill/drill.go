package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/autopilot"
	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/systems"
)

// Blade scripts
const (
	modeGuard = "guard" // intercept the most urgent incoming bolt
	modeSweep = "sweep" // swing side to side regardless of bolts
	modeRest  = "rest"  // hold still in front
	modeNone  = "none"  // blade out of reach
)

const (
	guardReach     = 0.5
	sweepAmplitude = 0.3
	sweepPeriod    = 1.2
)

// bladeAway keeps the blade far outside any bolt path
var bladeAway = core.BladePose{Center: mgl64.Vec3{0, -100, 0}, Direction: mgl64.Vec3{0, 1, 0}}

type report struct {
	Mode      string       `json:"mode"`
	Stats     engine.Stats `json:"stats"`
	Score     event.Score  `json:"score"`
	Dashes    int          `json:"dashes"`
	BlockRate float64      `json:"blockRate"` // deflections over resolved incoming bolts
}

// dashCounter counts drone dash entries
type dashCounter struct {
	n int
}

func (d *dashCounter) OnEvent(ev event.GameEvent) {
	if ev.State == string(systems.DroneDash) {
		d.n++
	}
}

type drill struct {
	sim    *engine.Simulation
	mode   string
	player core.PlayerPose
	dashes *dashCounter
}

func newDrill(cfg *config.Config, mode string, opts ...engine.Option) (*drill, error) {
	switch mode {
	case modeGuard, modeSweep, modeRest, modeNone:
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	dashes := &dashCounter{}
	opts = append(opts, engine.WithObserver(dashes, event.EventDroneStateChange))
	sim, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &drill{
		sim:    sim,
		mode:   mode,
		player: core.PlayerPose{Forward: mgl64.Vec3{0, 0, -1}},
		dashes: dashes,
	}, nil
}

func (d *drill) blade(t float64) core.BladePose {
	switch d.mode {
	case modeGuard:
		pose, _, _ := autopilot.Guard(d.player, d.sim.Snapshot().Bolts, guardReach)
		return pose
	case modeSweep:
		return autopilot.Sweep(d.player, guardReach, sweepAmplitude, sweepPeriod, t)
	case modeRest:
		return autopilot.Rest(d.player, guardReach)
	default:
		return bladeAway
	}
}

// run steps the simulation for duration seconds at a fixed dt
func (d *drill) run(duration, dt float64) (report, error) {
	if dt <= 0 || duration <= 0 {
		return report{}, fmt.Errorf("duration and dt must be > 0, got %v and %v", duration, dt)
	}

	steps := int(math.Ceil(duration / dt))
	for i := 0; i < steps; i++ {
		d.sim.Step(dt, d.player, d.blade(float64(i)*dt))
	}

	rep := report{
		Mode:   d.mode,
		Stats:  d.sim.Stats(),
		Score:  d.sim.Score(),
		Dashes: d.dashes.n,
	}
	if resolved := rep.Score.HitsDeflected + rep.Score.HitsTaken; resolved > 0 {
		rep.BlockRate = float64(rep.Score.HitsDeflected) / float64(resolved)
	}
	return rep, nil
}
