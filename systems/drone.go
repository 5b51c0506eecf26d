// @focus: #combat { drone } #flow { state }
package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine/fsm"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/vmath"
)

// DroneState names the drone motion state
type DroneState string

const (
	DroneIdle DroneState = "idle"
	DroneDash DroneState = "dash"
)

const (
	droneRoot fsm.StateID = fsm.StateRoot
	droneIdle fsm.StateID = iota + 2
	droneDash
)

// triggerRecenter forces a dash from any state
const triggerRecenter fsm.Trigger = 1

var (
	worldUp = mgl64.Vec3{0, 1, 0}
	// Player forward used when the host reports a zero vector
	defaultForward = mgl64.Vec3{0, 0, -1}
)

// DroneSystem moves the drone around a pursuit anchor in front of the player
//
// The anchor is the player position and facing captured at start or on recenter.
// The center drifts slowly toward the player; offsets are sampled in a disc on the
// plane spanned by the anchor's right and world up.
type DroneSystem struct {
	cfg    config.DroneConfig
	rng    vmath.Source
	events *event.Batch

	machine *fsm.Machine[*DroneSystem]

	initialized bool
	center      mgl64.Vec3
	forwardDir  mgl64.Vec3
	position    mgl64.Vec3
	facing      mgl64.Quat
	distance    float64

	currentOffset mgl64.Vec2
	targetOffset  mgl64.Vec2
	duration      float64
	recentering   bool
	recenters     int
}

func NewDroneSystem(cfg *config.Config, rng vmath.Source, events *event.Batch) *DroneSystem {
	d := &DroneSystem{
		cfg:     cfg.Drone,
		rng:     rng,
		events:  events,
		machine: fsm.NewMachine[*DroneSystem](),
		facing:  mgl64.QuatIdent(),
	}
	d.buildMachine()
	d.Reset()
	return d
}

func (d *DroneSystem) buildMachine() {
	m := d.machine
	expired := func(d *DroneSystem) bool { return m.TimeInState() > d.duration }

	m.AddState(droneRoot, "root", fsm.StateNone).
		On(triggerRecenter, droneDash, nil)

	m.AddState(droneIdle, string(DroneIdle), droneRoot).
		Enter((*DroneSystem).enterIdle).
		On(fsm.TriggerTick, droneDash, func(d *DroneSystem) bool {
			return expired(d) && vmath.Chance(d.rng, d.cfg.DashChance)
		}).
		On(fsm.TriggerTick, droneIdle, expired)

	m.AddState(droneDash, string(DroneDash), droneRoot).
		Enter((*DroneSystem).enterDash).
		On(fsm.TriggerTick, droneIdle, expired)

	// Static graph, cannot fail
	if err := m.CompilePaths(); err != nil {
		panic(err)
	}
}

func (d *DroneSystem) enterIdle() {
	d.duration = vmath.Range(d.rng, d.cfg.IdleDurationMin, d.cfg.IdleDurationMax)
	d.targetOffset = vmath.Disc(d.rng, d.cfg.IdleRadius)
	d.emitState(DroneIdle)
}

func (d *DroneSystem) enterDash() {
	if d.recentering {
		d.duration = vmath.Range(d.rng, d.cfg.RecenterDurationMin, d.cfg.RecenterDurationMax)
	} else {
		d.duration = vmath.Range(d.rng, d.cfg.DashDurationMin, d.cfg.DashDurationMax)
	}
	d.targetOffset = vmath.Disc(d.rng, d.cfg.DashRadius)
	d.emitState(DroneDash)
}

func (d *DroneSystem) emitState(s DroneState) {
	ev := event.New(event.EventDroneStateChange, 0)
	ev.Position = d.position
	ev.State = string(s)
	d.events.Push(ev)
}

// Update advances drone motion by dt against the current player pose
// dt <= 0 leaves the drone in place but still refreshes the distance
func (d *DroneSystem) Update(dt float64, player core.PlayerPose) {
	viewDir, ok := vmath.Normalize(player.Forward)
	if !ok {
		viewDir = defaultForward
	}

	if !d.initialized {
		d.center = player.Position
		d.forwardDir = viewDir
		d.position = player.Position.Add(viewDir.Mul(d.cfg.BaseDistance))
		d.initialized = true
	}

	if dt > 0 {
		d.machine.Update(d, dt)
		d.move(dt, player.Position)

		toDrone := d.position.Sub(player.Position)
		if vmath.AngleBetweenDeg(viewDir, toDrone) > d.cfg.RecenterAngleDeg {
			d.recenter(player.Position, viewDir)
		}
	}

	if q, ok := vmath.FacingQuat(player.Position.Sub(d.position)); ok {
		d.facing = q
	}
	d.distance = d.position.Sub(player.Position).Len()
}

func (d *DroneSystem) move(dt float64, playerPos mgl64.Vec3) {
	speed := d.cfg.IdleLerpSpeed
	if d.State() == DroneDash {
		speed = d.cfg.DashLerpSpeed
	}
	k := vmath.SmoothFactor(speed, dt)
	d.currentOffset = vmath.LerpVec2(d.currentOffset, d.targetOffset, k)

	forward, ok := vmath.Normalize(d.forwardDir)
	if !ok {
		forward = defaultForward
	}
	right, ok := vmath.Normalize(forward.Cross(worldUp))
	if !ok {
		right = mgl64.Vec3{1, 0, 0}
	}

	target := d.center.
		Add(forward.Mul(d.cfg.BaseDistance)).
		Add(right.Mul(d.currentOffset.X())).
		Add(worldUp.Mul(d.currentOffset.Y()))

	d.position = vmath.LerpVec3(d.position, target, k)
	d.center = vmath.LerpVec3(d.center, playerPos, vmath.SmoothFactor(d.cfg.CenterDriftRate, dt))
}

// recenter resets the anchor to the player and forces a dash
func (d *DroneSystem) recenter(playerPos, viewDir mgl64.Vec3) {
	d.center = playerPos
	d.forwardDir = viewDir
	d.recentering = true
	d.machine.HandleEvent(d, triggerRecenter)
	d.recentering = false
	d.recenters++
}

func (d *DroneSystem) Position() mgl64.Vec3 {
	return d.position
}

// Facing is the drone's look-at rotation toward the player
func (d *DroneSystem) Facing() mgl64.Quat {
	return d.facing
}

func (d *DroneSystem) State() DroneState {
	return DroneState(d.machine.ActiveStateName())
}

// Distance is the drone-to-player distance as of the last Update
func (d *DroneSystem) Distance() float64 {
	return d.distance
}

// Recenters counts forced recenter dashes since the last reset
func (d *DroneSystem) Recenters() int {
	return d.recenters
}

// Reset returns the drone to idle with a zero offset; placement happens on the next Update
func (d *DroneSystem) Reset() {
	d.initialized = false
	d.currentOffset = mgl64.Vec2{}
	d.facing = mgl64.QuatIdent()
	d.distance = 0
	d.recenters = 0

	if d.machine.ActiveState() == fsm.StateNone {
		if err := d.machine.Init(d, droneIdle); err != nil {
			panic(err)
		}
	} else if err := d.machine.Reset(d); err != nil {
		panic(err)
	}

	d.targetOffset = mgl64.Vec2{}
	d.duration = d.cfg.InitialDuration
}
