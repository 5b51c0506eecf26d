package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/vmath"
)

// FireScheduler decides when the drone shoots and where the shot goes
// Closer engagement yields a shorter interval
type FireScheduler struct {
	fire config.FireConfig
	bolt config.BoltConfig
	rng  vmath.Source

	timer    float64
	interval float64
}

func NewFireScheduler(cfg *config.Config, rng vmath.Source) *FireScheduler {
	f := &FireScheduler{
		fire: cfg.Fire,
		bolt: cfg.Bolt,
		rng:  rng,
	}
	f.Reset()
	return f
}

// Interval maps drone-to-player distance to seconds between shots
// lerp(min, max, clamp01((distance-near)/(far-near))) * jitter
func (f *FireScheduler) Interval(distance, jitter float64) float64 {
	t := vmath.Clamp01(vmath.InverseLerp(f.fire.NearDistance, f.fire.FarDistance, distance))
	return vmath.Lerp(f.fire.IntervalMin, f.fire.IntervalMax, t) * jitter
}

// Tick accumulates dt and reports whether a shot is due
// On a shot the timer restarts and the next interval is drawn from the current distance
func (f *FireScheduler) Tick(dt, distance float64) bool {
	f.timer += dt
	if f.timer <= f.interval {
		return false
	}
	f.timer = 0
	jitter := vmath.Range(f.rng, f.fire.JitterMin, f.fire.JitterMax)
	f.interval = f.Interval(distance, jitter)
	return true
}

// Aim returns spawn position and velocity for a shot from dronePos at playerPos
// The target is jittered independently per axis and speed is drawn from the bolt band
func (f *FireScheduler) Aim(dronePos, playerPos mgl64.Vec3) (position, velocity mgl64.Vec3) {
	j := f.bolt.AimJitter
	target := playerPos.Add(mgl64.Vec3{
		vmath.Symmetric(f.rng, j),
		vmath.Symmetric(f.rng, j),
		vmath.Symmetric(f.rng, j),
	})

	dir, ok := vmath.Normalize(target.Sub(dronePos))
	if !ok {
		if dir, ok = vmath.Normalize(playerPos.Sub(dronePos)); !ok {
			dir = vmath.Forward
		}
	}

	speed := vmath.Range(f.rng, f.bolt.SpeedMin, f.bolt.SpeedMax)
	position = dronePos.Add(dir.Mul(f.bolt.HalfLength))
	velocity = dir.Mul(speed)
	return position, velocity
}

// Reset restores the initial interval and clears the timer
func (f *FireScheduler) Reset() {
	f.timer = 0
	f.interval = f.fire.InitialInterval
}

// NextInterval returns the interval the timer is currently running against
func (f *FireScheduler) NextInterval() float64 {
	return f.interval
}

func (f *FireScheduler) Timer() float64 {
	return f.timer
}
