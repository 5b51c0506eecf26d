// Package autopilot drives the blade without a human, for headless drills and demos
package autopilot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/vmath"
)

var (
	worldUp        = mgl64.Vec3{0, 1, 0}
	defaultForward = mgl64.Vec3{0, 0, -1}
)

// Target is the bolt the guard has committed to
type Target struct {
	Bolt    core.BoltID
	Arrival float64 // Seconds until the bolt crosses the guard plane
}

// Rest holds the blade upright at reach in front of the player
func Rest(player core.PlayerPose, reach float64) core.BladePose {
	fwd, ok := vmath.Normalize(player.Forward)
	if !ok {
		fwd = defaultForward
	}
	return core.BladePose{
		Center:    player.Position.Add(fwd.Mul(reach)),
		Direction: worldUp,
	}
}

// Guard places the blade across the path of the most urgent incoming bolt
// The guard plane faces the bolt at reach from the player; the blade center is where
// the bolt ray pierces it. Reflected and receding bolts are ignored.
// Returns Rest and false when nothing is incoming
func Guard(player core.PlayerPose, bolts []core.BoltView, reach float64) (core.BladePose, Target, bool) {
	var (
		best    Target
		center  mgl64.Vec3
		found   bool
		bestDir mgl64.Vec3
	)

	for _, b := range bolts {
		if b.Reflected {
			continue
		}
		n, ok := vmath.Normalize(b.Position.Sub(player.Position))
		if !ok {
			continue
		}
		closing := b.Velocity.Dot(n)
		if closing >= 0 {
			continue
		}
		s := (reach - b.Position.Sub(player.Position).Dot(n)) / closing
		if s < 0 {
			// Already inside the guard plane
			continue
		}
		if found && s >= best.Arrival {
			continue
		}
		best = Target{Bolt: b.ID, Arrival: s}
		center = b.Position.Add(b.Velocity.Mul(s))
		bestDir = n
		found = true
	}

	if !found {
		return Rest(player, reach), Target{}, false
	}

	// Upright unless the bolt comes from straight above or below
	dir := worldUp
	if math.Abs(bestDir.Dot(worldUp)) > 0.9 {
		dir = mgl64.Vec3{1, 0, 0}
	}
	return core.BladePose{Center: center, Direction: dir}, best, true
}

// Sweep swings the blade side to side in front of the player
// period is the full left-right-left cycle in seconds
func Sweep(player core.PlayerPose, reach, amplitude, period, t float64) core.BladePose {
	pose := Rest(player, reach)
	if period <= 0 {
		return pose
	}
	fwd, ok := vmath.Normalize(player.Forward)
	if !ok {
		fwd = defaultForward
	}
	right, ok := vmath.Normalize(fwd.Cross(worldUp))
	if !ok {
		right = mgl64.Vec3{1, 0, 0}
	}
	phase := math.Sin(2 * math.Pi * t / period)
	pose.Center = pose.Center.Add(right.Mul(amplitude * phase))
	return pose
}
