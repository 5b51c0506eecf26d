package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
)

// fixedSource returns the same value for every draw
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// recordingScene tracks presentation calls per handle
type recordingScene struct {
	next    core.VisualHandle
	spawned map[core.VisualHandle]core.BoltView
	synced  map[core.VisualHandle]int
	removed map[core.VisualHandle]int
	last    map[core.VisualHandle]core.BoltView
}

func newRecordingScene() *recordingScene {
	return &recordingScene{
		spawned: make(map[core.VisualHandle]core.BoltView),
		synced:  make(map[core.VisualHandle]int),
		removed: make(map[core.VisualHandle]int),
		last:    make(map[core.VisualHandle]core.BoltView),
	}
}

func (s *recordingScene) SpawnBolt(v core.BoltView) core.VisualHandle {
	s.next++
	s.spawned[s.next] = v
	return s.next
}

func (s *recordingScene) SyncBolt(h core.VisualHandle, v core.BoltView) {
	s.synced[h]++
	s.last[h] = v
}

func (s *recordingScene) RemoveBolt(h core.VisualHandle) {
	s.removed[h]++
}

func bladeAt(center mgl64.Vec3) core.BladeSegment {
	return core.NewBladeSegment(core.BladePose{
		Center:    center,
		Direction: mgl64.Vec3{0, 1, 0},
	}, 0.5)
}

func playerAt(p mgl64.Vec3) core.PlayerTarget {
	return core.PlayerTarget{Position: p, Radius: 0.15}
}
