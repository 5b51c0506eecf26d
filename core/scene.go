package core

import "github.com/go-gl/mathgl/mgl64"

// BoltID identifies a bolt for its lifetime within one simulation
type BoltID uint64

// VisualHandle is an opaque token issued by a Scene for a spawned visual
// The simulation stores and returns it but never interprets it
type VisualHandle uint64

// NoHandle marks a bolt without a visual
const NoHandle VisualHandle = 0

// BoltView is the presentation-facing copy of a bolt's state
type BoltView struct {
	ID          BoltID     `json:"id" msgpack:"id"`
	Position    mgl64.Vec3 `json:"position" msgpack:"position"`
	Velocity    mgl64.Vec3 `json:"velocity" msgpack:"velocity"`
	Orientation mgl64.Quat `json:"-" msgpack:"-"`
	Reflected   bool       `json:"reflected" msgpack:"reflected"`
	Age         float64    `json:"age" msgpack:"age"`
}

// Scene is the host's presentation layer
// Spawn is called once per new bolt, Sync after each step the bolt survives,
// Remove exactly once when the bolt leaves the simulation
type Scene interface {
	SpawnBolt(view BoltView) VisualHandle
	SyncBolt(handle VisualHandle, view BoltView)
	RemoveBolt(handle VisualHandle)
}

// NopScene discards all presentation calls
type NopScene struct{}

func (NopScene) SpawnBolt(BoltView) VisualHandle { return NoHandle }
func (NopScene) SyncBolt(VisualHandle, BoltView) {}
func (NopScene) RemoveBolt(VisualHandle) {}
