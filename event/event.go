package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/saber-drill/core"
)

// GameEvent is a single emitted simulation event
// Fields unused by a type are left zero
type GameEvent struct {
	Type     EventType   `json:"-" msgpack:"-"`
	Name     string      `json:"type" msgpack:"type"`
	Frame    int64       `json:"frame" msgpack:"frame"`
	Bolt     core.BoltID `json:"bolt,omitempty" msgpack:"bolt,omitempty"`
	Position mgl64.Vec3  `json:"position" msgpack:"position"`
	Velocity mgl64.Vec3  `json:"velocity" msgpack:"velocity"`
	State    string      `json:"state,omitempty" msgpack:"state,omitempty"`
}

// New builds an event with its wire name filled in
func New(t EventType, frame int64) GameEvent {
	return GameEvent{Type: t, Name: t.String(), Frame: frame}
}

// Batch collects events emitted during one step in emission order
type Batch struct {
	// Frame is stamped onto every pushed event
	Frame  int64
	events []GameEvent
}

func (b *Batch) Push(ev GameEvent) {
	if b == nil {
		return
	}
	ev.Frame = b.Frame
	b.events = append(b.events, ev)
}

// Events returns the collected events; the slice is owned by the caller afterwards
func (b *Batch) Events() []GameEvent {
	return b.events
}

func (b *Batch) Len() int {
	return len(b.events)
}

// Reset empties the batch without retaining the previous slice
func (b *Batch) Reset() {
	b.events = nil
}
