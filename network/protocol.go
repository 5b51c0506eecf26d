package network

import (
	"errors"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/core"
	"github.com/lixenwraith/saber-drill/engine"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Client -> server
	MsgFrame MessageType = "frame" // Advance the simulation with the host poses
	MsgReset MessageType = "reset" // Restart drone, scheduler, bolts and score

	// Server -> client
	MsgWelcome MessageType = "welcome" // Session id and active config, sent once after upgrade
	MsgState   MessageType = "state"   // Step result and snapshot
	MsgError   MessageType = "error"   // Rejected client message, session stays open
)

// ErrUnknownMessage is returned for a client message with an unrecognized type
var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is any message a client sends
// Player and Blade are only meaningful for MsgFrame
type ClientMessage struct {
	Type   MessageType     `json:"type" msgpack:"type"`
	Dt     float64         `json:"dt" msgpack:"dt"`
	Player core.PlayerPose `json:"player" msgpack:"player"`
	Blade  core.BladePose  `json:"blade" msgpack:"blade"`
}

// ServerMessage is any message the server sends
type ServerMessage struct {
	Type     MessageType        `json:"type" msgpack:"type"`
	Session  string             `json:"session,omitempty" msgpack:"session,omitempty"`
	Config   *config.Config     `json:"config,omitempty" msgpack:"config,omitempty"`
	Result   *engine.StepResult `json:"result,omitempty" msgpack:"result,omitempty"`
	Snapshot *engine.Snapshot   `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty" msgpack:"error,omitempty"`
}

func welcomeMessage(session string, cfg *config.Config) *ServerMessage {
	return &ServerMessage{Type: MsgWelcome, Session: session, Config: cfg}
}

func stateMessage(res *engine.StepResult, snap engine.Snapshot) *ServerMessage {
	return &ServerMessage{Type: MsgState, Result: res, Snapshot: &snap}
}

func errorMessage(err error) *ServerMessage {
	return &ServerMessage{Type: MsgError, Error: err.Error()}
}
