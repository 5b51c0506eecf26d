package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventBoltSpawned announces a new bolt
	// Trigger: FireScheduler shot | Payload: Bolt, Position, Velocity
	EventBoltSpawned EventType = iota

	// EventPlayerHit reports an unreflected bolt reaching the player sphere
	// Trigger: BoltSystem swept player test | Payload: Bolt, Position (contact)
	EventPlayerHit

	// EventBoltDeflected reports the single reflected=false->true transition of a bolt
	// Trigger: BoltSystem swept blade test | Payload: Bolt, Position (blade contact), Velocity (post-reflection)
	EventBoltDeflected

	// EventBoltEscaped reports a bolt leaving the play volume
	// Not a scoring event | Payload: Bolt, Position
	EventBoltEscaped

	// EventDroneStateChange reports a drone motion state entry
	// Trigger: DroneSystem FSM | Payload: State
	EventDroneStateChange
)

var typeNames = map[EventType]string{
	EventBoltSpawned:      "bolt_spawned",
	EventPlayerHit:        "player_hit",
	EventBoltDeflected:    "bolt_deflected",
	EventBoltEscaped:      "bolt_escaped",
	EventDroneStateChange: "drone_state",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
