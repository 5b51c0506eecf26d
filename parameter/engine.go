package parameter

import "time"

// Simulation
const (
	// MaxDeltaTime caps a single step so host stalls cannot tunnel the drone or burst the scheduler
	MaxDeltaTime = 0.1

	// SimulationSeed of 0 selects a time-derived seed
	SimulationSeed = 0
)

// Network host
const (
	ServerAddress = ":8088"

	WSReadBufferSize  = 4 * 1024
	WSWriteBufferSize = 16 * 1024

	// WSReadLimit bounds a single inbound frame
	WSReadLimit = 64 * 1024

	// WSMaxSessions bounds concurrent simulations per server
	WSMaxSessions = 64

	// WSSendQueueSize is the per-session outbound backlog before a client is dropped
	WSSendQueueSize = 32

	WSWriteTimeout = 5 * time.Second
	WSIdleTimeout  = 60 * time.Second

	ShutdownTimeout = 5 * time.Second
)

// Sandbox
const (
	SandboxTickRate = 60

	// SandboxCellsPerUnit is the horizontal zoom of the top-down view
	SandboxCellsPerUnit = 12.0
)
