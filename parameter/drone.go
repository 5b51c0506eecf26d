package parameter

// Drone placement
const (
	// DroneBaseDistance is how far in front of the pursuit anchor the drone hovers
	DroneBaseDistance = 1.6

	// DroneIdleRadius bounds offsets sampled while idling
	DroneIdleRadius = 0.25

	// DroneDashRadius bounds offsets sampled while dashing
	DroneDashRadius = 0.45

	// DroneCenterDriftRate is the soft-lerp speed of the anchor toward the player
	DroneCenterDriftRate = 0.5

	// DroneRecenterAngleDeg forces a recenter dash when the drone leaves this view cone
	DroneRecenterAngleDeg = 50.0
)

// Drone convergence speeds (1/sec, used as 1 - e^(-speed*dt))
const (
	DroneIdleLerpSpeed = 1.5
	DroneDashLerpSpeed = 8.0
)

// Drone state timing (seconds)
const (
	// DroneDashChance is the probability that an expiring idle turns into a dash
	DroneDashChance = 0.7

	DroneIdleDurationMin = 1.0
	DroneIdleDurationMax = 2.0

	DroneDashDurationMin = 0.25
	DroneDashDurationMax = 0.40

	DroneRecenterDurationMin = 0.25
	DroneRecenterDurationMax = 0.45

	// DroneInitialStateDuration is the first idle period before any dash
	DroneInitialStateDuration = 2.0
)
