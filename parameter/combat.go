package parameter

// Blade
const (
	// BladeLength is the full length of the blade collision segment (world units)
	BladeLength = 1.0

	// BladeRadius is the effective collision radius around the blade segment
	BladeRadius = 0.08
)

// Player
const (
	// PlayerHitRadius is the collision tolerance around the camera position
	PlayerHitRadius = 0.15
)

// Bolts
const (
	// BoltSpeedMin is the lower bound of the spawn speed band (units/sec)
	BoltSpeedMin = 3.5

	// BoltSpeedMax is the upper bound of the spawn speed band (units/sec)
	BoltSpeedMax = 4.5

	// BoltHalfLength offsets the spawn point from the drone along the aim direction
	BoltHalfLength = 0.1

	// BoltFarClip is the distance from world origin past which a bolt has escaped
	BoltFarClip = 50.0

	// BoltReflectMultiplier scales speed on deflection
	BoltReflectMultiplier = 1.1

	// BoltAimJitter is the per-axis half range of the aim point offset around the player
	BoltAimJitter = 0.15
)

// Fire rate curve
const (
	// FireIntervalMin is the shot interval at or inside FireNearDistance (seconds)
	FireIntervalMin = 0.8

	// FireIntervalMax is the shot interval at or beyond FireFarDistance (seconds)
	FireIntervalMax = 2.2

	// FireIntervalInitial is the interval before the first shot
	FireIntervalInitial = 1.6

	FireNearDistance = 1.0
	FireFarDistance  = 3.0

	// FireJitterMin and FireJitterMax bound the multiplicative interval jitter
	FireJitterMin = 0.7
	FireJitterMax = 1.3
)
