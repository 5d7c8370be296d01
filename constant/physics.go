package constant

// Unit Scaling
const (
	// ScaleFactor converts visual units to world units: 100 visual units ^= 1 world unit
	ScaleFactor = 100.0

	// WallThickness is the boundary wall half-thickness in visual units
	WallThickness = 10.0
)

// Simulation Step
const (
	// TimeStep is the fixed physics advance per tick in seconds
	TimeStep = 1.0 / 60.0

	// SolverIterations is the constraint solver iteration count per tick
	SolverIterations = 1

	// SleepTime is how long a body must rest before the engine puts it to sleep (seconds)
	SleepTime = 0.5
)

// World Setup
const (
	// WorldBound is the half-size of the world's simulated region in world units
	WorldBound = 10.0

	// GravityX is the default horizontal gravity in world units/s²
	GravityX = 0.0

	// GravityY is the default vertical gravity in world units/s² (positive is down)
	GravityY = 1.0

	// WallRestitution is the bounciness of the floor and side walls
	WallRestitution = 0.1
)

// Materials
const (
	// DefaultFriction matches the engine's fixture default
	DefaultFriction = 0.2

	// BoxDensity is used for dynamic boxes
	BoxDensity = 1.0

	// BallDensity is used for balls
	BallDensity = 1.0

	// BallRestitution is the bounciness of balls
	BallRestitution = 0.2

	// BallFriction is the surface friction of balls
	BallFriction = 0.1
)
