package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FixedDT is the simulation step used by the game loop (ebiten's default TPS).
	FixedDT = 1.0 / 60.0

	// GravitationalConstant scales planet mass into pull. Tuned for a world
	// measured in pixels and seconds.
	GravitationalConstant = 2000.0

	// MinGravityDistance clamps the planet-to-point distance used for force
	// magnitude so points deep inside a planet never divide by ~zero.
	MinGravityDistance = 1.0
)
