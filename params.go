package blobsim

// Params holds the global simulation parameters for one tick. The driver owns
// a single Params value and passes it by pointer into World.Step and
// Blob.Update; nothing in the physics core keeps hidden per-frame state.
type Params struct {
	// SpringTension is the boundary spring tension in UI units (0-10).
	// Springs divide this by 10 to get the effective Hooke constant.
	SpringTension float64
	// InteractionStrength scales inter-blob repulsion forces.
	InteractionStrength float64
	// MaxExpansionFactor is the ceiling for blob growth, as a multiple of
	// each blob's initial area. Values below 1 are treated as 1.
	MaxExpansionFactor float64
	// Gravity is the downward acceleration in UI units. Particles apply
	// Gravity*0.1 per tick.
	Gravity float64
	// Damping is the per-tick velocity retention factor, typically just
	// below 1.
	Damping float64
	// ContainerMargin is the inset of the container walls from the canvas
	// edges, in pixels.
	ContainerMargin float64
	// RoundedContainer selects a circular container inscribed in the canvas
	// instead of the rectangular one.
	RoundedContainer bool
	// CanvasWidth and CanvasHeight are the canvas dimensions in pixels.
	CanvasWidth  float64
	CanvasHeight float64
	// Speed is the simulation speed multiplier. Values above 1 run up to
	// three tension-scaled substeps per visual frame.
	Speed float64
	// Obstacle describes the static obstacle shape, if any.
	Obstacle Obstacle
	// ObstacleColor is the glyph fill used when rasterizing the obstacle
	// mask. Must be dark for hit-testing to register.
	ObstacleColor Color
}

// DefaultParams returns the parameter set used by the demos: a 500x500
// canvas with a 20px margin, gentle springs, mild repulsion, and no
// obstacle.
func DefaultParams() Params {
	return Params{
		SpringTension:       3,
		InteractionStrength: 0.05,
		MaxExpansionFactor:  1.2,
		Gravity:             0,
		Damping:             0.98,
		ContainerMargin:     20,
		CanvasWidth:         500,
		CanvasHeight:        500,
		Speed:               1,
		ObstacleColor:       ColorBlack,
	}
}
