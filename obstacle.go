package blobsim

// ObstacleKind selects the obstacle shape.
type ObstacleKind uint8

const (
	// ObstacleNone disables obstacle collision entirely.
	ObstacleNone ObstacleKind = iota
	// ObstacleLetter is a rendered letter glyph, hit-tested via a
	// rasterized LetterMask.
	ObstacleLetter
)

// Obstacle describes the static obstacle in canvas pixel coordinates.
// (X, Y) is the top-left of the glyph's bounding box and Size is the font
// pixel size.
type Obstacle struct {
	Kind   ObstacleKind
	X, Y   float64
	Size   float64
	Letter rune
	// Font names a font registered with the MaskCache. Empty selects the
	// default face.
	Font string
}

// LetterObstacle builds a letter obstacle descriptor.
func LetterObstacle(x, y, size float64, letter rune, font string) Obstacle {
	return Obstacle{
		Kind:   ObstacleLetter,
		X:      x,
		Y:      y,
		Size:   size,
		Letter: letter,
		Font:   font,
	}
}

// Active reports whether the obstacle participates in collision this tick.
func (o Obstacle) Active() bool {
	return o.Kind == ObstacleLetter && o.Size > 0
}

// Center returns the world-space center of the glyph's bounding box.
func (o Obstacle) Center() Vec2 {
	return Vec2{o.X + o.Size/2, o.Y + o.Size/2}
}
