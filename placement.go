package blobsim

import (
	"math"
	"math/rand/v2"
)

// placementAttempts bounds the rejection-sampling loop per blob. A blob
// that cannot be placed after this many tries is skipped.
const placementAttempts = 50

// Overlapping reports whether a new blob of size minSize at (x, y) would
// crowd any existing blob, using squared centre distances against each
// blob's radius plus the requested spacing.
func Overlapping(x, y float64, blobs []*Blob, minSize, repelDistance float64) bool {
	p := Vec2{x, y}
	for _, b := range blobs {
		reach := b.MaxRadius + minSize + repelDistance
		if p.DistSq(b.Centre) < reach*reach {
			return true
		}
	}
	return false
}

// Seed places up to count blobs by rejection sampling, keeping them out of
// the obstacle glyph's way: the total is split between glyph interior and
// exterior in proportion to the glyph's rasterized share of the canvas.
// Returns the number actually placed; crowded worlds may place fewer.
func (w *World) Seed(count, edgePoints int, size Range, repelDistance float64) int {
	if count <= 0 {
		return 0
	}

	mask := w.currentMask()
	insideCount := 0
	if mask != nil {
		side := float64(mask.Side())
		glyphArea := mask.AreaFraction() * side * side
		canvasArea := w.params.CanvasWidth * w.params.CanvasHeight
		if canvasArea > 0 {
			insideCount = int(math.Round(float64(count) * clamp(glyphArea/canvasArea, 0, 1)))
		}
	}

	placed := w.seedRegion(insideCount, edgePoints, size, repelDistance, mask, true)
	placed += w.seedRegion(count-insideCount, edgePoints, size, repelDistance, mask, false)
	return placed
}

// seedRegion rejection-samples n blobs either inside or outside the glyph.
func (w *World) seedRegion(n, edgePoints int, size Range, repelDistance float64, mask *LetterMask, inside bool) int {
	if inside && mask == nil {
		return 0
	}

	placed := 0
	for i := 0; i < n; i++ {
		s := size.Random()
		for attempt := 0; attempt < placementAttempts; attempt++ {
			x, y := w.samplePoint(inside)
			if mask != nil && mask.IsInside(x, y) != inside {
				continue
			}
			if Overlapping(x, y, w.blobs, s, repelDistance) {
				continue
			}
			w.AddBlob(x, y, edgePoints, s, repelDistance)
			placed++
			break
		}
	}
	return placed
}

// samplePoint draws a uniform candidate position: within the glyph's
// bounding box for interior placement, within the container margins
// otherwise.
func (w *World) samplePoint(inside bool) (float64, float64) {
	if inside {
		o := w.params.Obstacle
		return o.X + rand.Float64()*o.Size, o.Y + rand.Float64()*o.Size
	}
	m := w.params.ContainerMargin
	width := math.Max(1, w.params.CanvasWidth-2*m)
	height := math.Max(1, w.params.CanvasHeight-2*m)
	return m + rand.Float64()*width, m + rand.Float64()*height
}
