package blobsim

import (
	"log"
	"math"
)

// World owns the blobs, the simulation parameters, and the obstacle mask
// cache, and drives one physics tick per frame. All mutation happens inside
// a single synchronous Step call, matching the cooperative frame model:
// there is no internal parallelism and no locking.
type World struct {
	params Params
	blobs  []*Blob
	masks  *MaskCache
	grid   *spatialGrid

	nextID      int
	neighborBuf []*Blob
	maskWarned  bool
}

// NewWorld creates an empty world with its own isolated mask cache.
func NewWorld(params Params) *World {
	return &World{
		params: params,
		masks:  NewMaskCache(),
		grid:   newSpatialGrid(defaultCellSize),
	}
}

// Params returns a pointer to the world's parameters for live tuning.
// Change the obstacle through SetObstacle instead, so the mask cache is
// invalidated.
func (w *World) Params() *Params { return &w.params }

// Blobs returns the live blob slice. Read-only for callers; Step mutates
// the blobs in place.
func (w *World) Blobs() []*Blob { return w.blobs }

// Masks returns the world's obstacle mask cache.
func (w *World) Masks() *MaskCache { return w.masks }

// SetObstacle swaps the obstacle descriptor and clears the mask cache.
// Stale bitmaps would silently produce wrong collisions, so any change to
// glyph, size, or font must come through here between ticks.
func (w *World) SetObstacle(o Obstacle) {
	w.params.Obstacle = o
	w.masks.Clear()
	w.maskWarned = false
}

// AddBlob places a new blob at (x, y) and returns it.
func (w *World) AddBlob(x, y float64, edgePoints int, startSize, repelDistance float64) *Blob {
	b := NewBlob(x, y, edgePoints, startSize, repelDistance)
	w.nextID++
	b.ID = w.nextID
	w.blobs = append(w.blobs, b)
	return b
}

// RemoveBlobNear removes the blob whose centre is nearest to (x, y),
// provided the point falls within the blob's radius plus a small pick
// slack. Reports whether a blob was removed.
func (w *World) RemoveBlobNear(x, y float64) bool {
	const pickSlack = 10.0

	p := Vec2{x, y}
	best := -1
	bestDistSq := math.Inf(1)
	for i, b := range w.blobs {
		if d := p.DistSq(b.Centre); d < bestDistSq {
			bestDistSq = d
			best = i
		}
	}
	if best < 0 {
		return false
	}
	reach := w.blobs[best].MaxRadius + pickSlack
	if bestDistSq > reach*reach {
		return false
	}

	// Swap-remove; blob order carries no meaning.
	last := len(w.blobs) - 1
	w.blobs[best] = w.blobs[last]
	w.blobs[last] = nil
	w.blobs = w.blobs[:last]
	return true
}

// Restart removes every blob. Parameters, obstacle, and cached masks are
// kept.
func (w *World) Restart() {
	for i := range w.blobs {
		w.blobs[i] = nil
	}
	w.blobs = w.blobs[:0]
}

// Step advances the simulation by one frame: 1-3 substeps depending on the
// speed multiplier, each updating every blob against its grid-filtered
// neighbors. Obstacle collision degrades gracefully: when no obstacle is
// active or its mask cannot be built, blobs simply skip that stage.
func (w *World) Step() {
	mask := w.currentMask()
	steps, tensionScale := w.substeps()

	// Tension scaling stands in for a true variable timestep; it is an
	// approximation, not an exact substep.
	p := w.params
	p.SpringTension *= tensionScale

	for s := 0; s < steps; s++ {
		w.grid.rebuild(w.blobs)
		for _, b := range w.blobs {
			w.neighborBuf = w.grid.neighbors(b, w.neighborBuf[:0])
			b.Update(w.neighborBuf, &p, mask)
		}
	}
}

// currentMask resolves the obstacle mask for this tick, or nil when
// obstacle collision is disabled. A failed build is reported once per
// obstacle change and then skipped silently.
func (w *World) currentMask() *LetterMask {
	if !w.params.Obstacle.Active() {
		return nil
	}
	m, err := w.masks.Lookup(w.params.Obstacle, w.params.ObstacleColor)
	if err != nil {
		if !w.maskWarned {
			log.Printf("blobsim: obstacle mask unavailable, collision disabled: %v", err)
			w.maskWarned = true
		}
		return nil
	}
	return m
}

// substeps maps the speed multiplier to a substep count in [1, 3] and the
// spring-tension scale applied to each substep.
func (w *World) substeps() (int, float64) {
	speed := w.params.Speed
	if speed <= 0 {
		speed = 1
	}
	steps := int(math.Ceil(speed))
	if steps < 1 {
		steps = 1
	}
	if steps > 3 {
		steps = 3
	}
	return steps, speed / float64(steps)
}
