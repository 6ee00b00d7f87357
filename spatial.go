package blobsim

import "math"

// spatialGrid buckets blobs by centre into uniform cells, giving the world
// a cheap prefilter before each blob's own broad-phase repulsion cull. Each
// blob lives in exactly one cell, so queries never return duplicates.
type spatialGrid struct {
	cellSize float64
	cells    map[[2]int][]*Blob

	// maxReach is the largest MaxRadius+RepelDistance seen at the last
	// rebuild. Queries expand by it so a large far-away blob is never
	// missed.
	maxReach float64
}

const defaultCellSize = 64.0

func newSpatialGrid(cellSize float64) *spatialGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &spatialGrid{
		cellSize: cellSize,
		cells:    make(map[[2]int][]*Blob),
	}
}

func (g *spatialGrid) cellOf(p Vec2) [2]int {
	return [2]int{
		int(math.Floor(p.X / g.cellSize)),
		int(math.Floor(p.Y / g.cellSize)),
	}
}

// rebuild reindexes all blobs. Cell slices are truncated and reused so the
// steady state allocates nothing.
func (g *spatialGrid) rebuild(blobs []*Blob) {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.maxReach = 0
	for _, b := range blobs {
		if r := b.MaxRadius + b.RepelDistance; r > g.maxReach {
			g.maxReach = r
		}
		k := g.cellOf(b.Centre)
		g.cells[k] = append(g.cells[k], b)
	}
}

// neighbors appends every blob other than b that could fall within b's
// repulsion reach to out and returns it. The result is conservative; the
// exact centre-distance cull in RepelBlobs makes the final call.
func (g *spatialGrid) neighbors(b *Blob, out []*Blob) []*Blob {
	reach := b.MaxRadius + b.RepelDistance + g.maxReach
	lo := g.cellOf(b.Centre.Sub(Vec2{reach, reach}))
	hi := g.cellOf(b.Centre.Add(Vec2{reach, reach}))

	for cy := lo[1]; cy <= hi[1]; cy++ {
		for cx := lo[0]; cx <= hi[0]; cx++ {
			for _, o := range g.cells[[2]int{cx, cy}] {
				if o != b {
					out = append(out, o)
				}
			}
		}
	}
	return out
}
