package blobsim

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whitePixel is a shared 1x1 white image used to render solid fills via
// DrawTriangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.RGBA8())
	}
	return whitePixel
}

// Draw renders the blob's closed ring onto dst: a fan-triangulated fill and
// a stroked outline. scale is applied uniformly to coordinates and line
// width (minimum line width 0.5). Drawing has no effect on physics state;
// missing particles truncate the outline with a warning instead of failing
// the frame.
func (b *Blob) Draw(dst *ebiten.Image, fill, stroke Color, scale float64) {
	if scale <= 0 {
		scale = 1
	}

	pts := make([]Vec2, 0, len(b.Particles))
	for i, p := range b.Particles {
		if p == nil {
			log.Printf("blobsim: blob %d missing particle %d, truncating draw", b.ID, i)
			break
		}
		pts = append(pts, p.Pos.Scale(scale))
	}
	if len(pts) < 3 {
		return
	}

	if fill.A > 0 {
		verts, inds := buildRingFan(pts, fill)
		dst.DrawTriangles(verts, inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{
			AntiAlias: true,
		})
	}

	if stroke.A > 0 {
		width := float32(math.Max(0.5, scale))
		clr := stroke.RGBA8()
		for i := range pts {
			q := pts[(i+1)%len(pts)]
			vector.StrokeLine(dst,
				float32(pts[i].X), float32(pts[i].Y),
				float32(q.X), float32(q.Y),
				width, clr, true)
		}
	}
}

// DrawAll renders every blob in the world with the same fill and stroke.
func (w *World) DrawAll(dst *ebiten.Image, fill, stroke Color, scale float64) {
	for _, b := range w.blobs {
		b.Draw(dst, fill, stroke, scale)
	}
}

// buildRingFan generates vertices and indices for a fan-triangulated ring
// fill. N vertices, 3*(N-2) indices; the fill color is baked into the
// vertex colors over the shared white pixel.
func buildRingFan(points []Vec2, col Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X)
		v.DstY = float32(p.Y)
		// Map to the center of the white pixel.
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = float32(col.R)
		v.ColorG = float32(col.G)
		v.ColorB = float32(col.B)
		v.ColorA = float32(col.A)
	}

	// Fan triangulation: vertex 0 is the hub. Blobs stay mostly convex
	// under pressure, which is all a fan needs.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}
