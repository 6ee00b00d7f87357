package blobsim

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// insideThreshold classifies a mask pixel as "inside" when all three
	// RGB channels fall below it (dark = filled = obstacle).
	insideThreshold = 200

	// minMaskSide is the minimum bitmap side length. Small glyphs still get
	// room for the radial boundary search around them.
	minMaskSide = 200

	// boundaryDirections is the number of evenly spaced rays probed by
	// NearestBoundary.
	boundaryDirections = 24

	// boundaryStep is the outward step per probe sample, in pixels.
	boundaryStep = 0.5

	// normalEps is the central-difference offset used to estimate the
	// boundary normal from the inside/outside indicator.
	normalEps = 1.0
)

// DefaultFont is the name the MaskCache registers for the bundled Go
// Regular face.
const DefaultFont = "Go Regular"

// LetterMask is a rasterized hit-test oracle for one obstacle glyph. The
// glyph is drawn once, centered in a square bitmap, and collision queries
// sample pixels. Build it through a MaskCache, which also positions the
// mask at the obstacle's world-space center.
type LetterMask struct {
	side   int     // bitmap is side x side pixels
	pix    []uint8 // RGBA, 4 bytes per pixel
	inside int     // count of inside pixels
	radius float64 // boundary search radius (the font size)

	// World-space center of the obstacle, set by MaskCache.Lookup.
	cx, cy float64
}

// buildMask rasterizes letter at the given font size onto a white square
// bitmap, with the glyph's visual bounding box centered. Centering on the
// visual box rather than the baseline keeps glyphs with uneven ascenders
// and descenders aligned with the requested obstacle center.
func buildMask(letter rune, size int, col Color, fnt *opentype.Font) (*LetterMask, error) {
	side := 2 * size
	if side < minMaskSide {
		side = minMaskSide
	}

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col.RGBA8()),
		Face: face,
	}
	bounds, _ := font.BoundString(face, string(letter))
	center := fixed.I(side / 2)
	d.Dot = fixed.Point26_6{
		X: center - (bounds.Min.X+bounds.Max.X)/2,
		Y: center - (bounds.Min.Y+bounds.Max.Y)/2,
	}
	d.DrawString(string(letter))

	m := &LetterMask{
		side:   side,
		pix:    img.Pix,
		radius: float64(size),
	}
	for i := 0; i < len(m.pix); i += 4 {
		if m.pix[i] < insideThreshold && m.pix[i+1] < insideThreshold && m.pix[i+2] < insideThreshold {
			m.inside++
		}
	}
	return m, nil
}

// newMaskFromImage wraps an already rendered bitmap. Used by tests to build
// masks with exactly known geometry.
func newMaskFromImage(img *image.RGBA, radius float64) *LetterMask {
	b := img.Bounds()
	side := b.Dx()
	m := &LetterMask{side: side, pix: img.Pix, radius: radius}
	for i := 0; i < len(m.pix); i += 4 {
		if m.pix[i] < insideThreshold && m.pix[i+1] < insideThreshold && m.pix[i+2] < insideThreshold {
			m.inside++
		}
	}
	return m
}

// Side returns the bitmap side length in pixels.
func (m *LetterMask) Side() int { return m.side }

// Center returns the world-space obstacle center the mask is positioned at.
func (m *LetterMask) Center() Vec2 { return Vec2{m.cx, m.cy} }

// SetCenter positions the mask at a world-space obstacle center.
func (m *LetterMask) SetCenter(cx, cy float64) {
	m.cx = cx
	m.cy = cy
}

// AreaFraction returns the fraction of bitmap pixels classified as inside.
// Placement uses it to split blob counts between glyph interior and
// exterior.
func (m *LetterMask) AreaFraction() float64 {
	total := m.side * m.side
	if total == 0 {
		return 0
	}
	return float64(m.inside) / float64(total)
}

// IsInside reports whether the world-space point (x, y) falls on a filled
// glyph pixel. Points outside the bitmap are outside.
func (m *LetterMask) IsInside(x, y float64) bool {
	half := float64(m.side) / 2
	bx := int(math.Floor(x - m.cx + half))
	by := int(math.Floor(y - m.cy + half))
	if bx < 0 || by < 0 || bx >= m.side || by >= m.side {
		return false
	}
	i := (by*m.side + bx) * 4
	return m.pix[i] < insideThreshold && m.pix[i+1] < insideThreshold && m.pix[i+2] < insideThreshold
}

// NearestBoundary finds the glyph boundary point nearest to the world-space
// point (x, y) by probing evenly spaced rays outward, and estimates the
// outward boundary normal there. ok is false when no inside/outside
// transition exists within the search radius; callers must then leave the
// particle where it is.
//
// Cost is O(directions * radius/step) per call, so invoke it once per
// colliding particle per tick, not per candidate.
func (m *LetterMask) NearestBoundary(x, y float64) (point, normal Vec2, ok bool) {
	origin := Vec2{x, y}
	bestDistSq := math.Inf(1)

	for i := 0; i < boundaryDirections; i++ {
		angle := 2 * math.Pi * float64(i) / boundaryDirections
		dir := Vec2{math.Cos(angle), math.Sin(angle)}

		prev := m.IsInside(x, y)
		for t := boundaryStep; t <= m.radius; t += boundaryStep {
			sample := origin.Add(dir.Scale(t))
			cur := m.IsInside(sample.X, sample.Y)
			if cur != prev {
				if dsq := origin.DistSq(sample); dsq < bestDistSq {
					bestDistSq = dsq
					point = sample
				}
				break
			}
			prev = cur
		}
	}

	if math.IsInf(bestDistSq, 1) {
		return Vec2{}, Vec2{}, false
	}

	normal = m.boundaryNormal(point)
	return point, normal, true
}

// boundaryNormal estimates the outward normal at a boundary point via a
// central difference of the inside indicator. Falls back to the direction
// from the obstacle center when the difference vanishes (flat or noisy
// neighborhoods).
func (m *LetterMask) boundaryNormal(p Vec2) Vec2 {
	gx := indicator(m.IsInside(p.X+normalEps, p.Y)) - indicator(m.IsInside(p.X-normalEps, p.Y))
	gy := indicator(m.IsInside(p.X, p.Y+normalEps)) - indicator(m.IsInside(p.X, p.Y-normalEps))

	// The indicator gradient points toward the inside; outward is its
	// negation.
	n := Vec2{-gx, -gy}.Normalized(1e-12)
	if n != (Vec2{}) {
		return n
	}

	n = p.Sub(Vec2{m.cx, m.cy}).Normalized(1e-12)
	if n != (Vec2{}) {
		return n
	}
	return Vec2{0, -1}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MaskKey identifies one cached mask bitmap.
type MaskKey struct {
	Letter rune
	Size   int
	Color  Color
	Font   string
}

// MaskCache builds LetterMasks lazily and keeps them until Clear. It is an
// explicit object owned by the simulation driver, never package state, so
// tests construct isolated instances. Entries have no expiry: a mask stays
// valid until the driver clears the cache on a parameter change.
//
// The cache follows the simulation's single-threaded model and must only be
// cleared between ticks.
type MaskCache struct {
	entries map[MaskKey]*LetterMask
	fonts   map[string]*opentype.Font

	hits, misses int
}

// NewMaskCache creates an empty cache with the bundled Go Regular face
// registered under DefaultFont.
func NewMaskCache() *MaskCache {
	c := &MaskCache{
		entries: make(map[MaskKey]*LetterMask),
		fonts:   make(map[string]*opentype.Font),
	}
	// The bundled font always parses.
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		c.fonts[DefaultFont] = f
	}
	return c
}

// RegisterFont parses ttf and makes it available to obstacles under the
// given name.
func (c *MaskCache) RegisterFont(name string, ttf []byte) error {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("register font %q: %w", name, err)
	}
	c.fonts[name] = f
	return nil
}

// Lookup returns the mask for the obstacle, building it on first use and
// positioning it at the obstacle's current center. Unknown font names fall
// back to the default face. Returns nil for inactive obstacles.
func (c *MaskCache) Lookup(o Obstacle, col Color) (*LetterMask, error) {
	if !o.Active() {
		return nil, nil
	}

	name := o.Font
	if _, known := c.fonts[name]; !known {
		name = DefaultFont
	}
	fnt, ok := c.fonts[name]
	if !ok {
		return nil, fmt.Errorf("mask lookup: no font registered for %q", o.Font)
	}

	key := MaskKey{Letter: o.Letter, Size: int(o.Size), Color: col, Font: name}
	center := o.Center()

	if m, ok := c.entries[key]; ok {
		c.hits++
		m.SetCenter(center.X, center.Y)
		return m, nil
	}

	c.misses++
	m, err := buildMask(o.Letter, key.Size, col, fnt)
	if err != nil {
		return nil, fmt.Errorf("mask lookup %q: %w", string(o.Letter), err)
	}
	m.SetCenter(center.X, center.Y)
	c.entries[key] = m
	return m, nil
}

// Clear drops every cached mask. Call when the glyph, size, color, or font
// changes; stale bitmaps silently produce wrong collisions.
func (c *MaskCache) Clear() {
	c.entries = make(map[MaskKey]*LetterMask)
}

// Len returns the number of cached masks.
func (c *MaskCache) Len() int { return len(c.entries) }

// Stats returns cache hit and miss counts since construction.
func (c *MaskCache) Stats() (hits, misses int) { return c.hits, c.misses }
