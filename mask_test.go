package blobsim

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// newTestRectMask builds a 200x200 mask whose filled region is the square
// [80,120)^2, positioned so world coordinates equal bitmap coordinates.
func newTestRectMask() *LetterMask {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(80, 80, 120, 120),
		image.NewUniform(color.Black), image.Point{}, draw.Src)

	m := newMaskFromImage(img, 40)
	m.SetCenter(100, 100)
	return m
}

func TestMaskIsInside(t *testing.T) {
	m := newTestRectMask()
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"center", 100, 100, true},
		{"just inside left", 80.5, 100, true},
		{"just outside left", 79.5, 100, false},
		{"just inside bottom", 100, 119.5, true},
		{"just outside bottom", 100, 120.5, false},
		{"far outside", 30, 30, false},
		{"off bitmap", -50, 100, false},
		{"off bitmap positive", 500, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsInside(tt.x, tt.y); got != tt.expect {
				t.Errorf("IsInside(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestMaskIsInsideTranslated(t *testing.T) {
	m := newTestRectMask()
	m.SetCenter(300, 400) // filled region now [280,320)x[380,420)

	if !m.IsInside(300, 400) {
		t.Error("translated center should be inside")
	}
	if m.IsInside(100, 100) {
		t.Error("old center should be outside after translation")
	}
}

func TestMaskAreaFraction(t *testing.T) {
	m := newTestRectMask()
	// 40x40 filled pixels out of 200x200.
	assertNear(t, "area fraction", m.AreaFraction(), 1600.0/40000.0)
}

func TestMaskNearestBoundary(t *testing.T) {
	m := newTestRectMask()

	// (90,100) is 10px from the left edge; the leftward ray wins.
	point, normal, ok := m.NearestBoundary(90, 100)
	if !ok {
		t.Fatal("NearestBoundary reported no boundary")
	}
	assertVecNear(t, "point", point, Vec2{79.5, 100})
	assertVecNear(t, "normal", normal, Vec2{-1, 0})
}

func TestMaskNearestBoundaryFromOutside(t *testing.T) {
	m := newTestRectMask()

	// An outside point near the edge still finds the transition.
	point, normal, ok := m.NearestBoundary(75, 100)
	if !ok {
		t.Fatal("NearestBoundary reported no boundary")
	}
	if point.X < 79 || point.X > 81 {
		t.Errorf("point = %v, want near the left edge x=80", point)
	}
	if normal.X >= 0 {
		t.Errorf("normal = %v, want pointing left", normal)
	}
}

func TestMaskNearestBoundaryExhausted(t *testing.T) {
	m := newTestRectMask()

	// (10,10) is ~99px from the nearest filled pixel, beyond the radius-40
	// probe range in every direction.
	if _, _, ok := m.NearestBoundary(10, 10); ok {
		t.Error("NearestBoundary should fail far from the glyph")
	}
}

func TestBuildMaskGlyphCoverage(t *testing.T) {
	cache := NewMaskCache()
	o := LetterObstacle(100, 100, 200, 'I', DefaultFont)

	m, err := cache.Lookup(o, ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	if m.Side() < 400 {
		t.Errorf("side = %d, want >= 2*size", m.Side())
	}
	if m.AreaFraction() <= 0 {
		t.Error("rasterized glyph covered no pixels")
	}

	// The obstacle center lands on the glyph stem.
	center := o.Center()
	if !m.IsInside(center.X, center.Y) {
		t.Error("visual center of 'I' should be a filled pixel")
	}
}

func TestMaskCacheHitMiss(t *testing.T) {
	cache := NewMaskCache()
	o := LetterObstacle(0, 0, 150, 'A', DefaultFont)

	m1, err := cache.Lookup(o, ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := cache.Lookup(o, ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	if m1 != m2 {
		t.Error("second lookup should return the cached mask")
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits %d misses, want 1 and 1", hits, misses)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}

	// A different letter is a separate entry.
	if _, err := cache.Lookup(LetterObstacle(0, 0, 150, 'B', DefaultFont), ColorBlack); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d after second letter, want 2", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", cache.Len())
	}
}

func TestMaskCacheRepositionsOnHit(t *testing.T) {
	cache := NewMaskCache()

	m1, err := cache.Lookup(LetterObstacle(0, 0, 150, 'A', DefaultFont), ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := cache.Lookup(LetterObstacle(200, 300, 150, 'A', DefaultFont), ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	if m1 != m2 {
		t.Fatal("moving the obstacle must not rebuild the bitmap")
	}
	assertVecNear(t, "center", m2.Center(), Vec2{275, 375})
}

func TestMaskCacheUnknownFontFallsBack(t *testing.T) {
	cache := NewMaskCache()
	o := LetterObstacle(0, 0, 150, 'A', "No Such Font")

	m, err := cache.Lookup(o, ColorBlack)
	if err != nil {
		t.Fatalf("unknown font should fall back to the default face: %v", err)
	}
	if m == nil || m.AreaFraction() <= 0 {
		t.Error("fallback mask has no coverage")
	}
}

func TestMaskCacheInactiveObstacle(t *testing.T) {
	cache := NewMaskCache()

	m, err := cache.Lookup(Obstacle{}, ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Error("inactive obstacle should resolve to no mask")
	}
}

func TestRegisterFontRejectsGarbage(t *testing.T) {
	cache := NewMaskCache()
	if err := cache.RegisterFont("bad", []byte("not a font")); err == nil {
		t.Error("RegisterFont should reject unparseable data")
	}
}
