package blobsim

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVecNear(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Vec2 ---

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	assertVecNear(t, "Add", a.Add(b), Vec2{4, 2})
	assertVecNear(t, "Sub", a.Sub(b), Vec2{2, 6})
	assertVecNear(t, "Scale", a.Scale(2), Vec2{6, 8})
	assertNear(t, "Dot", a.Dot(b), 3-8)
	assertNear(t, "Length", a.Length(), 5)
	assertNear(t, "LengthSq", a.LengthSq(), 25)
	assertNear(t, "Dist", a.Dist(b), math.Hypot(2, 6))
}

func TestVec2Normalized(t *testing.T) {
	assertVecNear(t, "unit x", Vec2{10, 0}.Normalized(1e-12), Vec2{1, 0})

	got := Vec2{3, 4}.Normalized(1e-12)
	assertNear(t, "unit length", got.Length(), 1)

	if z := (Vec2{0, 0}).Normalized(1e-12); z != (Vec2{}) {
		t.Errorf("Normalized(zero) = %v, want zero vector", z)
	}
	if z := (Vec2{1e-8, 0}).Normalized(1e-12); z != (Vec2{}) {
		t.Errorf("Normalized(sub-epsilon) = %v, want zero vector", z)
	}
}

func TestVec2Perp(t *testing.T) {
	v := Vec2{2, 3}
	p := v.Perp()
	assertNear(t, "perp dot", v.Dot(p), 0)
	assertVecNear(t, "perp", p, Vec2{3, -2})
}

func TestVec2IsFinite(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec2
		expect bool
	}{
		{"finite", Vec2{1, 2}, true},
		{"zero", Vec2{}, true},
		{"nan x", Vec2{math.NaN(), 0}, false},
		{"nan y", Vec2{0, math.NaN()}, false},
		{"inf x", Vec2{math.Inf(1), 0}, false},
		{"neg inf y", Vec2{0, math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.expect {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.expect)
			}
		})
	}
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Range ---

func TestRangeRandom(t *testing.T) {
	r := Range{10, 20}
	for i := 0; i < 100; i++ {
		v := r.Random()
		if v < 10 || v > 20 {
			t.Fatalf("Random() = %f, outside [10, 20]", v)
		}
	}

	r2 := Range{5, 5}
	for i := 0; i < 10; i++ {
		if r2.Random() != 5 {
			t.Fatal("Random() with Min==Max should return Min")
		}
	}
}

// --- helpers ---

func TestClamp(t *testing.T) {
	assertNear(t, "below", clamp(-1, 0, 10), 0)
	assertNear(t, "inside", clamp(5, 0, 10), 5)
	assertNear(t, "above", clamp(11, 0, 10), 10)
}

func TestLerp(t *testing.T) {
	assertNear(t, "lerp(0,10,0)", lerp(0, 10, 0), 0)
	assertNear(t, "lerp(0,10,0.5)", lerp(0, 10, 0.5), 5)
	assertNear(t, "lerp(0,10,1)", lerp(0, 10, 1), 10)
}

func TestColorRGBA8(t *testing.T) {
	c := Color{1, 0, 0.5, 1}.RGBA8()
	if c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("RGBA8 = %v, want R=255 G=0 A=255", c)
	}
	if c.B != 127 {
		t.Errorf("B = %d, want 127", c.B)
	}

	over := Color{2, -1, 0, 1.5}.RGBA8()
	if over.R != 255 || over.G != 0 || over.A != 255 {
		t.Errorf("out-of-range components not clamped: %v", over)
	}
}
