package blobsim

import "testing"

// setupBenchWorld seeds a world of n blobs around a letter obstacle, the
// shape of a typical interactive session.
func setupBenchWorld(n int) *World {
	params := DefaultParams()
	params.Gravity = 0.3
	w := NewWorld(params)
	w.SetObstacle(LetterObstacle(150, 150, 200, 'B', DefaultFont))
	w.Seed(n, 10, Range{Min: 6, Max: 12}, 12)
	return w
}

func BenchmarkWorldStep_50Blobs(b *testing.B) {
	w := setupBenchWorld(50)
	w.Step() // warm up the mask and grid

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

func BenchmarkWorldStep_200Blobs(b *testing.B) {
	w := setupBenchWorld(200)
	w.Step()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

func BenchmarkWorldStep_NoObstacle(b *testing.B) {
	params := DefaultParams()
	w := NewWorld(params)
	w.Seed(50, 10, Range{Min: 6, Max: 12}, 12)
	w.Step()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

func BenchmarkBlobUpdate(b *testing.B) {
	params := DefaultParams()
	blob := NewBlob(250, 250, 10, 12, 12)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		blob.Update(nil, &params, nil)
	}
}

func BenchmarkRepelBlobs_Touching(b *testing.B) {
	a := NewBlob(100, 100, 10, 12, 12)
	o := NewBlob(120, 100, 10, 12, 12)
	others := []*Blob{o}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.RepelBlobs(others, 0.05)
	}
}

func BenchmarkMaskIsInside(b *testing.B) {
	m := newTestRectMask()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.IsInside(100, 100)
		m.IsInside(30, 30)
	}
}

func BenchmarkMaskNearestBoundary(b *testing.B) {
	m := newTestRectMask()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.NearestBoundary(90, 100)
	}
}

func BenchmarkBuildMask(b *testing.B) {
	o := LetterObstacle(0, 0, 200, 'B', DefaultFont)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache := NewMaskCache()
		if _, err := cache.Lookup(o, ColorBlack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSVGPath(b *testing.B) {
	blob := NewBlob(250, 250, 24, 20, 12)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = blob.SVGPath()
	}
}
