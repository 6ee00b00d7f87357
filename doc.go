// Package blobsim is an interactive soft-body "blob" simulation for
// [Ebitengine].
//
// A [Blob] is a closed ring of point masses connected by springs. Internal
// pressure pushes the ring toward a target area, springs keep the boundary
// coherent, and neighboring blobs repel each other so the swarm packs
// without interpenetrating. Blobs bounce off a rectangular or circular
// container and are excluded from an obstacle glyph, an arbitrary letter
// rasterized once into a [LetterMask] and hit-tested per pixel.
//
// # Quick start
//
//	world := blobsim.NewWorld(blobsim.DefaultParams())
//	world.SetObstacle(blobsim.LetterObstacle(150, 150, 200, 'B', ""))
//	world.Seed(40, 8, blobsim.Range{Min: 6, Max: 12}, 12)
//
//	// each frame:
//	world.Step()
//	world.DrawAll(screen, fill, stroke, 1)
//
// The physics is deliberately simple: semi-implicit Euler integration, a
// rasterized obstacle instead of analytic geometry, and visual tolerance
// for penetration and jitter. Everything mutates in place within one
// synchronous [World.Step] call per frame, so no locking is needed.
//
// [Ebitengine]: https://ebitengine.org
package blobsim
