package blobsim

import (
	"fmt"
	"log"
	"math"
	"strings"
)

const (
	// maxPressureForce caps the per-particle pressure force magnitude.
	maxPressureForce = 0.2

	// pressureRatioMin and pressureRatioMax clamp the target/current area
	// ratio before it is turned into a pressure force.
	pressureRatioMin = 0.5
	pressureRatioMax = 2.5

	// growthRate is the multiplicative per-tick ramp of the target area
	// toward its ceiling.
	growthRate = 1.005

	// insideTargetBoost raises the target-area ceiling for blobs whose
	// centroid sits inside the obstacle glyph, so crowded interior regions
	// build extra expansion pressure.
	insideTargetBoost = 1.2

	// softCollisionDamping and hardCollisionDamping scale reflected
	// velocities in the pre- and post-integration obstacle passes. The
	// post-integration pass is a correction, not a dynamic response, so it
	// damps harder.
	softCollisionDamping = 0.5
	hardCollisionDamping = 0.3

	// closeRangeBoost is the distance below which repulsion gains an extra
	// anti-interpenetration boost.
	closeRangeBoost = 4.0

	// defaultPressureConstant converts area-ratio error into force.
	defaultPressureConstant = 0.1

	// defaultMaxRepulsionForce caps per-particle-pair repulsion.
	defaultMaxRepulsionForce = 0.5
)

// Blob is a closed ring of particles connected by springs, simulating a soft
// deformable body with internal pressure.
//
// The ring winding is fixed at construction (counterclockwise in canvas
// coordinates) and the pressure normals assume the polygon stays simple and
// consistently wound. Extreme forces can violate that without detection;
// the simulation tolerates the resulting visual artifacts.
type Blob struct {
	// ID is a driver-assigned identifier, used only for export naming.
	ID int

	// Centre and MaxRadius are derived from particle positions each tick.
	Centre    Vec2
	MaxRadius float64

	EdgePointCount int
	Particles      []*Particle
	Springs        []*Spring

	InitialArea float64
	TargetArea  float64

	RepelDistance     float64
	PressureConstant  float64
	MaxRepulsionForce float64
}

// NewBlob creates a blob as a regular polygon ring of edgePointCount
// particles around (x, y) with circumradius startSize (floored to 1).
// Consecutive particles are connected by springs at their initial
// separation, with the closing edge added last.
func NewBlob(x, y float64, edgePointCount int, startSize, repelDistance float64) *Blob {
	if edgePointCount < 3 {
		edgePointCount = 3
	}
	if startSize < 1 {
		startSize = 1
	}

	b := &Blob{
		EdgePointCount:    edgePointCount,
		Particles:         make([]*Particle, 0, edgePointCount),
		Springs:           make([]*Spring, 0, edgePointCount),
		RepelDistance:     repelDistance,
		PressureConstant:  defaultPressureConstant,
		MaxRepulsionForce: defaultMaxRepulsionForce,
	}

	for i := 0; i < edgePointCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(edgePointCount)
		b.Particles = append(b.Particles, NewParticle(
			x+startSize*math.Cos(angle),
			y+startSize*math.Sin(angle),
		))
	}
	for i := 0; i < edgePointCount-1; i++ {
		a, c := b.Particles[i], b.Particles[i+1]
		b.Springs = append(b.Springs, NewSpring(a, c, a.Pos.Dist(c.Pos)))
	}
	last, first := b.Particles[edgePointCount-1], b.Particles[0]
	b.Springs = append(b.Springs, NewSpring(last, first, last.Pos.Dist(first.Pos)))

	b.InitialArea = b.Area()
	b.TargetArea = b.InitialArea
	b.recomputeBounds()
	return b
}

// Area returns the blob's current polygon area via the shoelace formula.
// Returns 0 for fewer than three particles.
func (b *Blob) Area() float64 {
	n := len(b.Particles)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := b.Particles[i].Pos
		q := b.Particles[(i+1)%n].Pos
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum / 2)
}

// Update runs one physics tick. The pipeline order is load-bearing for
// stability: pressure, springs, target-area adaptation, gravity, repulsion,
// soft obstacle collision, integration, hard obstacle enforcement, bounds,
// growth. others is the (possibly spatially filtered) set of blobs to repel
// against; mask may be nil to disable obstacle collision for this tick.
func (b *Blob) Update(others []*Blob, params *Params, mask *LetterMask) {
	b.maintainPressure()
	for _, s := range b.Springs {
		s.Apply(params.SpringTension)
	}
	if mask != nil {
		b.adaptTargetArea(mask, params.MaxExpansionFactor)
	}
	gravity := Vec2{0, params.Gravity * 0.1}
	for _, p := range b.Particles {
		p.ApplyForce(gravity)
	}
	b.RepelBlobs(others, params.InteractionStrength)
	if mask != nil {
		b.collideObstacle(mask, softCollisionDamping)
	}
	for _, p := range b.Particles {
		p.Integrate(params, defaultBounceFactor)
	}
	if mask != nil {
		// Post-integration correction: no particle may end the tick inside
		// the mask.
		b.collideObstacle(mask, hardCollisionDamping)
	}
	b.recomputeBounds()
	b.Grow(params.MaxExpansionFactor)
}

// maintainPressure pushes the ring outward or inward so the polygon area
// approaches TargetArea. Each particle receives the force along the
// perpendicular of the chord between its neighbors; degenerate chords are
// skipped for the tick.
func (b *Blob) maintainPressure() {
	area := b.Area()
	if area < 1e-9 {
		return
	}

	ratio := clamp(b.TargetArea/area, pressureRatioMin, pressureRatioMax)
	forceSize := clamp((ratio-1)*b.PressureConstant, -maxPressureForce, maxPressureForce)
	if forceSize == 0 {
		return
	}

	n := len(b.Particles)
	for i, p := range b.Particles {
		prev := b.Particles[(i-1+n)%n]
		next := b.Particles[(i+1)%n]

		chord := next.Pos.Sub(p.Pos).Sub(prev.Pos.Sub(p.Pos))
		normal := chord.Perp().Normalized(1e-12)
		if normal == (Vec2{}) {
			continue
		}
		p.ApplyForce(normal.Scale(forceSize))
	}
}

// adaptTargetArea sets the target area for this tick: the full expansion
// ceiling, boosted when the centroid is inside the obstacle glyph.
func (b *Blob) adaptTargetArea(mask *LetterMask, maxFactor float64) {
	if mask.IsInside(b.Centre.X, b.Centre.Y) {
		b.TargetArea = b.InitialArea * maxFactor * insideTargetBoost
	} else {
		b.TargetArea = b.InitialArea * maxFactor
	}
}

// RepelBlobs applies pairwise repulsion between this blob's particles and
// every sufficiently close blob in others. Blob pairs whose centres are
// farther apart than the sum of their radii plus the effective repel
// distance are culled before the O(N^2) particle loop. Forces are equal and
// opposite on each particle pair.
func (b *Blob) RepelBlobs(others []*Blob, strength float64) {
	for _, o := range others {
		if o == b {
			continue
		}

		repel := math.Min(b.RepelDistance, o.RepelDistance)
		reach := b.MaxRadius + o.MaxRadius + repel
		if b.Centre.DistSq(o.Centre) > reach*reach {
			continue
		}

		repelSq := repel * repel
		for _, p := range b.Particles {
			for _, q := range o.Particles {
				d := p.Pos.Sub(q.Pos)
				distSq := d.LengthSq()
				if distSq <= 0 || distSq >= repelSq {
					continue
				}

				dist := math.Sqrt(distSq)
				overlap := repel - dist
				mag := overlap * strength * (1 + math.Max(0, (closeRangeBoost-dist)/closeRangeBoost))
				if mag > b.MaxRepulsionForce {
					mag = b.MaxRepulsionForce
				}

				axis := d.Scale(1 / dist)
				p.ApplyForce(axis.Scale(mag))
				q.ApplyForce(axis.Scale(-mag))
			}
		}
	}
}

// collideObstacle snaps every particle found inside the mask to the nearest
// boundary point and reflects any inward velocity component, damped by
// damping. Particles whose boundary search exhausts are left in place.
func (b *Blob) collideObstacle(mask *LetterMask, damping float64) {
	for _, p := range b.Particles {
		if !mask.IsInside(p.Pos.X, p.Pos.Y) {
			continue
		}
		point, normal, ok := mask.NearestBoundary(p.Pos.X, p.Pos.Y)
		if !ok {
			continue
		}
		p.Pos = point
		if vn := p.Vel.Dot(normal); vn < 0 {
			p.Vel = p.Vel.Sub(normal.Scale(2 * vn)).Scale(damping)
		}
	}
}

// recomputeBounds refreshes Centre (mean particle position) and MaxRadius
// (max particle distance from Centre).
func (b *Blob) recomputeBounds() {
	n := len(b.Particles)
	if n == 0 {
		return
	}
	var sum Vec2
	for _, p := range b.Particles {
		sum = sum.Add(p.Pos)
	}
	b.Centre = sum.Scale(1 / float64(n))

	var maxSq float64
	for _, p := range b.Particles {
		if d := b.Centre.DistSq(p.Pos); d > maxSq {
			maxSq = d
		}
	}
	b.MaxRadius = math.Sqrt(maxSq)
}

// Grow ramps TargetArea multiplicatively toward InitialArea*max(1, factor).
// When the ceiling drops below the current target (the factor was reduced),
// the target snaps down immediately.
func (b *Blob) Grow(maxFactor float64) {
	ceiling := b.InitialArea * math.Max(1, maxFactor)
	if b.TargetArea > ceiling {
		b.TargetArea = ceiling
		return
	}
	if b.TargetArea < ceiling {
		b.TargetArea = math.Min(b.TargetArea*growthRate, ceiling)
	}
}

// SVGPath builds a closed SVG path string for the blob's current outline:
// "M x y L x y ... Z" with coordinates rounded to two decimals, including a
// closing line back to the first particle. Missing particles truncate the
// path early with a warning instead of failing the frame.
func (b *Blob) SVGPath() string {
	if len(b.Particles) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range b.Particles {
		if p == nil {
			log.Printf("blobsim: blob %d missing particle %d, truncating SVG path", b.ID, i)
			break
		}
		if i == 0 {
			fmt.Fprintf(&sb, "M %.2f %.2f", p.Pos.X, p.Pos.Y)
		} else {
			fmt.Fprintf(&sb, " L %.2f %.2f", p.Pos.X, p.Pos.Y)
		}
	}
	if first := b.Particles[0]; first != nil {
		fmt.Fprintf(&sb, " L %.2f %.2f", first.Pos.X, first.Pos.Y)
	}
	sb.WriteString(" Z")
	return sb.String()
}
