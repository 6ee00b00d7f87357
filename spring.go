package blobsim

import "math"

const (
	// defaultSpringTension is the Hooke constant used when a tick does not
	// supply a tension override.
	defaultSpringTension = 0.05

	// minRestLength floors spring rest lengths so the restoring force is
	// always well defined.
	minRestLength = 1e-4

	// minSpringLength is the current-length threshold below which a spring
	// update is skipped as degenerate. The particles self-heal once other
	// forces separate them.
	minSpringLength = 1e-6
)

// Spring is a Hookean connection between two boundary particles. It
// references the particles but does not own them; the topology is fixed once
// the blob ring is built.
type Spring struct {
	A, B       *Particle
	RestLength float64
	Tension    float64
}

// NewSpring connects a and b with the given rest length, floored to a small
// positive epsilon.
func NewSpring(a, b *Particle, restLength float64) *Spring {
	return &Spring{
		A:          a,
		B:          b,
		RestLength: math.Max(restLength, minRestLength),
		Tension:    defaultSpringTension,
	}
}

// Apply applies the spring's restoring force to both endpoints. A negative
// tension selects the spring's own Tension constant; otherwise the effective
// Hooke constant is tension/10 (tension is in UI units, 0-10). The forces on
// A and B are equal and opposite, so the pair's momentum is conserved.
func (s *Spring) Apply(tension float64) {
	k := s.Tension
	if tension >= 0 {
		k = tension / 10
	}

	d := s.B.Pos.Sub(s.A.Pos)
	dist := d.Length()
	if dist < minSpringLength {
		return
	}

	f := d.Scale(k * (dist - s.RestLength) / dist)
	s.A.ApplyForce(f)
	s.B.ApplyForce(f.Scale(-1))
}
