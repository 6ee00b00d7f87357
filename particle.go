package blobsim

import (
	"log"
	"math"
)

// defaultBounceFactor is the velocity multiplier applied when a particle hits
// a container wall. Negative: the reflected component is reversed and damped.
const defaultBounceFactor = -0.5

// Particle is a point mass on a blob's boundary. Forces accumulate between
// ticks and are consumed by Integrate.
type Particle struct {
	Pos Vec2
	Vel Vec2

	force Vec2
}

// NewParticle creates a particle at rest at (x, y).
func NewParticle(x, y float64) *Particle {
	return &Particle{Pos: Vec2{x, y}}
}

// ApplyForce adds f to the particle's accumulated force. Non-finite forces
// are dropped with a warning; letting a NaN through would poison position
// and velocity permanently, since NaN never trips a boundary check.
func (p *Particle) ApplyForce(f Vec2) {
	if !f.IsFinite() {
		log.Printf("blobsim: dropping non-finite force (%v, %v)", f.X, f.Y)
		return
	}
	p.force = p.force.Add(f)
}

// Force returns the force accumulated since the last Integrate.
func (p *Particle) Force() Vec2 { return p.force }

// Integrate advances the particle by one tick: damping, then semi-implicit
// Euler (this tick's force moves this tick's position), then container
// handling, then force reset.
//
// In a rounded container the particle is clamped to the circle edge and the
// outward velocity component is reflected with a 1+|bounce| gain, keeping
// blobs lively against the curved wall. In the rectangular container each
// axis is clamped independently and the velocity component is multiplied by
// bounce, but only while still moving into the wall, so a particle resting
// on the boundary does not oscillate.
func (p *Particle) Integrate(params *Params, bounce float64) {
	p.Vel = p.Vel.Scale(params.Damping)
	p.Vel = p.Vel.Add(p.force)
	p.Pos = p.Pos.Add(p.Vel)

	if params.RoundedContainer {
		p.bounceCircle(params, bounce)
	} else {
		p.bounceRect(params, bounce)
	}

	p.force = Vec2{}
}

// bounceCircle clamps the particle to the circular container inscribed in
// the canvas, inset by the margin.
func (p *Particle) bounceCircle(params *Params, bounce float64) {
	radius := (math.Min(params.CanvasWidth, params.CanvasHeight) - 2*params.ContainerMargin) / 2
	if radius <= 0 {
		return
	}
	center := Vec2{params.CanvasWidth / 2, params.CanvasHeight / 2}

	offset := p.Pos.Sub(center)
	distSq := offset.LengthSq()
	if distSq <= radius*radius {
		return
	}

	dist := math.Sqrt(distSq)
	normal := offset.Scale(1 / dist)
	p.Pos = center.Add(normal.Scale(radius))

	vn := p.Vel.Dot(normal)
	if vn > 0 {
		p.Vel = p.Vel.Sub(normal.Scale((1 + math.Abs(bounce)) * vn))
	}
}

// bounceRect clamps the particle to the rectangular container. The max/min
// clamps keep the walls ordered even when the margin exceeds half the
// canvas.
func (p *Particle) bounceRect(params *Params, bounce float64) {
	left := params.ContainerMargin
	right := math.Max(left, params.CanvasWidth-params.ContainerMargin)
	top := params.ContainerMargin
	bottom := math.Max(top, params.CanvasHeight-params.ContainerMargin)

	if p.Pos.X < left {
		p.Pos.X = left
		if p.Vel.X < 0 {
			p.Vel.X *= bounce
		}
	} else if p.Pos.X > right {
		p.Pos.X = right
		if p.Vel.X > 0 {
			p.Vel.X *= bounce
		}
	}

	if p.Pos.Y < top {
		p.Pos.Y = top
		if p.Vel.Y < 0 {
			p.Vel.Y *= bounce
		}
	} else if p.Pos.Y > bottom {
		p.Pos.Y = bottom
		if p.Vel.Y > 0 {
			p.Vel.Y *= bounce
		}
	}
}
