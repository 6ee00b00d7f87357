package blobsim

import "time"

// pacerStreak is the number of consecutive out-of-band host frames required
// before the step interval adapts. The hysteresis keeps one hitchy frame
// from thrashing the frame rate.
const pacerStreak = 10

// Pacer adaptively spaces physics steps around a target frame rate. Call
// Tick once per host frame; it reports whether to run a simulation step.
//
// The host's frame-to-frame delta is the load signal: when frames
// consistently arrive late the step interval widens (shedding load, down to
// half the target rate), and once the host keeps up again it narrows back
// toward the target.
type Pacer struct {
	target      time.Duration
	maxInterval time.Duration
	interval    time.Duration

	lastCall time.Time
	lastRun  time.Time

	slowStreak int
	fastStreak int
}

// NewPacer creates a pacer for the given target frame rate. Non-positive
// rates default to 60.
func NewPacer(targetFPS float64) *Pacer {
	if targetFPS <= 0 {
		targetFPS = 60
	}
	target := time.Duration(float64(time.Second) / targetFPS)
	return &Pacer{
		target:      target,
		maxInterval: 2 * target,
		interval:    target,
	}
}

// Interval returns the current adaptive step interval.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Tick records one host frame at the given time and reports whether a
// simulation step should run now. The first call always runs.
func (p *Pacer) Tick(now time.Time) bool {
	if p.lastCall.IsZero() {
		p.lastCall = now
		p.lastRun = now
		return true
	}

	hostDelta := now.Sub(p.lastCall)
	p.lastCall = now
	p.adapt(hostDelta)

	if now.Sub(p.lastRun) < p.interval {
		return false
	}
	p.lastRun = now
	return true
}

// adapt updates the step interval from one host frame delta. Deltas more
// than 25% over the target count as slow, deltas within 10% of the target
// or better count as fast, and anything between leaves the streaks reset.
func (p *Pacer) adapt(hostDelta time.Duration) {
	switch {
	case hostDelta > p.target+p.target/4:
		p.slowStreak++
		p.fastStreak = 0
		if p.slowStreak >= pacerStreak {
			p.slowStreak = 0
			p.interval += p.interval / 4
			if p.interval > p.maxInterval {
				p.interval = p.maxInterval
			}
		}
	case hostDelta <= p.target+p.target/10:
		p.fastStreak++
		p.slowStreak = 0
		if p.fastStreak >= pacerStreak && p.interval > p.target {
			p.fastStreak = 0
			p.interval -= p.interval / 4
			if p.interval < p.target {
				p.interval = p.target
			}
		}
	default:
		p.slowStreak = 0
		p.fastStreak = 0
	}
}
