package vscroll

import (
	"math"
	"time"
)

// Motion tuning. The spring constants are close to critical damping for a
// unit mass; the decay bands make fast flicks glide while slow drifts die
// quickly.
const (
	springStiffness = 220.0
	springDamping   = 30.0

	decayRate        = 4.0
	decayFastSpeed   = 2400.0
	decayMediumSpeed = 800.0
	decayFastFactor  = 0.6
	decayMediumBand  = 1.0
	decaySlowFactor  = 1.6

	// Below this speed, with no force acting, motion stops outright.
	stopSpeed = 4.0

	// Spring settle tolerances: once inside both, the position locks onto
	// the target and motion stops.
	settleDistance = 0.5
	settleSpeed    = 8.0

	maxFlingSpeed = 6000.0

	// Drag samples older than this never contribute to release velocity.
	sampleWindow = 150 * time.Millisecond
	maxSamples   = 5
)

// scrollState is the scalar motion state along the main axis. The position is
// kept in [min,max] while in bounds; values outside that range are overscroll
// and are pulled back by the boundary spring.
type scrollState struct {
	position  float64
	velocity  float64
	min, max  float64
	pixelSnap bool
}

func (s *scrollState) clampPosition(position float64) float64 {
	return math.Min(math.Max(position, s.min), s.max)
}

func (s *scrollState) inBounds() bool {
	return s.position >= s.min && s.position <= s.max
}

// decayFactor selects the damping multiplier band for the current speed.
func decayFactor(speed float64) float64 {
	switch {
	case speed >= decayFastSpeed:
		return decayFastFactor
	case speed >= decayMediumSpeed:
		return decayMediumBand
	default:
		return decaySlowFactor
	}
}

// step advances the motion by dt seconds. When hold is non-nil the position
// is pinned toward it through the spring regardless of bounds; otherwise an
// out-of-bounds position springs back to the nearest bound and an in-bounds
// position coasts with exponential decay. It reports whether the position
// changed.
func (s *scrollState) step(dt float64, hold *float64) bool {
	if dt <= 0 {
		return false
	}

	target := math.NaN()
	switch {
	case hold != nil:
		target = *hold
	case s.position < s.min:
		target = s.min
	case s.position > s.max:
		target = s.max
	}

	var accel float64
	if !math.IsNaN(target) {
		accel = -springStiffness*(s.position-target) - springDamping*s.velocity
	} else {
		s.velocity *= math.Exp(-decayRate * decayFactor(math.Abs(s.velocity)) * dt)
	}

	s.velocity += accel * dt
	if accel == 0 && math.Abs(s.velocity) < stopSpeed {
		s.velocity = 0
	}

	if !math.IsNaN(target) &&
		math.Abs(s.position-target) < settleDistance &&
		math.Abs(s.velocity) < settleSpeed {
		moved := s.position != target
		s.position = target
		s.velocity = 0
		return moved
	}

	if s.velocity == 0 {
		return false
	}
	s.position += s.velocity * dt
	if s.pixelSnap {
		s.position = math.Round(s.position)
	}
	return true
}

type dragSample struct {
	at    time.Time
	delta float64
}

// dragTracker records recent drag deltas so the release velocity can be
// estimated from the gesture's final motion rather than its whole history.
type dragTracker struct {
	samples []dragSample
}

func (d *dragTracker) add(at time.Time, delta float64) {
	d.samples = append(d.samples, dragSample{at: at, delta: delta})
	d.trim(at)
}

// trim drops samples that have fallen out of the trailing window.
func (d *dragTracker) trim(now time.Time) {
	cutoff := now.Add(-sampleWindow)
	keep := 0
	for keep < len(d.samples) && d.samples[keep].at.Before(cutoff) {
		keep++
	}
	if keep > 0 {
		d.samples = append(d.samples[:0], d.samples[keep:]...)
	}
}

func (d *dragTracker) clear() {
	d.samples = d.samples[:0]
}

// releaseVelocity estimates the fling velocity at the end of a drag: the sum
// of the most recent deltas divided by the time they took. With fewer than
// two usable samples, or a negligible time span, it falls back to the last
// delta scaled to a 60 Hz frame.
func (d *dragTracker) releaseVelocity(now time.Time) float64 {
	d.trim(now)
	n := len(d.samples)
	if n == 0 {
		return 0
	}
	start := n - maxSamples
	if start < 0 {
		start = 0
	}
	used := d.samples[start:]
	last := used[len(used)-1]

	elapsed := last.at.Sub(used[0].at).Seconds()
	if len(used) < 2 || elapsed < 0.001 {
		return clampVelocity(last.delta * 60)
	}
	var total float64
	for _, sample := range used[1:] {
		total += sample.delta
	}
	return clampVelocity(total / elapsed)
}

func clampVelocity(v float64) float64 {
	return math.Min(math.Max(v, -maxFlingSpeed), maxFlingSpeed)
}
