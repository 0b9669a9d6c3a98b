// Package animation holds the timing side of animated properties: the
// logical [Instant] timeline, [EasingCurve] timing functions, the
// [PropertyAnimation] descriptor and the [Playback] state machine that turns
// an instant into an eased interpolation factor.
//
// The package knows nothing about property values. The property engine
// samples a Playback on every evaluation of an animated binding and
// interpolates between the captured start value and the binding's target.
package animation

import (
	"fmt"
	"time"
)

// Direction controls which way each iteration of an animation runs.
type Direction uint8

const (
	Normal Direction = iota
	Reverse
	Alternate
	AlternateReverse
)

func (d Direction) String() string {
	switch d {
	case Normal:
		return "normal"
	case Reverse:
		return "reverse"
	case Alternate:
		return "alternate"
	case AlternateReverse:
		return "alternate-reverse"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// reversed reports whether the given zero-based iteration runs backwards.
func (d Direction) reversed(iteration uint64) bool {
	switch d {
	case Reverse:
		return true
	case Alternate:
		return iteration%2 == 1
	case AlternateReverse:
		return iteration%2 == 0
	default:
		return false
	}
}

// PropertyAnimation describes how an animated binding interpolates.
type PropertyAnimation struct {
	Delay    time.Duration
	Duration time.Duration
	// IterationCount is the number of times the animation runs. Zero jumps to
	// the end once the delay has passed; a negative count repeats forever.
	// Animate sets it to one.
	IterationCount float64
	Direction      Direction
	Easing         EasingCurve
}

// Animate is shorthand for a single-iteration animation.
func Animate(duration time.Duration, easing EasingCurve) PropertyAnimation {
	return PropertyAnimation{Duration: duration, IterationCount: 1, Easing: easing}
}

type phase uint8

const (
	phaseDelaying phase = iota
	phaseAnimating
	phaseDone
)

// Playback tracks one run of a PropertyAnimation started at a given instant.
// The zero value is not usable; create one with NewPlayback.
type Playback struct {
	anim      PropertyAnimation
	start     Instant
	phase     phase
	iteration uint64
}

// NewPlayback starts anim at the given instant.
func NewPlayback(anim PropertyAnimation, start Instant) *Playback {
	return &Playback{anim: anim, start: start}
}

// Animation returns the descriptor being played.
func (p *Playback) Animation() PropertyAnimation {
	return p.anim
}

// Start returns the instant the current phase is measured from.
func (p *Playback) Start() Instant {
	return p.start
}

// Done reports whether the last Sample finished the animation.
func (p *Playback) Done() bool {
	return p.phase == phaseDone
}

// Restart rewinds the playback to the delay phase starting at now.
func (p *Playback) Restart(now Instant) {
	p.phase = phaseDelaying
	p.iteration = 0
	p.start = now
}

// Sample returns the eased interpolation factor at now and whether the
// animation has completed. While delaying the factor holds the first
// iteration's starting end. Once done the factor is 1, or 0 when the final
// iteration ran in reverse.
func (p *Playback) Sample(now Instant) (factor float64, done bool) {
	for {
		elapsed := now.Sub(p.start)

		switch p.phase {
		case phaseDelaying:
			if p.anim.Delay <= 0 {
				p.phase = phaseAnimating
				continue
			}
			if elapsed < p.anim.Delay {
				if p.anim.Direction.reversed(0) {
					return 1, false
				}
				return 0, false
			}
			p.start = now.Add(-(elapsed - p.anim.Delay))
			p.phase = phaseAnimating

		case phaseAnimating:
			iterations := p.anim.IterationCount
			if p.anim.Duration <= 0 || iterations == 0 {
				p.phase = phaseDone
				p.iteration = 0
				continue
			}

			duration := p.anim.Duration
			if elapsed >= duration {
				p.iteration += uint64(elapsed / duration)
				elapsed %= duration
				p.start = now.Add(-elapsed)
			}

			played := float64(p.iteration)*float64(duration) + float64(elapsed)
			if iterations < 0 || played < iterations*float64(duration) {
				progress := clampUnit(float64(elapsed) / float64(duration))
				if p.anim.Direction.reversed(p.iteration) {
					progress = 1 - progress
				}
				return p.anim.Easing.Apply(progress), false
			}

			if p.iteration > 0 {
				p.iteration--
			}
			p.phase = phaseDone

		case phaseDone:
			if p.anim.Direction.reversed(p.iteration) {
				return 0, true
			}
			return 1, true
		}
	}
}
