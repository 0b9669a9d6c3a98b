package property

import (
	"sync"
	"time"

	"github.com/delaneyj/propcell/animation"
)

// AnimationDriver advances the logical animation clock of a ReactiveSystem.
// The tick is itself a property, so animated bindings depend on it like on
// any other property. The event loop calls UpdateAnimations (or Advance) once
// per frame and keeps scheduling frames while HasActiveAnimations is true.
type AnimationDriver struct {
	rs     *ReactiveSystem
	tick   *Property[animation.Instant]
	active bool
	epoch  time.Time
}

// AnimationDriver returns the system's driver, creating it on first access.
func (rs *ReactiveSystem) AnimationDriver() *AnimationDriver {
	if rs.driver == nil {
		rs.driver = &AnimationDriver{
			rs:    rs,
			epoch: rs.clock.Now(),
		}
		rs.driver.tick = NewNamed(rs, "animation.tick", animation.Instant(0))
	}
	return rs.driver
}

// UpdateAnimations moves the clock to tick. If the tick changed, the active
// flag is cleared and every tick-dependent cell is invalidated; the flag is
// raised again by animations that are still in flight when re-evaluated.
func (d *AnimationDriver) UpdateAnimations(tick animation.Instant) {
	if d.tick.GetUntracked() == tick {
		return
	}
	d.active = false
	d.tick.Set(tick)
}

// Advance updates the clock from the system's wall clock.
func (d *AnimationDriver) Advance() {
	d.UpdateAnimations(animation.InstantSince(d.epoch, d.rs.clock.Now()))
}

// HasActiveAnimations reports whether the system's driver has in-flight
// animations. A system that never animated has no driver and reports false
// without creating one.
func (rs *ReactiveSystem) HasActiveAnimations() bool {
	return rs.driver != nil && rs.driver.active
}

// HasActiveAnimations reports whether some cell still needs per-frame
// recomputation.
func (d *AnimationDriver) HasActiveAnimations() bool {
	return d.active
}

func (d *AnimationDriver) SetHasActiveAnimations() {
	d.active = true
}

// CurrentTick returns the current instant and registers a dependency on it.
func (d *AnimationDriver) CurrentTick() animation.Instant {
	return d.tick.Get()
}

// AnimationTick is CurrentTick for bindings that animate on their own: it
// also keeps the driver active so the event loop keeps producing frames.
func (d *AnimationDriver) AnimationTick() animation.Instant {
	d.SetHasActiveAnimations()
	return d.tick.Get()
}

// TickHandle returns the handle of the tick property.
func (d *AnimationDriver) TickHandle() Handle {
	return d.tick.h
}

var (
	defaultOnce   sync.Once
	defaultSystem *ReactiveSystem
)

// Default returns the process-wide system, created on first access. Like any
// ReactiveSystem it must only be used from the UI goroutine.
func Default() *ReactiveSystem {
	defaultOnce.Do(func() {
		defaultSystem = NewReactiveSystem()
	})
	return defaultSystem
}
