package property

import (
	"github.com/delaneyj/propcell/animation"
)

// SetAnimatedBinding installs fn as the property's binding, interpolating
// from the current value toward fn's result according to anim. The start
// instant is the driver's current tick. Once the animation completes the
// property holds fn's exact result and degrades to a plain binding, or to a
// constant if fn read no property.
func (p *Property[T]) SetAnimatedBinding(fn func() T, anim animation.PropertyAnimation, lerp Interpolator[T]) {
	if p.state.kind == KindTwoWay {
		p.state.twoWay.setAnim(fn, anim, lerp)
		return
	}
	from := p.GetUntracked()
	start := p.rs.AnimationDriver().tick.GetUntracked()
	p.replaceState(animatedStateOf(&animatedBinding[T]{
		binding:  fn,
		lerp:     lerp,
		from:     from,
		playback: animation.NewPlayback(anim, start),
	}))
}

// SetAnimatedValue animates from the current value to value, after which the
// property holds value as a constant.
func (p *Property[T]) SetAnimatedValue(value T, anim animation.PropertyAnimation, lerp Interpolator[T]) {
	if p.state.kind == KindTwoWay {
		p.state.twoWay.setAnim(func() T { return value }, anim, lerp)
		return
	}
	from := p.GetUntracked()
	start := p.rs.AnimationDriver().tick.GetUntracked()
	p.replaceState(animatedStateOf(&animatedBinding[T]{
		binding:  func() T { return value },
		lerp:     lerp,
		from:     from,
		playback: animation.NewPlayback(anim, start),
	}))
}

// SetTransitionBinding is SetAnimatedBinding where the animation and its
// start instant are produced by details, called once when the transition
// begins (on the first evaluation after installation). details runs without
// dependency tracking.
func (p *Property[T]) SetTransitionBinding(
	fn func() T,
	details func() (animation.PropertyAnimation, animation.Instant),
	lerp Interpolator[T],
) {
	if p.state.kind == KindTwoWay {
		anim, _ := details()
		p.state.twoWay.setAnim(fn, anim, lerp)
		return
	}
	from := p.GetUntracked()
	p.replaceState(animatedStateOf(&animatedBinding[T]{
		binding: fn,
		lerp:    lerp,
		from:    from,
		details: details,
	}))
}

// IsAnimating reports whether the property holds an animation that has not
// settled yet.
func (p *Property[T]) IsAnimating() bool {
	return p.state.kind == KindAnimated
}

// evaluateAnimated always invokes the underlying binding so its dependencies
// are tracked, then blends toward its result. While in flight the property
// depends on the driver tick and keeps the driver active.
func (p *Property[T]) evaluateAnimated() (T, bool) {
	a := p.state.animated
	target := a.binding()

	driver := p.rs.AnimationDriver()
	if a.playback == nil {
		var (
			anim  animation.PropertyAnimation
			start animation.Instant
		)
		p.rs.Untracked(func() {
			anim, start = a.details()
		})
		a.playback = animation.NewPlayback(anim, start)
	}

	factor, done := a.playback.Sample(driver.tick.GetUntracked())
	if done {
		return target, true
	}
	p.rs.track(driver.tick.h)
	driver.SetHasActiveAnimations()
	if a.lerp == nil {
		return target, false
	}
	return a.lerp(a.from, target, factor), false
}

// settle swaps a finished animation for its resting state: a plain binding,
// or a constant when the binding read nothing. It runs inside the evaluation
// that finished the animation, so the binding's freshly recorded dependencies
// stay in place.
func (p *Property[T]) settle() {
	a := p.state.animated
	if nd := p.rs.lookup(p.h); nd != nil && nd.sources.Cardinality() > 0 {
		p.state = bindingStateOf(a.binding)
	} else {
		p.state = constantState[T]()
	}
	p.rs.logger.Debug("animation settled", "cell", p.rs.nameOf(p.h), "kind", p.state.kind)
}
