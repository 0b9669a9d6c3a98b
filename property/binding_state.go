package property

import (
	"fmt"

	"github.com/delaneyj/propcell/animation"
)

// BindingKind tags the variant held by a property's binding state.
type BindingKind uint8

const (
	KindConstant BindingKind = iota
	KindBinding
	KindAnimated
	KindTwoWay
)

func (k BindingKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindBinding:
		return "binding"
	case KindAnimated:
		return "animated"
	case KindTwoWay:
		return "two-way"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// bindingState is a tagged variant; exactly the payload matching kind is set.
// Replacing a property's state always assigns a whole new bindingState.
type bindingState[T comparable] struct {
	kind     BindingKind
	binding  func() T
	animated *animatedBinding[T]
	twoWay   *twoWayLink[T]
}

func constantState[T comparable]() bindingState[T] {
	return bindingState[T]{kind: KindConstant}
}

func bindingStateOf[T comparable](fn func() T) bindingState[T] {
	return bindingState[T]{kind: KindBinding, binding: fn}
}

func animatedStateOf[T comparable](a *animatedBinding[T]) bindingState[T] {
	return bindingState[T]{kind: KindAnimated, animated: a}
}

func twoWayStateOf[T comparable](l *twoWayLink[T]) bindingState[T] {
	return bindingState[T]{kind: KindTwoWay, twoWay: l}
}

// Interpolator blends from toward to by factor t, usually in [0, 1]. Some
// easing curves over- or undershoot, so t may leave that range.
type Interpolator[T any] func(from, to T, t float64) T

// animatedBinding is the payload of KindAnimated.
type animatedBinding[T comparable] struct {
	binding func() T
	lerp    Interpolator[T]
	from    T

	// details, when set, produces the animation and its start instant once,
	// at the first evaluation after the binding is installed.
	details  func() (animation.PropertyAnimation, animation.Instant)
	playback *animation.Playback
}

// twoWayLink is the payload of KindTwoWay. The closures address the
// canonical shared cell through this member's mapping.
type twoWayLink[T comparable] struct {
	// shared identifies the canonical cell's group.
	shared sharedGroup
	mapped bool

	read       func() T
	write      func(T)
	setBinding func(func() T)
	setAnim    func(func() T, animation.PropertyAnimation, Interpolator[T])
	leave      func()
}
