package property

import (
	"fmt"
)

// Property is a reactive value cell. Its value is a constant, a binding
// computed on demand from other properties, an animation interpolating toward
// a binding, or a two-way mirror of a canonical shared cell.
//
// Properties live in a ReactiveSystem arena and stay there until Destroy.
type Property[T comparable] struct {
	rs    *ReactiveSystem
	h     Handle
	value T
	state bindingState[T]
}

// New allocates a constant property holding value.
func New[T comparable](rs *ReactiveSystem, value T) *Property[T] {
	return NewNamed(rs, "", value)
}

// NewNamed is New with a debug name used in log output.
func NewNamed[T comparable](rs *ReactiveSystem, name string, value T) *Property[T] {
	p := &Property[T]{rs: rs, value: value, state: constantState[T]()}
	p.h = rs.alloc(name, p)
	return p
}

// NewBinding allocates a property bound to fn. Nothing is evaluated until the
// first read.
func NewBinding[T comparable](rs *ReactiveSystem, fn func() T) *Property[T] {
	p := New(rs, *new(T))
	p.SetBinding(fn)
	return p
}

// Handle returns the property's weak arena handle.
func (p *Property[T]) Handle() Handle {
	return p.h
}

// System returns the arena the property lives in.
func (p *Property[T]) System() *ReactiveSystem {
	return p.rs
}

// Kind returns the variant of the current binding state.
func (p *Property[T]) Kind() BindingKind {
	return p.state.kind
}

func (p *Property[T]) String() string {
	return fmt.Sprintf("%s(%s)=%v", p.rs.nameOf(p.h), p.state.kind, p.value)
}

// Get returns the current value, recomputing it first if it may be stale,
// and registers the property as a dependency of the binding being evaluated.
func (p *Property[T]) Get() T {
	p.updateIfNecessary()
	p.rs.track(p.h)
	return p.value
}

// GetUntracked is Get without registering a dependency.
func (p *Property[T]) GetUntracked() T {
	p.updateIfNecessary()
	return p.value
}

// Cached returns the cached value without evaluating or tracking anything.
func (p *Property[T]) Cached() T {
	return p.value
}

// IsDirty reports whether the next read will recompute the value.
func (p *Property[T]) IsDirty() bool {
	nd := p.rs.lookup(p.h)
	if nd == nil || nd.state == CacheClean {
		return false
	}
	if nd.state == CacheCheck {
		p.rs.validateSources(p.h)
	}
	return nd.state == CacheDirty
}

// MarkDirty invalidates every dependent regardless of whether the value
// changed.
func (p *Property[T]) MarkDirty() {
	p.rs.markSubs(p.h, CacheDirty)
}

// Set replaces the binding state with the constant value. Dependents are
// invalidated only if the value differs from the cached one. On a two-way
// linked property the write goes through to the shared cell.
func (p *Property[T]) Set(value T) {
	if p.state.kind == KindTwoWay {
		p.state.twoWay.write(value)
		return
	}
	p.replaceState(constantState[T]())
	if p.value != value {
		p.value = value
		p.rs.markSubs(p.h, CacheDirty)
	}
}

// SetBinding installs fn as the property's binding. It is evaluated lazily on
// the next read. On a two-way linked property the binding is installed on
// the shared cell.
func (p *Property[T]) SetBinding(fn func() T) {
	if p.state.kind == KindTwoWay {
		p.state.twoWay.setBinding(fn)
		return
	}
	p.replaceState(bindingStateOf(fn))
}

// Destroy frees the property's slot. Dependents holding a reference to it
// observe only that it no longer takes part in their evaluation.
func (p *Property[T]) Destroy() {
	if !p.rs.IsAlive(p.h) {
		return
	}
	if p.state.kind == KindTwoWay {
		p.state.twoWay.leave()
	}
	p.state = constantState[T]()
	p.rs.release(p.h)
}

// replaceState installs next in one assignment. Any edge recorded by the old
// binding is dropped; a state that evaluates is flagged dirty and its
// dependents are flagged for validation.
func (p *Property[T]) replaceState(next bindingState[T]) {
	if p.state.kind == KindTwoWay && (next.kind != KindTwoWay || next.twoWay != p.state.twoWay) {
		p.state.twoWay.leave()
	}
	p.rs.clearSources(p.h)
	p.state = next

	nd := p.rs.lookup(p.h)
	if nd == nil {
		return
	}
	if next.kind == KindConstant {
		nd.state = CacheClean
		return
	}
	p.rs.stale(p.h, CacheDirty)
}

func (p *Property[T]) staled() {}

func (p *Property[T]) updateIfNecessary() {
	nd := p.rs.lookup(p.h)
	if nd == nil || nd.flags&fEvaluating != 0 || nd.state == CacheClean {
		return
	}
	if nd.state == CacheCheck {
		p.rs.validateSources(p.h)
	}
	if nd.state == CacheDirty {
		p.update(nd)
		return
	}
	nd.state = CacheClean
}

// update re-evaluates the binding state. The node is flagged clean before the
// closure runs so a write to one of its sources during evaluation re-dirties
// it. If the closure panics the frame is still popped, the cached value is
// left untouched and the node stays dirty.
func (p *Property[T]) update(nd *node) {
	rs := p.rs
	if p.state.kind == KindConstant {
		nd.state = CacheClean
		return
	}

	rs.clearSources(p.h)
	nd.state = CacheClean
	nd.flags |= fEvaluating
	rs.push(p.h)
	rs.stats.Evaluations++

	completed := false
	defer func() {
		rs.pop()
		nd.flags &^= fEvaluating
		if !completed {
			nd.state = CacheDirty
			if r := recover(); r != nil {
				rs.logger.Debug("binding panicked", "cell", rs.nameOf(p.h), "panic", r)
				panic(r)
			}
		}
	}()

	next, settled := p.evaluate()
	completed = true

	if settled {
		p.settle()
	}
	if next != p.value {
		p.value = next
		rs.markSubs(p.h, CacheDirty)
	}
}

// evaluate runs the current binding variant inside the active frame.
func (p *Property[T]) evaluate() (value T, settled bool) {
	switch p.state.kind {
	case KindConstant:
		return p.value, false
	case KindBinding:
		return p.state.binding(), false
	case KindAnimated:
		return p.evaluateAnimated()
	case KindTwoWay:
		return p.state.twoWay.read(), false
	default:
		panic(fmt.Sprintf("property: unknown binding kind %d", p.state.kind))
	}
}
