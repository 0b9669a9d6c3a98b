package property

// Tracker records the properties read by an arbitrary function and reports
// when any of them changes. Renderers use it to know when an item needs to be
// redrawn without holding a value of their own.
type Tracker struct {
	rs      *ReactiveSystem
	h       Handle
	onDirty func()
}

// NewTracker allocates a tracker that starts dirty. onDirty, if not nil, is
// called each time the tracker goes from clean to possibly dirty; it must not
// read or write properties.
func NewTracker(rs *ReactiveSystem, onDirty func()) *Tracker {
	t := &Tracker{rs: rs, onDirty: onDirty}
	t.h = rs.alloc("", t)
	rs.lookup(t.h).state = CacheDirty
	return t
}

func (t *Tracker) Handle() Handle {
	return t.h
}

// Evaluate runs fn, recording what it reads as the tracker's dependencies.
// The tracker itself becomes a dependency of the binding being evaluated, if
// any, so that binding is invalidated with it.
func (t *Tracker) Evaluate(fn func()) {
	t.rs.track(t.h)
	t.EvaluateAsRoot(fn)
}

// EvaluateAsRoot is Evaluate without registering the tracker in the
// enclosing frame.
func (t *Tracker) EvaluateAsRoot(fn func()) {
	nd := t.rs.lookup(t.h)
	if nd == nil {
		fn()
		return
	}
	t.rs.clearSources(t.h)
	nd.state = CacheClean
	nd.flags |= fEvaluating
	t.rs.push(t.h)
	t.rs.stats.Evaluations++

	completed := false
	defer func() {
		t.rs.pop()
		nd.flags &^= fEvaluating
		if !completed {
			nd.state = CacheDirty
		}
	}()
	fn()
	completed = true
}

// EvaluateIfDirty runs fn like Evaluate, but only if a dependency changed
// since the last run. It reports whether fn ran.
func (t *Tracker) EvaluateIfDirty(fn func()) bool {
	t.rs.track(t.h)
	if !t.IsDirty() {
		return false
	}
	t.EvaluateAsRoot(fn)
	return true
}

// IsDirty reports whether a dependency changed since the last evaluation.
func (t *Tracker) IsDirty() bool {
	nd := t.rs.lookup(t.h)
	if nd == nil {
		return false
	}
	if nd.state == CacheCheck {
		t.rs.validateSources(t.h)
		if nd.state == CacheCheck {
			nd.state = CacheClean
		}
	}
	return nd.state == CacheDirty
}

// SetDirty forces the next EvaluateIfDirty to run.
func (t *Tracker) SetDirty() {
	t.rs.stale(t.h, CacheDirty)
}

// Destroy frees the tracker's slot.
func (t *Tracker) Destroy() {
	t.rs.release(t.h)
}

func (t *Tracker) updateIfNecessary() {
	nd := t.rs.lookup(t.h)
	if nd == nil || nd.flags&fEvaluating != 0 {
		return
	}
	if t.IsDirty() {
		t.rs.markSubs(t.h, CacheDirty)
	}
}

func (t *Tracker) staled() {
	if t.onDirty != nil {
		t.onDirty()
	}
}
