package property

import (
	"github.com/delaneyj/propcell/animation"
)

// sharedGroup identifies the canonical cell behind a set of two-way linked
// properties. Two members are linked iff their groups compare equal.
type sharedGroup interface {
	canonical() Handle
}

type groupMember[T comparable] struct {
	h      Handle
	rebind func(*sharedCell[T])
}

// sharedCell is the canonical storage of a two-way group. Every member reads
// and writes through it, so a group never forms a chain of redirections.
type sharedCell[T comparable] struct {
	prop    *Property[T]
	members []groupMember[T]
}

func newSharedCell[T comparable](rs *ReactiveSystem, name string, value T) *sharedCell[T] {
	return &sharedCell[T]{prop: NewNamed(rs, name, value)}
}

func (s *sharedCell[T]) canonical() Handle {
	return s.prop.h
}

// adopt moves src's binding state onto the canonical cell, or copies its
// value if it has none.
func (s *sharedCell[T]) adopt(src *Property[T]) {
	switch src.state.kind {
	case KindBinding, KindAnimated:
		s.prop.value = src.value
		s.prop.replaceState(src.state)
	default:
		s.prop.Set(src.GetUntracked())
	}
}

func (s *sharedCell[T]) attach(h Handle, rebind func(*sharedCell[T])) {
	s.members = append(s.members, groupMember[T]{h: h, rebind: rebind})
}

// detach drops h from the group without tearing the group down.
func (s *sharedCell[T]) detach(h Handle) {
	kept := s.members[:0]
	for _, m := range s.members {
		if m.h != h {
			kept = append(kept, m)
		}
	}
	s.members = kept
}

// remove drops h and frees the canonical cell once nobody links to it.
func (s *sharedCell[T]) remove(h Handle) {
	s.detach(h)
	if len(s.members) == 0 {
		s.prop.Destroy()
	}
}

// merge moves every member of other into s. other's canonical cell is freed
// when its last member leaves.
func (s *sharedCell[T]) merge(other *sharedCell[T]) {
	members := append([]groupMember[T](nil), other.members...)
	for _, m := range members {
		m.rebind(s)
	}
}

// rejoin detaches p from s when p is already one of its members, so that
// relinking it does not empty and free the group.
func rejoin[T, U comparable](s *sharedCell[T], p *Property[U]) {
	if p.state.kind != KindTwoWay {
		return
	}
	if cur, ok := p.state.twoWay.shared.(*sharedCell[T]); ok && cur == s {
		s.detach(p.h)
		p.state.twoWay.leave = func() {}
	}
}

func (s *sharedCell[T]) join(p *Property[T]) {
	rejoin(s, p)
	link := &twoWayLink[T]{
		shared:     s,
		read:       s.prop.Get,
		write:      s.prop.Set,
		setBinding: s.prop.SetBinding,
		setAnim:    s.prop.SetAnimatedBinding,
	}
	link.leave = func() { s.remove(p.h) }
	p.replaceState(twoWayStateOf(link))
	s.attach(p.h, func(ns *sharedCell[T]) { ns.join(p) })
}

func joinMapped[T, U comparable](s *sharedCell[T], p *Property[U], m Mapping[T, U]) {
	rejoin(s, p)
	link := &twoWayLink[U]{
		shared: s,
		mapped: true,
		read: func() U {
			return m.To(s.prop.Get())
		},
		write: func(v U) {
			s.prop.Set(m.From(s.prop.GetUntracked(), v))
		},
	}
	link.setBinding = func(fn func() U) {
		s.prop.SetBinding(func() T {
			return m.From(s.prop.GetUntracked(), fn())
		})
	}
	link.setAnim = func(fn func() U, _ animation.PropertyAnimation, _ Interpolator[U]) {
		link.setBinding(fn)
	}
	link.leave = func() { s.remove(p.h) }

	var keep func() U
	if p.state.kind == KindBinding && s.prop.state.kind == KindConstant {
		keep = p.state.binding
	}
	p.replaceState(twoWayStateOf(link))
	s.attach(p.h, func(ns *sharedCell[T]) { joinMapped(ns, p, m) })
	if keep != nil {
		link.setBinding(keep)
	}
}

// sharedOf returns the group p mirrors without a mapping, if any.
func sharedOf[T comparable](p *Property[T]) *sharedCell[T] {
	if p.state.kind != KindTwoWay || p.state.twoWay.mapped {
		return nil
	}
	s, _ := p.state.twoWay.shared.(*sharedCell[T])
	return s
}

func hasBinding[T comparable](p *Property[T]) bool {
	return p.state.kind == KindBinding || p.state.kind == KindAnimated
}

// LinkTwoWay makes a and b behave as a single property backed by one
// canonical shared cell. a's side wins: the shared cell takes a's binding or
// value, or b's binding when a has none. Linking properties that already
// share a cell is a no-op; linking members of two different groups merges
// the groups.
func LinkTwoWay[T comparable](a, b *Property[T]) {
	sa, sb := sharedOf(a), sharedOf(b)
	switch {
	case sa != nil && sa == sb:
		return
	case sa != nil && sb != nil:
		sa.merge(sb)
	case sa != nil:
		sa.join(b)
	case sb != nil:
		sb.adopt(a)
		sb.join(a)
	default:
		rs := a.rs
		s := newSharedCell(rs, "<"+rs.nameOf(a.h)+"<=>"+rs.nameOf(b.h)+">", a.GetUntracked())
		switch {
		case hasBinding(a):
			s.adopt(a)
		case hasBinding(b):
			s.adopt(b)
		}
		s.join(a)
		s.join(b)
	}
}

// Mapping converts between the canonical type T and a linked property of
// type U. From receives the current canonical value so T may carry more
// information than U.
type Mapping[T, U comparable] struct {
	To   func(T) U
	From func(current T, v U) T
}

// LinkTwoWayWithMap links b to a's canonical cell (creating it from a's
// value or binding if needed) through m. Reading b yields m.To of the shared
// value; writing b stores m.From into it. A binding already held by b is kept
// and forwarded to the shared cell when a has none.
func LinkTwoWayWithMap[T, U comparable](a *Property[T], b *Property[U], m Mapping[T, U]) {
	s := sharedOf(a)
	if s == nil {
		rs := a.rs
		s = newSharedCell(rs, rs.nameOf(a.h)+"*", a.GetUntracked())
		if hasBinding(a) {
			s.adopt(a)
		}
		s.join(a)
	}
	joinMapped(s, b, m)
}

// SharedHandle returns the canonical cell backing a two-way linked property.
func (p *Property[T]) SharedHandle() (Handle, bool) {
	if p.state.kind != KindTwoWay {
		return Handle{}, false
	}
	return p.state.twoWay.shared.canonical(), true
}

// Unlink leaves the property's two-way group, keeping its current value as a
// constant.
func (p *Property[T]) Unlink() {
	if p.state.kind != KindTwoWay {
		return
	}
	v := p.GetUntracked()
	p.replaceState(constantState[T]())
	p.value = v
}
