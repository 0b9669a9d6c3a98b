package component

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/propcell/animation"
	"github.com/delaneyj/propcell/property"
)

// Description is the static layout of a component type: one slot per
// declared property plus the initializers installing bindings, animations
// and two-way links when an instance is built. Generated code builds one
// Description per component type and instantiates it many times.
type Description struct {
	name   string
	infos  []PropertyInfo
	byName map[uint64][]int // xxhash of the name; collisions share a bucket
	allocs []func(c *Component) any
	inits  []func(c *Component)
}

func NewDescription(name string) *Description {
	return &Description{
		name:   name,
		byName: map[uint64][]int{},
	}
}

func (d *Description) Name() string {
	return d.name
}

// Slot addresses one property of a component by its stable index.
type Slot[T comparable] struct {
	index int
	name  string
}

func (s Slot[T]) Index() int   { return s.index }
func (s Slot[T]) Name() string { return s.name }

// Declare adds a property slot holding initial until an initializer or the
// host changes it. It panics if name is already declared.
func Declare[T comparable](d *Description, name string, initial T, conv Converter[T]) Slot[T] {
	return declare(d, name, initial, conv, false)
}

// DeclareReadOnly is Declare for properties the host may read but not set.
func DeclareReadOnly[T comparable](d *Description, name string, initial T, conv Converter[T]) Slot[T] {
	return declare(d, name, initial, conv, true)
}

func declare[T comparable](d *Description, name string, initial T, conv Converter[T], readOnly bool) Slot[T] {
	if _, dup := d.Lookup(name); dup {
		panic(fmt.Sprintf("component: %s: property %q declared twice", d.name, name))
	}
	s := Slot[T]{index: len(d.infos), name: name}
	key := xxhash.Sum64String(name)
	d.byName[key] = append(d.byName[key], s.index)
	d.infos = append(d.infos, &typedInfo[T]{slot: s, conv: conv, readOnly: readOnly})
	qualified := d.name + "." + name
	d.allocs = append(d.allocs, func(c *Component) any {
		return property.NewNamed(c.rs, qualified, initial)
	})
	return s
}

// Bind installs fn as the binding of s on every instance. fn receives the
// instance so it can read sibling properties through Field.
func Bind[T comparable](d *Description, s Slot[T], fn func(c *Component) T) {
	d.inits = append(d.inits, func(c *Component) {
		Field(c, s).SetBinding(func() T { return fn(c) })
	})
}

// Animate installs fn as an animated binding of s on every instance.
func Animate[T comparable](d *Description, s Slot[T], fn func(c *Component) T, anim animation.PropertyAnimation, lerp property.Interpolator[T]) {
	d.inits = append(d.inits, func(c *Component) {
		Field(c, s).SetAnimatedBinding(func() T { return fn(c) }, anim, lerp)
	})
}

// Link two-way links slots a and b on every instance.
func Link[T comparable](d *Description, a, b Slot[T]) {
	d.inits = append(d.inits, func(c *Component) {
		property.LinkTwoWay(Field(c, a), Field(c, b))
	})
}

// Properties lists the declared properties in slot order.
func (d *Description) Properties() []PropertyInfo {
	return append([]PropertyInfo(nil), d.infos...)
}

// Lookup finds a declared property by name.
func (d *Description) Lookup(name string) (PropertyInfo, bool) {
	for _, i := range d.byName[xxhash.Sum64String(name)] {
		if d.infos[i].Name() == name {
			return d.infos[i], true
		}
	}
	return nil, false
}

// Instantiate builds an instance in rs: every slot is allocated first, then
// the initializers run in declaration order.
func (d *Description) Instantiate(rs *property.ReactiveSystem) *Component {
	c := &Component{
		desc:   d,
		rs:     rs,
		fields: make([]any, len(d.allocs)),
	}
	for i, alloc := range d.allocs {
		c.fields[i] = alloc(c)
	}
	for _, install := range d.inits {
		install(c)
	}
	return c
}
