package component

import (
	"fmt"

	"github.com/delaneyj/propcell/property"
)

// Component is one instance of a Description. Its properties never move
// once instantiated; bindings address siblings through Field and a Slot.
type Component struct {
	desc   *Description
	rs     *property.ReactiveSystem
	fields []any
}

func (c *Component) Description() *Description {
	return c.desc
}

func (c *Component) System() *property.ReactiveSystem {
	return c.rs
}

// Field returns the property addressed by s.
func Field[T comparable](c *Component, s Slot[T]) *property.Property[T] {
	return c.fields[s.index].(*property.Property[T])
}

// Destroy frees every property of the instance.
func (c *Component) Destroy() {
	for _, f := range c.fields {
		if d, ok := f.(interface{ Destroy() }); ok {
			d.Destroy()
		}
	}
}

// GetProperty reads a property by name through its converter.
func (c *Component) GetProperty(name string) (Value, error) {
	info, ok := c.desc.Lookup(name)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, c.desc.name, name)
	}
	return info.Get(c), nil
}

// SetProperty writes a property by name. The value must convert to the
// property's type.
func (c *Component) SetProperty(name string, v Value) error {
	info, ok := c.desc.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, c.desc.name, name)
	}
	return info.Set(c, v)
}

// SetPropertyBinding installs a type-erased binding on a property by name.
func (c *Component) SetPropertyBinding(name string, fn func() Value) error {
	info, ok := c.desc.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, c.desc.name, name)
	}
	return info.SetBinding(c, fn)
}
