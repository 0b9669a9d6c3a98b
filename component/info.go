package component

import "fmt"

// PropertyInfo is the type-erased accessor of one declared property, used by
// host bindings that only know property names and Values.
type PropertyInfo interface {
	Name() string
	ReadOnly() bool
	Get(c *Component) Value
	Set(c *Component, v Value) error
	SetBinding(c *Component, fn func() Value) error
}

type typedInfo[T comparable] struct {
	slot     Slot[T]
	conv     Converter[T]
	readOnly bool
}

func (i *typedInfo[T]) Name() string   { return i.slot.name }
func (i *typedInfo[T]) ReadOnly() bool { return i.readOnly }

func (i *typedInfo[T]) Get(c *Component) Value {
	return i.conv.To(Field(c, i.slot).Get())
}

func (i *typedInfo[T]) Set(c *Component, v Value) error {
	if i.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, i.slot.name)
	}
	t, ok := i.conv.From(v)
	if !ok {
		return fmt.Errorf("%w: %s cannot hold %s", ErrWrongType, i.slot.name, v.Kind())
	}
	Field(c, i.slot).Set(t)
	return nil
}

// SetBinding converts fn's result on every evaluation. A result that does
// not convert leaves the previous value in place.
func (i *typedInfo[T]) SetBinding(c *Component, fn func() Value) error {
	if i.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, i.slot.name)
	}
	p := Field(c, i.slot)
	p.SetBinding(func() T {
		t, ok := i.conv.From(fn())
		if !ok {
			c.rs.Logger().Debug("binding result does not convert", "property", i.slot.name)
			return p.Cached()
		}
		return t
	})
	return nil
}
