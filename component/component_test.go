package component

import (
	"strconv"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/propcell/animation"
	"github.com/delaneyj/propcell/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type button struct {
	desc    *Description
	width   Slot[float64]
	height  Slot[float64]
	count   Slot[int]
	label   Slot[string]
	text    Slot[string]
	enabled Slot[bool]
	opacity Slot[float64]
}

func newButton() *button {
	d := NewDescription("Button")
	b := &button{
		desc:    d,
		width:   Declare(d, "width", 10.0, Number[float64]()),
		height:  Declare(d, "height", 0.0, Number[float64]()),
		count:   Declare(d, "count", 0, Number[int]()),
		label:   Declare(d, "label", "", String),
		text:    Declare(d, "text", "", String),
		enabled: DeclareReadOnly(d, "enabled", true, Bool),
		opacity: Declare(d, "opacity", 0.0, Number[float64]()),
	}
	Bind(d, b.height, func(c *Component) float64 {
		return Field(c, b.width).Get() * 2
	})
	Link(d, b.label, b.text)
	Animate(d, b.opacity, func(c *Component) float64 {
		if Field(c, b.enabled).Get() {
			return 1
		}
		return 0.5
	}, animation.Animate(100*time.Millisecond, animation.Linear), property.LerpFloat64)
	return b
}

func TestComponent(t *testing.T) {
	t.Run("initializers run on instantiate", func(t *testing.T) {
		rs := property.NewReactiveSystem()
		b := newButton()
		c := b.desc.Instantiate(rs)

		assert.Equal(t, 20.0, Field(c, b.height).Get())
		Field(c, b.width).Set(4)
		assert.Equal(t, 8.0, Field(c, b.height).Get())
		assert.Equal(t, property.KindTwoWay, Field(c, b.label).Kind())
		assert.True(t, Field(c, b.opacity).IsAnimating())
	})

	t.Run("instances are independent", func(t *testing.T) {
		rs := property.NewReactiveSystem()
		b := newButton()
		c1 := b.desc.Instantiate(rs)
		c2 := b.desc.Instantiate(rs)

		Field(c1, b.width).Set(1)
		assert.Equal(t, 2.0, Field(c1, b.height).Get())
		assert.Equal(t, 20.0, Field(c2, b.height).Get())
	})

	t.Run("two-way slots", func(t *testing.T) {
		rs := property.NewReactiveSystem()
		b := newButton()
		c := b.desc.Instantiate(rs)

		require.NoError(t, c.SetProperty("text", StringValue("hi")))
		v, err := c.GetProperty("label")
		require.NoError(t, err)
		assert.Equal(t, StringValue("hi"), v)
	})

	t.Run("destroy frees every slot", func(t *testing.T) {
		rs := property.NewReactiveSystem()
		b := newButton()
		c := b.desc.Instantiate(rs)
		h := Field(c, b.width).Handle()

		c.Destroy()
		assert.False(t, rs.IsAlive(h))
		assert.Equal(t, 1, rs.Stats().Live) // animation tick
	})

	t.Run("duplicate declarations panic", func(t *testing.T) {
		d := NewDescription("Dup")
		Declare(d, "x", 0, Number[int]())
		assert.Panics(t, func() { Declare(d, "x", "", String) })
	})

	t.Run("names sharing a hash stay distinct", func(t *testing.T) {
		d := NewDescription("Collide")
		Declare(d, "a", 1, Number[int]())
		// file slot "a" under the hash of "b" as well
		key := xxhash.Sum64String("b")
		d.byName[key] = append(d.byName[key], 0)

		require.NotPanics(t, func() { Declare(d, "b", "two", String) })
		info, ok := d.Lookup("b")
		require.True(t, ok)
		assert.Equal(t, "b", info.Name())
		info, ok = d.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, "a", info.Name())

		c := d.Instantiate(property.NewReactiveSystem())
		v, err := c.GetProperty("b")
		require.NoError(t, err)
		assert.Equal(t, StringValue("two"), v)
	})
}

func TestPropertyInfo(t *testing.T) {
	rs := property.NewReactiveSystem()
	b := newButton()
	c := b.desc.Instantiate(rs)

	t.Run("lookup", func(t *testing.T) {
		info, ok := b.desc.Lookup("width")
		require.True(t, ok)
		assert.Equal(t, "width", info.Name())
		assert.False(t, info.ReadOnly())

		_, ok = b.desc.Lookup("missing")
		assert.False(t, ok)

		names := []string{}
		for _, info := range b.desc.Properties() {
			names = append(names, info.Name())
		}
		assert.Equal(t, []string{"width", "height", "count", "label", "text", "enabled", "opacity"}, names)
	})

	t.Run("get and set by name", func(t *testing.T) {
		require.NoError(t, c.SetProperty("width", NumberValue(4)))
		v, err := c.GetProperty("height")
		require.NoError(t, err)
		assert.Equal(t, NumberValue(8), v)

		v, err = c.GetProperty("enabled")
		require.NoError(t, err)
		assert.Equal(t, BoolValue(true), v)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := c.GetProperty("missing")
		assert.ErrorIs(t, err, ErrPropertyNotFound)

		err = c.SetProperty("missing", NumberValue(1))
		assert.ErrorIs(t, err, ErrPropertyNotFound)

		err = c.SetProperty("width", StringValue("wide"))
		assert.ErrorIs(t, err, ErrWrongType)

		err = c.SetProperty("count", NumberValue(1.5))
		assert.ErrorIs(t, err, ErrWrongType)

		d := NewDescription("Ranges")
		u := Declare(d, "u", uint8(7), Number[uint8]())
		i := Declare(d, "i", int32(7), Number[int32]())
		r := d.Instantiate(rs)
		for _, tc := range []struct {
			name string
			v    float64
		}{{"u", 300}, {"u", -1}, {"i", 1e12}, {"i", -1e12}} {
			err = r.SetProperty(tc.name, NumberValue(tc.v))
			assert.ErrorIs(t, err, ErrWrongType, "%s=%v", tc.name, tc.v)
		}
		assert.Equal(t, uint8(7), Field(r, u).Get())
		assert.Equal(t, int32(7), Field(r, i).Get())
		require.NoError(t, r.SetProperty("u", NumberValue(255)))
		assert.Equal(t, uint8(255), Field(r, u).Get())
		require.NoError(t, r.SetProperty("i", NumberValue(-2147483648)))
		assert.Equal(t, int32(-2147483648), Field(r, i).Get())

		err = c.SetProperty("enabled", BoolValue(false))
		assert.ErrorIs(t, err, ErrReadOnly)

		err = c.SetPropertyBinding("enabled", func() Value { return BoolValue(false) })
		assert.ErrorIs(t, err, ErrReadOnly)

		err = c.SetPropertyBinding("missing", func() Value { return Value{} })
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("type-erased binding", func(t *testing.T) {
		require.NoError(t, c.SetProperty("count", NumberValue(3)))
		require.NoError(t, c.SetPropertyBinding("text", func() Value {
			return StringValue(strconv.Itoa(Field(c, b.count).Get()))
		}))

		v, err := c.GetProperty("label")
		require.NoError(t, err)
		assert.Equal(t, StringValue("3"), v)

		require.NoError(t, c.SetProperty("count", NumberValue(4)))
		v, err = c.GetProperty("text")
		require.NoError(t, err)
		assert.Equal(t, StringValue("4"), v)
	})

	t.Run("binding results that do not convert keep the last value", func(t *testing.T) {
		ok := property.New(rs, true)
		require.NoError(t, c.SetPropertyBinding("count", func() Value {
			if ok.Get() {
				return NumberValue(7)
			}
			return StringValue("seven")
		}))
		assert.Equal(t, 7, Field(c, b.count).Get())
		ok.Set(false)
		assert.Equal(t, 7, Field(c, b.count).Get())
	})
}

func TestValue(t *testing.T) {
	assert.Equal(t, KindVoid, Value{}.Kind())
	assert.Equal(t, "void", Value{}.String())
	assert.Equal(t, "1.5", NumberValue(1.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, `"x"`, StringValue("x").String())

	_, ok := StringValue("x").Number()
	assert.False(t, ok)

	n, ok := Number[uint8]().From(NumberValue(200))
	assert.True(t, ok)
	assert.Equal(t, uint8(200), n)
	f, ok := Number[float32]().From(NumberValue(0.5))
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), f)
}
