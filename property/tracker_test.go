package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("runs only when dirty", func(t *testing.T) {
		rs := NewReactiveSystem()
		a := New(rs, 1)
		dirtyCalls := 0
		tr := NewTracker(rs, func() { dirtyCalls++ })

		assert.True(t, tr.IsDirty())
		seen := 0
		assert.True(t, tr.EvaluateIfDirty(func() { seen = a.Get() }))
		assert.Equal(t, 1, seen)
		assert.False(t, tr.EvaluateIfDirty(func() { seen = a.Get() }))
		assert.Equal(t, 0, dirtyCalls)

		a.Set(2)
		assert.Equal(t, 1, dirtyCalls)
		assert.True(t, tr.IsDirty())
		assert.True(t, tr.EvaluateIfDirty(func() { seen = a.Get() }))
		assert.Equal(t, 2, seen)
	})

	t.Run("unchanged bindings leave it clean", func(t *testing.T) {
		rs := NewReactiveSystem()
		a := New(rs, 0)
		parity := NewBinding(rs, func() int { return a.Get() % 2 })
		tr := NewTracker(rs, nil)
		tr.EvaluateAsRoot(func() { parity.Get() })

		a.Set(2)
		assert.False(t, tr.IsDirty())
		assert.False(t, tr.EvaluateIfDirty(func() { parity.Get() }))

		a.Set(3)
		assert.True(t, tr.IsDirty())
	})

	t.Run("set dirty", func(t *testing.T) {
		rs := NewReactiveSystem()
		tr := NewTracker(rs, nil)
		tr.EvaluateAsRoot(func() {})
		assert.False(t, tr.IsDirty())
		tr.SetDirty()
		assert.True(t, tr.IsDirty())
	})

	t.Run("nested in a binding", func(t *testing.T) {
		rs := NewReactiveSystem()
		a := New(rs, 1)
		tr := NewTracker(rs, nil)
		callCount := 0
		c := NewBinding(rs, func() int {
			callCount++
			n := 0
			tr.Evaluate(func() { n = a.Get() })
			return n
		})

		assert.Equal(t, 1, c.Get())
		assert.Equal(t, []Handle{tr.Handle()}, rs.Dependencies(c.Handle()))

		a.Set(5)
		assert.Equal(t, 5, c.Get())
		assert.Equal(t, 2, callCount)
	})

	t.Run("destroy", func(t *testing.T) {
		rs := NewReactiveSystem()
		a := New(rs, 1)
		tr := NewTracker(rs, nil)
		tr.EvaluateAsRoot(func() { a.Get() })
		tr.Destroy()
		assert.False(t, rs.IsAlive(tr.Handle()))
		assert.NotPanics(t, func() { a.Set(2) })
		assert.False(t, tr.IsDirty())
	})
}
