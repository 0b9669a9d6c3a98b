package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasing(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		assert.Equal(t, 0.0, Linear.Apply(0))
		assert.Equal(t, 0.5, Linear.Apply(0.5))
		assert.Equal(t, 1.0, Linear.Apply(1))
	})

	t.Run("progress is clamped", func(t *testing.T) {
		assert.Equal(t, 0.0, Linear.Apply(-3))
		assert.Equal(t, 1.0, Linear.Apply(7))
		assert.InDelta(t, 1.0, Ease.Apply(1.5), 0.01)
	})

	t.Run("bezier endpoints are exact", func(t *testing.T) {
		for _, c := range []EasingCurve{Ease, EaseIn, EaseOut, EaseInOut, CubicBezier(0.1, -0.6, 0.2, 1.8)} {
			assert.Equal(t, 0.0, c.Apply(0), c.String())
			assert.Equal(t, 1.0, c.Apply(1), c.String())
		}
	})

	t.Run("symmetric bezier midpoint", func(t *testing.T) {
		assert.InDelta(t, 0.5, EaseInOut.Apply(0.5), 0.01)
	})

	t.Run("bezier is monotonic", func(t *testing.T) {
		for _, c := range []EasingCurve{Ease, EaseIn, EaseOut, EaseInOut} {
			prev := -1.0
			for i := 0; i <= 20; i++ {
				v := c.Apply(float64(i) / 20)
				assert.GreaterOrEqual(t, v, prev-0.01, "%s at %d", c, i)
				prev = v
			}
		}
	})

	t.Run("ease in starts slow", func(t *testing.T) {
		assert.Less(t, EaseIn.Apply(0.25), 0.25)
		assert.Greater(t, EaseOut.Apply(0.25), 0.25)
	})

	t.Run("control points outside unit range fall back to linear", func(t *testing.T) {
		c := CubicBezier(1.5, 0, -0.5, 1)
		assert.Equal(t, 0.3, c.Apply(0.3))
	})

	t.Run("elastic and bounce endpoints", func(t *testing.T) {
		for _, c := range []EasingCurve{
			EaseInElastic, EaseOutElastic, EaseInOutElastic,
			EaseInBounce, EaseOutBounce, EaseInOutBounce,
		} {
			assert.InDelta(t, 0.0, c.Apply(0), 1e-9, c.String())
			assert.InDelta(t, 1.0, c.Apply(1), 1e-9, c.String())
		}
		assert.InDelta(t, 0.5, EaseInOutBounce.Apply(0.5), 1e-9)
	})

	t.Run("elastic overshoots", func(t *testing.T) {
		over := false
		for i := 1; i < 100; i++ {
			if EaseOutElastic.Apply(float64(i)/100) > 1 {
				over = true
				break
			}
		}
		assert.True(t, over)
	})
}

func TestSolveTForX(t *testing.T) {
	seg := bezierSegment{x1: 0.42, y1: 0, x2: 0.58, y2: 1}
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		got := seg.x(seg.solveTForX(x, bezierTolerance))
		assert.InDelta(t, x, got, bezierTolerance, "x=%v", x)
	}
}
