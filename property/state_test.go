package property

import (
	"testing"

	"github.com/delaneyj/propcell/animation"
	"github.com/stretchr/testify/assert"
)

func TestStateBinding(t *testing.T) {
	rs := NewReactiveSystem()
	driver := rs.AnimationDriver()
	driver.UpdateAnimations(100)

	sel := New(rs, 0)
	st := New(rs, StateInfo{})
	SetStateBinding(st, func() int { return sel.Get() })
	assert.Equal(t, StateInfo{}, st.Get())

	driver.UpdateAnimations(200)
	sel.Set(2)
	assert.Equal(t, StateInfo{Current: 2, Previous: 0, ChangeTime: 200}, st.Get())

	driver.UpdateAnimations(300)
	assert.Equal(t, animation.Instant(200), st.Get().ChangeTime)

	sel.Set(1)
	assert.Equal(t, StateInfo{Current: 1, Previous: 2, ChangeTime: 300}, st.Get())
}

func TestInterpolators(t *testing.T) {
	assert.Equal(t, 12, LerpInt(10, 14, 0.5))
	assert.Equal(t, int64(-5), LerpInt64(0, -10, 0.5))
	assert.InDelta(t, 2.5, LerpFloat64(0, 10, 0.25), 1e-9)
	assert.Equal(t, uint8(255), LerpUint8(0, 255, 1.2))
	assert.Equal(t, uint8(0), LerpUint8(10, 255, -0.2))
	assert.Equal(t, float32(5), LerpFloat32(0, 10, 0.5))
}
