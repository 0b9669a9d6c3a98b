package animation

import "time"

// Clock provides wall time for the animation driver. The default
// implementation uses system time; tests inject a fake to control animation
// timing deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}
