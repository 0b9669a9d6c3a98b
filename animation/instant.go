package animation

import (
	"strconv"
	"time"
)

// Instant is a point on the logical animation timeline, in milliseconds since
// the animation driver started.
type Instant uint64

// InstantSince converts wall time into an Instant relative to epoch. Times
// before the epoch map to zero.
func InstantSince(epoch, now time.Time) Instant {
	d := now.Sub(epoch)
	if d < 0 {
		return 0
	}
	return Instant(d.Milliseconds())
}

// Add returns the instant advanced by d, truncated to whole milliseconds.
func (i Instant) Add(d time.Duration) Instant {
	ms := d.Milliseconds()
	if ms < 0 && uint64(-ms) > uint64(i) {
		return 0
	}
	return Instant(int64(i) + ms)
}

// Sub returns the duration elapsed since earlier, saturating at zero.
func (i Instant) Sub(earlier Instant) time.Duration {
	if earlier >= i {
		return 0
	}
	return time.Duration(i-earlier) * time.Millisecond
}

// Millis returns the instant as a millisecond count.
func (i Instant) Millis() uint64 {
	return uint64(i)
}

func (i Instant) String() string {
	return strconv.FormatUint(uint64(i), 10) + "ms"
}
