package property

import "github.com/delaneyj/propcell/animation"

// StateInfo is the value of a state property: the active state index, the
// one before it and the instant the switch happened. Transitions use
// ChangeTime as their start.
type StateInfo struct {
	Current    int
	Previous   int
	ChangeTime animation.Instant
}

// SetStateBinding binds p to the state index computed by fn. When the index
// changes, the previous one is kept and ChangeTime is set to the driver's
// current tick.
func SetStateBinding(p *Property[StateInfo], fn func() int) {
	p.SetBinding(func() StateInfo {
		prev := p.Cached()
		next := fn()
		if next == prev.Current {
			return prev
		}
		return StateInfo{
			Current:    next,
			Previous:   prev.Current,
			ChangeTime: p.rs.AnimationDriver().tick.GetUntracked(),
		}
	})
}
