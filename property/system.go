package property

import (
	"fmt"
	"io"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/propcell/animation"
	"github.com/dustin/go-humanize"
)

// CacheState is the validity of a cell's cached value.
type CacheState uint8

const (
	CacheClean CacheState = iota // cached value is valid, no need to recompute
	CacheCheck                   // a transitive source may have changed, validate sources before use
	CacheDirty                   // a direct source changed, the value must be recomputed
)

func (s CacheState) String() string {
	switch s {
	case CacheClean:
		return "clean"
	case CacheCheck:
		return "check"
	case CacheDirty:
		return "dirty"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Handle is a weak, generation-checked reference to a cell in a
// ReactiveSystem. A handle to a destroyed cell resolves to nothing; it never
// keeps the cell alive. The zero Handle refers to no cell.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h refers to no cell.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type nodeFlags uint8

const (
	fAlive nodeFlags = 1 << iota
	fEvaluating
)

// cell is what the arena calls back into. Property[T] and Tracker implement it.
type cell interface {
	// updateIfNecessary brings the cached value up to date if it may be stale.
	updateIfNecessary()
	// staled is called when the node leaves CacheClean.
	staled()
}

type node struct {
	gen   uint32
	flags nodeFlags
	state CacheState
	name  string
	cell  cell

	// sources are the cells read during the most recent evaluation.
	sources mapset.Set[Handle]
	// subs are weak back-references to cells whose last evaluation read this one.
	subs mapset.Set[Handle]
}

// Stats are monotonically increasing engine counters.
type Stats struct {
	Evaluations uint64 // binding, animation and two-way evaluations
	DirtyMarks  uint64 // clean->check/dirty and check->dirty transitions
	Allocated   uint64 // cells ever allocated
	Live        int    // cells currently alive
}

func (s Stats) String() string {
	return fmt.Sprintf("%s evaluations, %s dirty marks, %s live cells",
		humanize.Comma(int64(s.Evaluations)),
		humanize.Comma(int64(s.DirtyMarks)),
		humanize.Comma(int64(s.Live)),
	)
}

// ReactiveSystem owns every cell of one UI thread: the index-addressed node
// arena, the evaluation context stack and the animation driver.
//
// A ReactiveSystem is not safe for concurrent use. All cells created from it
// must only be touched from the goroutine that drives it.
type ReactiveSystem struct {
	nodes []*node
	free  []uint32
	live  int

	// stack holds the cells currently being evaluated. A zero Handle entry
	// marks a region where tracking is paused.
	stack []Handle

	driver *AnimationDriver
	clock  animation.Clock
	logger *slog.Logger
	stats  Stats
}

// Option configures a ReactiveSystem.
type Option func(*ReactiveSystem)

// WithLogger sets the structured logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithClock sets the wall clock sampled by AnimationDriver.Advance.
func WithClock(clock animation.Clock) Option {
	return func(rs *ReactiveSystem) {
		if clock != nil {
			rs.clock = clock
		}
	}
}

func NewReactiveSystem(opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		nodes:  make([]*node, 1, 64), // slot 0 is never handed out
		clock:  animation.SystemClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Stats returns a snapshot of the engine counters.
func (rs *ReactiveSystem) Stats() Stats {
	s := rs.stats
	s.Live = rs.live
	return s
}

// Logger returns the system's logger.
func (rs *ReactiveSystem) Logger() *slog.Logger {
	return rs.logger
}

func (rs *ReactiveSystem) alloc(name string, c cell) Handle {
	var idx uint32
	if n := len(rs.free); n > 0 {
		idx = rs.free[n-1]
		rs.free = rs.free[:n-1]
	} else {
		idx = uint32(len(rs.nodes))
		rs.nodes = append(rs.nodes, &node{})
	}

	nd := rs.nodes[idx]
	nd.gen++
	nd.flags = fAlive
	nd.state = CacheClean
	nd.name = name
	nd.cell = c
	nd.sources = mapset.NewThreadUnsafeSet[Handle]()
	nd.subs = mapset.NewThreadUnsafeSet[Handle]()

	rs.live++
	rs.stats.Allocated++
	return Handle{index: idx, gen: nd.gen}
}

// lookup resolves a weak handle, returning nil for dangling references.
func (rs *ReactiveSystem) lookup(h Handle) *node {
	if h.IsZero() || int(h.index) >= len(rs.nodes) {
		return nil
	}
	nd := rs.nodes[h.index]
	if nd.gen != h.gen || nd.flags&fAlive == 0 {
		return nil
	}
	return nd
}

// release frees a cell's slot. Weak references held by former dependents
// dangle and are skipped from then on.
func (rs *ReactiveSystem) release(h Handle) {
	nd := rs.lookup(h)
	if nd == nil {
		return
	}
	rs.clearSources(h)
	nd.flags = 0
	nd.cell = nil
	nd.sources = nil
	nd.subs = nil
	rs.free = append(rs.free, h.index)
	rs.live--
}

// IsAlive reports whether h still refers to a live cell.
func (rs *ReactiveSystem) IsAlive(h Handle) bool {
	return rs.lookup(h) != nil
}

func (rs *ReactiveSystem) nameOf(h Handle) string {
	if nd := rs.lookup(h); nd != nil && nd.name != "" {
		return nd.name
	}
	return h.String()
}

// activeFrame returns the cell currently being evaluated, or the zero Handle
// if nothing is or tracking is paused.
func (rs *ReactiveSystem) activeFrame() Handle {
	if len(rs.stack) == 0 {
		return Handle{}
	}
	return rs.stack[len(rs.stack)-1]
}

func (rs *ReactiveSystem) push(h Handle) {
	rs.stack = append(rs.stack, h)
}

func (rs *ReactiveSystem) pop() {
	rs.stack = rs.stack[:len(rs.stack)-1]
}

// EvaluationDepth returns the number of frames on the evaluation stack.
func (rs *ReactiveSystem) EvaluationDepth() int {
	return len(rs.stack)
}

// IsCurrentlyTracking reports whether reads register dependencies right now.
func (rs *ReactiveSystem) IsCurrentlyTracking() bool {
	return !rs.activeFrame().IsZero()
}

// PauseTracking stops reads from registering dependencies until the matching
// ResumeTracking.
func (rs *ReactiveSystem) PauseTracking() {
	rs.push(Handle{})
}

func (rs *ReactiveSystem) ResumeTracking() {
	if len(rs.stack) == 0 || !rs.activeFrame().IsZero() {
		panic("property: ResumeTracking without matching PauseTracking")
	}
	rs.pop()
}

// Untracked runs fn without registering any dependency for the binding
// currently being evaluated.
func (rs *ReactiveSystem) Untracked(fn func()) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	fn()
}

// track registers h as a dependency of the active frame.
func (rs *ReactiveSystem) track(h Handle) {
	top := rs.activeFrame()
	if top.IsZero() || top == h {
		return
	}
	topNode, nd := rs.lookup(top), rs.lookup(h)
	if topNode == nil || nd == nil {
		return
	}
	if nd.flags&fEvaluating != 0 {
		rs.logger.Debug("binding cycle, answering from cache",
			"reader", rs.nameOf(top),
			"cell", rs.nameOf(h),
		)
	}
	topNode.sources.Add(h)
	nd.subs.Add(top)
}

// clearSources drops every dependency edge recorded for h.
func (rs *ReactiveSystem) clearSources(h Handle) {
	nd := rs.lookup(h)
	if nd == nil || nd.sources.Cardinality() == 0 {
		return
	}
	nd.sources.Each(func(src Handle) bool {
		if sn := rs.lookup(src); sn != nil {
			sn.subs.Remove(h)
		}
		return false
	})
	nd.sources.Clear()
}

// stale raises h to at least state and flags every transitive dependent
// CacheCheck. It only sets flags; nothing is recomputed.
func (rs *ReactiveSystem) stale(h Handle, state CacheState) {
	nd := rs.lookup(h)
	if nd == nil || nd.state >= state {
		return
	}
	wasClean := nd.state == CacheClean
	nd.state = state
	rs.stats.DirtyMarks++
	if wasClean && nd.cell != nil {
		nd.cell.staled()
	}
	for _, sub := range rs.liveSubs(h, nd) {
		rs.stale(sub, CacheCheck)
	}
}

// markSubs flags every direct dependent of h with state.
func (rs *ReactiveSystem) markSubs(h Handle, state CacheState) {
	nd := rs.lookup(h)
	if nd == nil {
		return
	}
	for _, sub := range rs.liveSubs(h, nd) {
		rs.stale(sub, state)
	}
}

// liveSubs snapshots the dependents of h, pruning dangling references.
func (rs *ReactiveSystem) liveSubs(h Handle, nd *node) []Handle {
	if nd.subs.Cardinality() == 0 {
		return nil
	}
	subs := nd.subs.ToSlice()
	live := subs[:0]
	for _, sub := range subs {
		if rs.lookup(sub) == nil {
			nd.subs.Remove(sub)
			continue
		}
		live = append(live, sub)
	}
	return live
}

// validateSources pulls every source of a CacheCheck node, stopping as soon
// as one of them reports a change by marking h dirty.
func (rs *ReactiveSystem) validateSources(h Handle) {
	nd := rs.lookup(h)
	if nd == nil || nd.state != CacheCheck {
		return
	}
	for _, src := range nd.sources.ToSlice() {
		if sn := rs.lookup(src); sn != nil && sn.cell != nil {
			sn.cell.updateIfNecessary()
		}
		if nd.state == CacheDirty {
			return
		}
	}
}

// Dependents returns the live cells whose last evaluation read h.
func (rs *ReactiveSystem) Dependents(h Handle) []Handle {
	nd := rs.lookup(h)
	if nd == nil {
		return nil
	}
	return rs.liveSubs(h, nd)
}

// Dependencies returns the live cells read by h's last evaluation.
func (rs *ReactiveSystem) Dependencies(h Handle) []Handle {
	nd := rs.lookup(h)
	if nd == nil {
		return nil
	}
	deps := nd.sources.ToSlice()
	live := deps[:0]
	for _, d := range deps {
		if rs.lookup(d) != nil {
			live = append(live, d)
		}
	}
	return live
}

// State returns the cache state of h; dangling handles report CacheClean.
func (rs *ReactiveSystem) State(h Handle) CacheState {
	if nd := rs.lookup(h); nd != nil {
		return nd.state
	}
	return CacheClean
}
