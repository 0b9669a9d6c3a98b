// Package property implements reactive value cells for a declarative UI
// runtime.
//
// A Property holds a constant, a binding recomputed lazily from the
// properties it read last time, an animation easing toward a binding, or a
// two-way mirror of a shared cell. Reads made while a binding is evaluated
// are recorded as dependencies; writes invalidate dependents without
// recomputing them. Every cell lives in the arena of a ReactiveSystem and is
// referenced by weak handles, so destroyed cells are simply skipped.
//
// Nothing in this package is safe for concurrent use: a ReactiveSystem and
// its cells belong to the goroutine running the UI event loop.
//
//go:generate go run ../cmd/codegen --out .
package property
