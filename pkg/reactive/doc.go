// Package reactive provides the dependency-tracking core for the Lumos
// framework.
//
// State is held in closed container types, Mapping for keyed data and
// Sequence for indexed data, whose properties are instrumented so that
// reads performed while a Watcher is evaluating register that Watcher as a
// subscriber, and writes notify exactly the Watchers that read the changed
// value.
//
// # Core Types
//
// Dep is the per-value subject: it holds an ordered subscriber list and
// notifies it on change.
//
// Observer instruments a container, recursively, exactly once:
//
//	state := NewMapping(map[string]any{"count": 0})
//	Observe(state)
//
// Watcher is a computation that re-collects its dependencies on every
// evaluation:
//
//	w, _ := NewWatcher(scope, func() any { return state.Get("count") },
//	    func(newVal, oldVal any) { /* react */ }, nil)
//
// Traverse forces a deep read of a value so deep watchers depend on nested
// structure without enumerating it.
//
// # Update delivery
//
// With no scheduler registered the engine is synchronous: Dep.Notify invokes
// subscribers immediately in ascending creation-id order. Registering a
// scheduler (see the scheduler package) defers non-sync watcher runs to a
// batched flush that dedupes and orders globally.
//
// # Concurrency
//
// The engine is single-threaded by design: all reads, writes, watcher
// evaluations and flushes must happen on one goroutine. There is no internal
// locking.
package reactive
