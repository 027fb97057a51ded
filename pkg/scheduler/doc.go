// Package scheduler provides the batched watcher queue consumed by the
// reactive engine's deferred update path.
//
// A Queue collects watchers notified during a tick, deduplicates them by ID,
// and runs them in ascending creation order on Flush: parents before the
// children created after them. Watchers queued mid-flush (by a run that
// notifies further state) are admitted at their sorted position; a watcher
// re-queued more than the allowed number of times in one flush is dropped
// and reported as a probable infinite update loop.
//
// The host drives the queue: register it once, then call Flush at the end
// of each logical update tick.
//
//	q := scheduler.New(
//	    scheduler.WithMetrics(scheduler.NewMetrics()),
//	    scheduler.WithTracing("lumos"),
//	)
//	q.Register()
//	...
//	q.Flush()
//
// Like the engine itself, a Queue is single-threaded: QueueWatcher and
// Flush must be called from the same goroutine that mutates state.
package scheduler
