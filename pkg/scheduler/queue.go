package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	lerrors "github.com/lumos-ui/lumos/internal/errors"
	"github.com/lumos-ui/lumos/pkg/reactive"
)

// maxUpdateCount bounds how often one watcher may be re-queued during a
// single flush before the loop is reported and broken.
const maxUpdateCount = 100

// Queue is a batched watcher scheduler. It guarantees each queued watcher
// runs at most once per flush and defines the cross-watcher ordering for
// the tick: ascending creation ID.
type Queue struct {
	queue    []*reactive.Watcher
	has      map[uint64]bool
	circular map[uint64]int
	flushing bool
	index    int

	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Queue.
type Option func(*Queue)

// WithMetrics attaches Prometheus instrumentation to the queue.
func WithMetrics(m *Metrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

// WithTracing enables an OpenTelemetry span per flush, using the named
// tracer from the global provider.
func WithTracing(tracerName string) Option {
	return func(q *Queue) {
		q.tracer = otel.Tracer(tracerName)
	}
}

// New creates a Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		has:      make(map[uint64]bool),
		circular: make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Register installs the queue as the engine's deferred-execution scheduler.
func (q *Queue) Register() {
	reactive.SetScheduler(q)
}

// Len returns the number of watchers currently queued.
func (q *Queue) Len() int {
	return len(q.queue)
}

// QueueWatcher admits w for the current tick. Duplicate IDs are dropped.
// Outside a flush the watcher is appended (the flush sorts); during a flush
// it is inserted at its ID-sorted position past the running index so it
// still executes this tick, in order.
func (q *Queue) QueueWatcher(w *reactive.Watcher) {
	id := w.ID()
	if q.has[id] {
		return
	}
	q.has[id] = true

	if !q.flushing {
		q.queue = append(q.queue, w)
	} else {
		i := len(q.queue) - 1
		for i > q.index && q.queue[i].ID() > id {
			i--
		}
		q.queue = append(q.queue, nil)
		copy(q.queue[i+2:], q.queue[i+1:])
		q.queue[i+1] = w
	}

	if q.metrics != nil {
		q.metrics.watchersQueued.Inc()
		q.metrics.queueDepth.Set(float64(len(q.queue)))
	}
}

// Flush runs every queued watcher once, in ascending creation order, then
// resets the queue. Each watcher's Before hook runs just before its Run.
// A watcher re-queued more than maxUpdateCount times during this flush is
// reported through the engine's error handler and the flush aborts.
func (q *Queue) Flush() {
	start := time.Now()

	var span trace.Span
	if q.tracer != nil {
		_, span = q.tracer.Start(context.Background(), "scheduler.flush",
			trace.WithAttributes(attribute.Int("lumos.queue_length", len(q.queue))))
		defer span.End()
	}

	q.flushing = true
	sort.Slice(q.queue, func(i, j int) bool {
		return q.queue[i].ID() < q.queue[j].ID()
	})

	ran := 0
	for q.index = 0; q.index < len(q.queue); q.index++ {
		w := q.queue[q.index]
		w.Before()
		id := w.ID()
		// Allow the watcher to be queued again by its own run; the circular
		// counter catches runaway loops.
		delete(q.has, id)
		w.Run()
		ran++
		if q.has[id] {
			q.circular[id]++
			if q.circular[id] > maxUpdateCount {
				err := lerrors.New(lerrors.CodeInfiniteUpdate).
					WithDetail(fmt.Sprintf("watcher %q re-queued %d times", w.Expression(), q.circular[id]))
				reactive.HandleError(err, nil, "scheduler flush")
				if span != nil {
					span.SetStatus(codes.Error, err.Error())
				}
				break
			}
		}
	}

	q.reset()

	if q.metrics != nil {
		q.metrics.watchersRun.Add(float64(ran))
		q.metrics.flushesTotal.Inc()
		q.metrics.flushDuration.Observe(time.Since(start).Seconds())
		q.metrics.queueDepth.Set(0)
	}
}

// reset clears all per-tick state.
func (q *Queue) reset() {
	q.queue = q.queue[:0]
	for id := range q.has {
		delete(q.has, id)
	}
	for id := range q.circular {
		delete(q.circular, id)
	}
	q.flushing = false
	q.index = 0
}
