package reactive

import (
	"fmt"

	lerrors "github.com/lumos-ui/lumos/internal/errors"
)

// Callback receives a watcher's new and old values after a re-evaluation
// that produced a change.
type Callback func(newVal, oldVal any)

// WatcherOptions configures a Watcher at construction.
type WatcherOptions struct {
	// Deep makes the watcher traverse its value after every evaluation so
	// it depends on the entire nested structure.
	Deep bool

	// User marks a user-supplied watch expression: getter and callback
	// panics are recovered and routed to the error handler instead of
	// propagating.
	User bool

	// Lazy defers the first evaluation until the value is read. Lazy
	// watchers mark themselves dirty on update instead of re-running.
	Lazy bool

	// Sync runs the watcher inline on notification, bypassing the
	// scheduler.
	Sync bool

	// Render installs the watcher as its scope's render watcher.
	Render bool

	// Before runs just before a scheduled re-run (scheduler path only).
	Before func()
}

// Watcher is a computation that evaluates a getter while registered as the
// global dependency-collection target, subscribes to exactly the Deps it
// touched, and re-evaluates when any of them notifies.
//
// While active, deps is exactly the set of Deps read on the most recent
// evaluation; newDeps accumulates the evaluation in progress and the two are
// swapped by cleanupDeps.
type Watcher struct {
	id         uint64
	scope      *Scope
	getter     func() any
	cb         Callback
	expression string

	deep, user, lazy, sync bool
	dirty                  bool
	active                 bool

	deps      []*Dep
	newDeps   []*Dep
	depIDs    map[uint64]struct{}
	newDepIDs map[uint64]struct{}

	value  any
	before func()
}

// NewWatcher creates a Watcher owned by scope. expr is either a getter
// func() any or a dotted path string resolved against the scope's bound
// state. Unless lazy, the watcher evaluates immediately to obtain its
// initial value.
func NewWatcher(scope *Scope, expr any, cb Callback, opts *WatcherOptions) (*Watcher, error) {
	if opts == nil {
		opts = &WatcherOptions{}
	}

	w := &Watcher{
		id:        nextID(),
		scope:     scope,
		cb:        cb,
		deep:      opts.Deep,
		user:      opts.User,
		lazy:      opts.Lazy,
		sync:      opts.Sync,
		dirty:     opts.Lazy,
		active:    true,
		depIDs:    make(map[uint64]struct{}),
		newDepIDs: make(map[uint64]struct{}),
		before:    opts.Before,
	}

	switch g := expr.(type) {
	case func() any:
		w.getter = g
		w.expression = "fn"
	case string:
		pathGetter, err := ParsePath(g)
		if err != nil {
			return nil, err
		}
		w.getter = func() any {
			if w.scope == nil {
				return nil
			}
			return pathGetter(w.scope.State())
		}
		w.expression = g
	default:
		return nil, lerrors.New(lerrors.CodeInvalidExpression).
			WithDetail(fmt.Sprintf("unsupported watcher expression type %T", expr))
	}

	if scope != nil {
		scope.addWatcher(w)
		if opts.Render {
			scope.renderWatcher = w
		}
	}

	if !w.lazy {
		w.value = w.get()
	}
	return w, nil
}

// ID returns the watcher's creation-ordered identifier.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Value returns the cached value from the most recent evaluation.
func (w *Watcher) Value() any {
	return w.value
}

// Dirty reports whether a lazy watcher's cached value is stale.
func (w *Watcher) Dirty() bool {
	return w.dirty
}

// Active reports whether the watcher has not been torn down.
func (w *Watcher) Active() bool {
	return w.active
}

// Expression returns the watch expression, for error messages.
func (w *Watcher) Expression() string {
	return w.expression
}

// Before invokes the pre-run hook, if configured. Called by the scheduler
// ahead of Run.
func (w *Watcher) Before() {
	if w.before != nil {
		w.before()
	}
}

// get runs the evaluation protocol: push self as the collection target,
// invoke the getter, traverse the result for deep watchers, pop the target,
// and reconcile dep subscriptions. The restore steps are deferred so a
// panicking getter cannot unbalance the target stack or leave stale
// subscriptions.
func (w *Watcher) get() any {
	PushTarget(w)
	var value any
	defer func() {
		if w.deep {
			Traverse(value)
		}
		PopTarget()
		w.cleanupDeps()
	}()

	if w.user {
		func() {
			defer func() {
				if r := recover(); r != nil {
					err := lerrors.New(lerrors.CodeWatcherGetter).Wrap(recoveredError(r))
					HandleError(err, w.scope, fmt.Sprintf("getter for watcher %q", w.expression))
				}
			}()
			value = w.getter()
		}()
	} else {
		value = w.getter()
	}
	return value
}

// addDep records a Dep touched during the current evaluation. Each Dep is
// recorded once per evaluation, and the watcher subscribes only if it was
// not already subscribed from the previous evaluation.
func (w *Watcher) addDep(d *Dep) {
	id := d.id
	if _, ok := w.newDepIDs[id]; ok {
		return
	}
	w.newDepIDs[id] = struct{}{}
	w.newDeps = append(w.newDeps, d)
	if _, ok := w.depIDs[id]; !ok {
		d.addSub(w)
	}
}

// cleanupDeps unsubscribes from Deps the latest evaluation no longer
// touched, then promotes the new dep set to current.
func (w *Watcher) cleanupDeps() {
	for _, d := range w.deps {
		if _, ok := w.newDepIDs[d.id]; !ok {
			d.removeSub(w)
		}
	}
	w.deps, w.newDeps = w.newDeps, w.deps[:0]
	w.depIDs, w.newDepIDs = w.newDepIDs, w.depIDs
	clear(w.newDepIDs)
}

// Update is the subscriber notification hook. Lazy watchers just go dirty;
// sync watchers run inline; everything else defers to the scheduler, or
// runs inline in synchronous mode.
func (w *Watcher) Update() {
	if w.lazy {
		w.dirty = true
		return
	}
	if w.sync {
		w.Run()
		return
	}
	if s := currentScheduler(); s != nil {
		s.QueueWatcher(w)
		return
	}
	w.Run()
}

// Run re-evaluates the watcher and fires its callback when the value
// changed, is a container (identity does not imply the absence of internal
// mutation), or the watcher is deep. No-op after teardown, which can race
// with scheduler batching.
func (w *Watcher) Run() {
	if !w.active {
		return
	}
	value := w.get()
	if !identical(value, w.value) || isContainer(value) || w.deep {
		oldValue := w.value
		w.value = value
		if w.cb == nil {
			return
		}
		if w.user {
			func() {
				defer func() {
					if r := recover(); r != nil {
						err := lerrors.New(lerrors.CodeWatcherCallback).Wrap(recoveredError(r))
						HandleError(err, w.scope, fmt.Sprintf("callback for watcher %q", w.expression))
					}
				}()
				w.cb(value, oldValue)
			}()
		} else {
			w.cb(value, oldValue)
		}
	}
}

// Evaluate forces recomputation of a lazy watcher and clears the dirty
// flag. Callers check Dirty before using a lazy value.
func (w *Watcher) Evaluate() {
	w.value = w.get()
	w.dirty = false
}

// Depend re-registers the currently evaluating outer Watcher with every Dep
// this watcher depends on. Reading a lazy value from within another
// evaluation thereby makes the outer computation depend transitively on the
// lazy value's own dependencies, not just its output.
func (w *Watcher) Depend() {
	for _, d := range w.deps {
		d.Depend()
	}
}

// Teardown unsubscribes from every Dep and deactivates the watcher.
// Removal from the scope's watcher list is skipped when the whole scope is
// being destroyed, since the list is discarded wholesale.
func (w *Watcher) Teardown() {
	if !w.active {
		return
	}
	if w.scope != nil && !w.scope.beingDestroyed {
		w.scope.removeWatcher(w)
	}
	for _, d := range w.deps {
		d.removeSub(w)
	}
	w.active = false
}
