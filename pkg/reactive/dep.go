package reactive

import "sort"

// Dep is the subject half of the dependency graph. Every reactive property
// and every Observer owns one. Watchers subscribe to the Deps they read and
// are notified when the guarded value changes.
//
// Dep performs no subscriber deduplication itself; Depend delegates to the
// current Watcher, which dedupes within an evaluation via its dep-id sets.
type Dep struct {
	id   uint64
	subs []*Watcher
}

// NewDep creates a Dep with a fresh creation-ordered ID.
func NewDep() *Dep {
	return &Dep{id: nextID()}
}

// ID returns the Dep's unique creation-ordered identifier.
func (d *Dep) ID() uint64 {
	return d.id
}

// addSub appends a watcher to the subscriber list.
func (d *Dep) addSub(w *Watcher) {
	d.subs = append(d.subs, w)
}

// removeSub removes the first matching watcher. No-op if absent.
func (d *Dep) removeSub(w *Watcher) {
	for i, sub := range d.subs {
		if sub == w {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// Depend registers the currently evaluating Watcher, if any, with this Dep.
// Subscription bookkeeping is delegated to the Watcher so it can dedupe
// across one evaluation pass.
func (d *Dep) Depend() {
	if w := Target(); w != nil {
		w.addDep(d)
	}
}

// Notify invokes the update hook of every subscriber. The subscriber list is
// snapshotted first so subscribe/unsubscribe during notification cannot
// corrupt the iteration. In synchronous mode (no scheduler registered) the
// snapshot is sorted by ascending watcher ID, which fires parents before the
// children created after them.
func (d *Dep) Notify() {
	subs := make([]*Watcher, len(d.subs))
	copy(subs, d.subs)

	if currentScheduler() == nil {
		sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	}

	for _, w := range subs {
		w.Update()
	}
}

// targetStack holds the nested chain of evaluating Watchers. The top entry
// is the Watcher currently collecting dependencies; reads while the stack is
// empty register nothing.
var targetStack []*Watcher

// Target returns the Watcher currently collecting dependencies, or nil.
func Target() *Watcher {
	if len(targetStack) == 0 {
		return nil
	}
	return targetStack[len(targetStack)-1]
}

// PushTarget makes w the current dependency-collection target. Pass nil to
// suspend collection entirely (for example while applying batched view
// updates that must not self-track).
//
// Every PushTarget must be paired with a PopTarget on all exit paths; the
// engine's own evaluation protocol does this with a deferred pop so panics
// cannot unbalance the stack.
func PushTarget(w *Watcher) {
	targetStack = append(targetStack, w)
}

// PopTarget restores the previous dependency-collection target.
func PopTarget() {
	if len(targetStack) == 0 {
		return
	}
	targetStack = targetStack[:len(targetStack)-1]
}

// Scheduler accepts watchers whose update hook chose deferred execution.
// Implementations must run each queued watcher at most once per flush and
// define cross-watcher ordering for the tick.
type Scheduler interface {
	QueueWatcher(w *Watcher)
}

// registeredScheduler is the deferred-execution sink, nil in synchronous mode.
var registeredScheduler Scheduler

// SetScheduler installs the deferred-execution scheduler. Passing nil
// returns the engine to synchronous mode.
func SetScheduler(s Scheduler) {
	registeredScheduler = s
}

func currentScheduler() Scheduler {
	return registeredScheduler
}
