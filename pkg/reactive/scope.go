package reactive

// Scope is the owning context for watchers: a component instance, a test
// harness, or any unit whose computations should be created and destroyed
// together. Scopes form a tree mirroring the component hierarchy; disposing
// a scope tears down its watchers, disposes children in reverse creation
// order, and runs registered cleanups.
type Scope struct {
	id     uint64
	parent *Scope

	children      []*Scope
	watchers      []*Watcher
	renderWatcher *Watcher
	cleanups      []func()

	state *Mapping

	beingDestroyed bool
	destroyed      bool
}

// NewScope creates a Scope under parent; nil parent makes a root Scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// ID returns the scope's creation-ordered identifier.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Destroyed reports whether Dispose has completed.
func (s *Scope) Destroyed() bool {
	return s.destroyed
}

// BindState installs m as the scope's root state: the container is observed
// and its root count incremented, which arms the misuse warnings against
// adding or deleting root-level reactive properties after the fact.
func (s *Scope) BindState(m *Mapping) {
	s.state = m
	observeRoot(m)
}

// State returns the scope's bound root state, or nil.
func (s *Scope) State() *Mapping {
	return s.state
}

// RenderWatcher returns the scope's render watcher, if one was installed.
func (s *Scope) RenderWatcher() *Watcher {
	return s.renderWatcher
}

// Watch registers a user watch: expr is a getter or dotted path, cb fires
// with (new, old) when the watched value changes. Returns a stop function.
// With opts.Immediate set, cb fires once with the initial value before any
// change.
func (s *Scope) Watch(expr any, cb Callback, opts *WatchOptions) (func(), error) {
	if opts == nil {
		opts = &WatchOptions{}
	}
	w, err := NewWatcher(s, expr, cb, &WatcherOptions{
		Deep: opts.Deep,
		Sync: opts.Sync,
		User: true,
	})
	if err != nil {
		return nil, err
	}
	if opts.Immediate {
		func() {
			defer func() {
				if r := recover(); r != nil {
					HandleError(recoveredError(r), s, "callback for immediate watcher "+w.expression)
				}
			}()
			cb(w.value, nil)
		}()
	}
	return w.Teardown, nil
}

// WatchOptions configures Scope.Watch.
type WatchOptions struct {
	Deep      bool
	Sync      bool
	Immediate bool
}

// OnCleanup registers fn to run when the scope is disposed. If the scope is
// already destroyed, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.destroyed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

func (s *Scope) addWatcher(w *Watcher) {
	s.watchers = append(s.watchers, w)
}

func (s *Scope) removeWatcher(w *Watcher) {
	for i, x := range s.watchers {
		if x == w {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}

// Dispose destroys the scope: children go down first in reverse creation
// order, then the render watcher and every other watcher is torn down, then
// cleanups run in reverse registration order. Watcher teardown skips the
// per-watcher list removal while the scope is being destroyed.
func (s *Scope) Dispose() {
	if s.beingDestroyed || s.destroyed {
		return
	}
	s.beingDestroyed = true

	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	if s.renderWatcher != nil {
		s.renderWatcher.Teardown()
		s.renderWatcher = nil
	}
	watchers := s.watchers
	s.watchers = nil
	for _, w := range watchers {
		w.Teardown()
	}

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if s.parent != nil {
		for i, c := range s.parent.children {
			if c == s {
				s.parent.children = append(s.parent.children[:i], s.parent.children[i+1:]...)
				break
			}
		}
	}

	s.destroyed = true
}
