package reactive

// shouldObserve is the global toggle for new-Observer creation. Existing
// instrumentation is never undone by flipping it off.
var shouldObserve = true

// ToggleObserving enables or disables creation of new Observers. Used to
// skip observation for values known to be immutable by convention.
func ToggleObserving(value bool) {
	shouldObserve = value
}

// opaqueValue marks types the engine treats as opaque: never observed,
// never traversed. The view tree's node type implements it.
type opaqueValue interface {
	ReactiveOpaque()
}

// IsOpaque reports whether v is opaque to the reactive engine.
func IsOpaque(v any) bool {
	_, ok := v.(opaqueValue)
	return ok
}

// MarkRaw marks a container as non-observable by convention. It has no
// effect on containers that are already observed.
func MarkRaw(v any) {
	switch c := v.(type) {
	case *Mapping:
		c.raw = true
	case *Sequence:
		c.raw = true
	}
}

// Observer is the per-container instrumentation record. It owns a Dep that
// stands for the container as a whole (used by Sequence mutation and by
// key addition/removal on a Mapping), and rootCount tracks how many scopes
// bind the container as their top-level state.
type Observer struct {
	dep       *Dep
	value     any
	rootCount int
}

// Dep returns the Observer's own Dep.
func (ob *Observer) Dep() *Dep {
	return ob.dep
}

// Observe returns the Observer for value, creating one if the value is an
// observable container and none exists. Returns nil for scalars, frozen or
// raw containers, opaque values, and while observation is toggled off.
// Repeated calls on the same container return the same Observer.
func Observe(value any) *Observer {
	switch v := value.(type) {
	case *Mapping:
		if v == nil {
			return nil
		}
		if v.ob != nil {
			return v.ob
		}
		if !shouldObserve || v.frozen || v.raw {
			return nil
		}
		ob := &Observer{dep: NewDep(), value: v}
		v.ob = ob
		ob.walk(v)
		return ob
	case *Sequence:
		if v == nil {
			return nil
		}
		if v.ob != nil {
			return v.ob
		}
		if !shouldObserve || v.frozen || v.raw {
			return nil
		}
		ob := &Observer{dep: NewDep(), value: v}
		v.ob = ob
		for _, item := range v.items {
			Observe(item)
		}
		return ob
	default:
		return nil
	}
}

// observeRoot observes value as a scope's top-level state and bumps the
// root count that arms the Set/Del misuse warnings.
func observeRoot(value any) *Observer {
	ob := Observe(value)
	if ob != nil {
		ob.rootCount++
	}
	return ob
}

// walk instruments every current key of a Mapping.
func (ob *Observer) walk(m *Mapping) {
	for _, key := range m.keys {
		defineReactive(m, key, false)
	}
}

// defineReactive instruments one Mapping key: it gets a private Dep, its
// initial value is recursively observed unless shallow, and from then on
// Get and Set on the key follow the reactive accessor protocol. Sealed keys
// are skipped and already-instrumented keys are never wrapped twice.
func defineReactive(m *Mapping, key string, shallow bool) *Dep {
	p := m.props[key]
	if p == nil || p.sealed {
		return nil
	}
	if p.dep != nil {
		return p.dep
	}
	p.dep = NewDep()
	p.shallow = shallow
	if !shallow {
		p.childOb = Observe(p.initialValue())
	}
	return p.dep
}

// initialValue reads the raw value for instrumentation, preferring a
// pre-existing getter.
func (p *property) initialValue() any {
	if p.get != nil {
		return p.get()
	}
	return p.value
}
