package reactive

import "sort"

// Mapping is the keyed observable container. Once observed, each key becomes
// a reactive property: reads register the evaluating Watcher with the
// property's Dep, writes notify it.
//
// Keys added after observation (via plain Set on a missing key) are stored
// as untracked entries; use the package-level Set to add a key reactively.
type Mapping struct {
	ob     *Observer
	keys   []string
	props  map[string]*property
	frozen bool
	raw    bool
}

// property is the per-key record behind a Mapping entry. dep is nil until
// the key is instrumented by an Observer.
type property struct {
	dep     *Dep
	value   any
	childOb *Observer

	// Pre-existing accessor pair, captured before instrumentation.
	get func() any
	set func(any)

	// sealed keys are skipped by instrumentation.
	sealed bool

	// shallow properties do not observe their container values.
	shallow bool
}

// NewMapping creates a Mapping from the given entries. Keys are kept in
// sorted order so walks and traversals are deterministic.
func NewMapping(entries map[string]any) *Mapping {
	m := &Mapping{props: make(map[string]*property, len(entries))}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.keys = append(m.keys, k)
		m.props[k] = &property{value: entries[k]}
	}
	return m
}

// DefineAccessor installs a getter/setter pair for key, replacing any plain
// value. Accessors must be defined before the Mapping is observed;
// instrumentation wraps them so reads still track and writes still notify.
// A nil set makes the property read-only after instrumentation.
func (m *Mapping) DefineAccessor(key string, get func() any, set func(any)) {
	p := m.prop(key)
	p.get = get
	p.set = set
	p.value = nil
}

// Seal marks key as non-configurable: instrumentation will skip it and its
// reads and writes stay plain.
func (m *Mapping) Seal(key string) {
	m.prop(key).sealed = true
}

// Freeze marks the Mapping ineligible for observation and stops Traverse at
// it. Existing instrumentation, if any, is unaffected.
func (m *Mapping) Freeze() *Mapping {
	m.frozen = true
	return m
}

// prop returns the record for key, creating an untracked one if absent.
func (m *Mapping) prop(key string) *property {
	p := m.props[key]
	if p == nil {
		p = &property{}
		m.props[key] = p
		m.keys = append(m.keys, key)
	}
	return p
}

// Has reports whether key exists as an own entry.
func (m *Mapping) Has(key string) bool {
	_, ok := m.props[key]
	return ok
}

// Keys returns the Mapping's keys in walk order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Get returns the value for key, registering the evaluating Watcher with the
// property's Dep (and the child Observer's Dep) when the key is
// instrumented. Missing keys return nil.
func (m *Mapping) Get(key string) any {
	p := m.props[key]
	if p == nil {
		return nil
	}
	return p.getValue()
}

// Set writes value to an existing key through its accessor; the reactive
// setter suppresses identical writes and notifies otherwise. Writing a
// missing key stores an untracked entry: nothing was watching it, so
// nothing is notified. Use the package-level Set to add keys reactively.
func (m *Mapping) Set(key string, value any) {
	p := m.props[key]
	if p == nil {
		m.prop(key).value = value
		return
	}
	p.setValue(value)
}

// remove deletes key without notification. Del wraps this with the
// notification contract.
func (m *Mapping) remove(key string) {
	if _, ok := m.props[key]; !ok {
		return
	}
	delete(m.props, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// getValue implements the reactive getter protocol for one property.
func (p *property) getValue() any {
	var value any
	if p.get != nil {
		value = p.get()
	} else {
		value = p.value
	}
	if p.dep != nil && Target() != nil {
		p.dep.Depend()
		if p.childOb != nil {
			p.childOb.dep.Depend()
			if s, ok := value.(*Sequence); ok {
				dependSequence(s)
			}
		}
	}
	return value
}

// setValue implements the reactive setter protocol for one property.
func (p *property) setValue(value any) {
	if p.dep == nil {
		// Untracked slot.
		if p.set != nil {
			p.set(value)
		} else {
			p.value = value
		}
		return
	}

	var old any
	if p.get != nil {
		old = p.get()
	} else {
		old = p.value
	}
	if sameValue(old, value) {
		return
	}
	// Accessor with no setter: read-only computed property.
	if p.get != nil && p.set == nil {
		return
	}
	if p.set != nil {
		p.set(value)
	} else {
		p.value = value
	}
	if p.shallow {
		p.childOb = nil
	} else {
		p.childOb = Observe(value)
	}
	p.dep.Notify()
}
