package reactive

import "sort"

// Sequence is the indexed observable container. Elements have no per-index
// accessors: dependency on a Sequence is established where it is reached
// from an instrumented property, and mutation is visible only through the
// intercepted mutators below, which notify the Sequence's own Dep.
//
// Raw exposes the backing slice for interop; writes through it bypass
// interception entirely. The package-level Set and Del exist to cover that
// gap with an explicit splice.
type Sequence struct {
	ob     *Observer
	items  []any
	frozen bool
	raw    bool
}

// NewSequence creates a Sequence taking ownership of items.
func NewSequence(items []any) *Sequence {
	return &Sequence{items: items}
}

// Freeze marks the Sequence ineligible for observation and stops Traverse
// at it.
func (s *Sequence) Freeze() *Sequence {
	s.frozen = true
	return s
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.items)
}

// Get returns the element at i, or nil when out of range. Element reads are
// plain: they register nothing by themselves.
func (s *Sequence) Get(i int) any {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Raw returns the backing slice. Mutations through it are invisible to the
// engine.
func (s *Sequence) Raw() []any {
	return s.items
}

// Push appends items and notifies.
func (s *Sequence) Push(items ...any) {
	s.items = append(s.items, items...)
	s.inserted(items)
	s.notify()
}

// Pop removes and returns the last element, notifying. Returns nil on an
// empty Sequence.
func (s *Sequence) Pop() any {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	v := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	s.notify()
	return v
}

// Shift removes and returns the first element, notifying.
func (s *Sequence) Shift() any {
	if len(s.items) == 0 {
		return nil
	}
	v := s.items[0]
	s.items = append(s.items[:0], s.items[1:]...)
	s.notify()
	return v
}

// Unshift prepends items and notifies.
func (s *Sequence) Unshift(items ...any) {
	s.items = append(append([]any{}, items...), s.items...)
	s.inserted(items)
	s.notify()
}

// Splice removes deleteCount elements at start, inserts items in their
// place, and returns the removed elements. A negative start counts from the
// end. Out-of-range arguments are clamped.
func (s *Sequence) Splice(start, deleteCount int, items ...any) []any {
	n := len(s.items)
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, s.items[start:start+deleteCount])

	rest := make([]any, 0, n-start-deleteCount+len(items))
	rest = append(rest, items...)
	rest = append(rest, s.items[start+deleteCount:]...)
	s.items = append(s.items[:start], rest...)

	s.inserted(items)
	s.notify()
	return removed
}

// SortFunc sorts elements with the given less function and notifies.
func (s *Sequence) SortFunc(less func(a, b any) bool) {
	sort.SliceStable(s.items, func(i, j int) bool {
		return less(s.items[i], s.items[j])
	})
	s.notify()
}

// Reverse reverses the elements in place and notifies.
func (s *Sequence) Reverse() {
	for i, j := 0, len(s.items)-1; i < j; i, j = i+1, j-1 {
		s.items[i], s.items[j] = s.items[j], s.items[i]
	}
	s.notify()
}

// inserted observes newly inserted elements when the Sequence itself is
// observed.
func (s *Sequence) inserted(items []any) {
	if s.ob == nil {
		return
	}
	for _, item := range items {
		Observe(item)
	}
}

func (s *Sequence) notify() {
	if s.ob != nil {
		s.ob.dep.Notify()
	}
}

// dependSequence registers the evaluating Watcher with the Observer Dep of
// every element, recursing into nested Sequences. Element-level dependency
// must be forced on read of the containing value because elements expose no
// accessors of their own.
func dependSequence(s *Sequence) {
	for _, item := range s.items {
		switch e := item.(type) {
		case *Mapping:
			if e.ob != nil {
				e.ob.dep.Depend()
			}
		case *Sequence:
			if e.ob != nil {
				e.ob.dep.Depend()
			}
			dependSequence(e)
		}
	}
}
