package reactive

import (
	"math"
	"strings"
	"testing"
)

func TestObserveIdempotent(t *testing.T) {
	m := NewMapping(map[string]any{"a": 1})
	ob1 := Observe(m)
	ob2 := Observe(m)
	if ob1 == nil || ob1 != ob2 {
		t.Errorf("expected the same Observer both times, got %p and %p", ob1, ob2)
	}

	s := NewSequence([]any{1, 2})
	sb1 := Observe(s)
	sb2 := Observe(s)
	if sb1 == nil || sb1 != sb2 {
		t.Errorf("expected the same sequence Observer both times, got %p and %p", sb1, sb2)
	}
}

func TestObserveIneligibleValues(t *testing.T) {
	if Observe(42) != nil {
		t.Error("expected nil Observer for a scalar")
	}
	if Observe("str") != nil {
		t.Error("expected nil Observer for a string")
	}
	if Observe(nil) != nil {
		t.Error("expected nil Observer for nil")
	}
	if Observe(NewMapping(nil).Freeze()) != nil {
		t.Error("expected nil Observer for a frozen Mapping")
	}
	if Observe(NewSequence(nil).Freeze()) != nil {
		t.Error("expected nil Observer for a frozen Sequence")
	}

	raw := NewMapping(map[string]any{"a": 1})
	MarkRaw(raw)
	if Observe(raw) != nil {
		t.Error("expected nil Observer for a raw-marked Mapping")
	}
}

func TestToggleObserving(t *testing.T) {
	before := NewMapping(map[string]any{"v": 0})
	Observe(before)

	ToggleObserving(false)
	defer ToggleObserving(true)

	if Observe(NewMapping(map[string]any{"v": 0})) != nil {
		t.Error("expected no new Observer while observing is off")
	}

	// Existing instrumentation keeps working.
	runs := 0
	_, err := NewWatcher(nil, func() any { return before.Get("v") },
		func(newVal, oldVal any) { runs++ }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	before.Set("v", 1)
	if runs != 1 {
		t.Errorf("expected existing reactive property to notify, got %d runs", runs)
	}
}

func TestDefineReactiveNeverDoubleWraps(t *testing.T) {
	m := NewMapping(map[string]any{"a": 1})
	Observe(m)
	dep1 := m.props["a"].dep
	dep2 := defineReactive(m, "a", false)
	if dep1 == nil || dep1 != dep2 {
		t.Errorf("expected instrumentation to reuse the existing dep, got %p and %p", dep1, dep2)
	}
}

func TestSealedKeySkipped(t *testing.T) {
	m := NewMapping(map[string]any{"a": 1, "b": 2})
	m.Seal("a")
	Observe(m)

	if m.props["a"].dep != nil {
		t.Error("expected sealed key to stay uninstrumented")
	}
	if m.props["b"].dep == nil {
		t.Error("expected unsealed key to be instrumented")
	}

	runs := 0
	_, _ = NewWatcher(nil, func() any { return m.Get("a") },
		func(newVal, oldVal any) { runs++ }, nil)
	m.Set("a", 9)
	if runs != 0 {
		t.Errorf("expected no notification through a sealed key, got %d", runs)
	}
	if m.Get("a") != 9 {
		t.Errorf("expected plain write to land, got %v", m.Get("a"))
	}
}

func TestAccessorPair(t *testing.T) {
	backing := 10
	m := NewMapping(map[string]any{})
	m.DefineAccessor("x", func() any { return backing }, func(v any) { backing = v.(int) })
	Observe(m)

	runs := 0
	_, err := NewWatcher(nil, func() any { return m.Get("x") },
		func(newVal, oldVal any) { runs++ }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	m.Set("x", 11)
	if backing != 11 {
		t.Errorf("expected setter to write the backing value, got %d", backing)
	}
	if runs != 1 {
		t.Errorf("expected one notification, got %d", runs)
	}
}

func TestReadOnlyAccessorGuard(t *testing.T) {
	m := NewMapping(map[string]any{})
	m.DefineAccessor("computed", func() any { return 7 }, nil)
	Observe(m)

	runs := 0
	_, _ = NewWatcher(nil, func() any { return m.Get("computed") },
		func(newVal, oldVal any) { runs++ }, nil)

	m.Set("computed", 99)
	if got := m.Get("computed"); got != 7 {
		t.Errorf("expected read-only property to keep its value, got %v", got)
	}
	if runs != 0 {
		t.Errorf("expected no notification for a refused write, got %d", runs)
	}
}

func TestSetNaNDoesNotNotify(t *testing.T) {
	m := NewMapping(map[string]any{"x": math.NaN()})
	Observe(m)

	runs := 0
	_, _ = NewWatcher(nil, func() any { return m.Get("x") },
		func(newVal, oldVal any) { runs++ }, nil)

	m.Set("x", math.NaN())
	if runs != 0 {
		t.Errorf("expected NaN-to-NaN write to be suppressed, got %d runs", runs)
	}

	m.Set("x", 1.5)
	if runs != 1 {
		t.Errorf("expected real change to notify, got %d runs", runs)
	}
}

func TestNotificationTriggersExactlyTouchedWatchers(t *testing.T) {
	x := NewMapping(map[string]any{"a": 1, "b": 2})
	Observe(x)
	y := NewMapping(map[string]any{"a": 1}) // never observed

	runs := 0
	_, _ = NewWatcher(nil, func() any { return x.Get("a") },
		func(newVal, oldVal any) { runs++ }, nil)

	x.Set("b", 20)
	if runs != 0 {
		t.Errorf("mutating an untouched key must not trigger, got %d runs", runs)
	}
	y.Set("a", 5)
	if runs != 0 {
		t.Errorf("mutating an unobserved container must not trigger, got %d runs", runs)
	}
	x.Set("a", 10)
	if runs != 1 {
		t.Errorf("mutating the touched key must trigger once, got %d runs", runs)
	}
}

func TestSetNewKeyNotifiesContainerShape(t *testing.T) {
	inner := NewMapping(map[string]any{"a": 1})
	state := NewMapping(map[string]any{"m": inner})
	Observe(state)

	runs := 0
	_, _ = NewWatcher(nil, func() any { return state.Get("m") },
		func(newVal, oldVal any) { runs++ }, nil)

	// A missing key written plainly is an untracked entry: nothing fires.
	inner.Set("plain", 1)
	if runs != 0 {
		t.Errorf("expected plain add to be silent, got %d runs", runs)
	}

	// Set installs a reactive property holding the assigned value and
	// notifies the container's Dep.
	Set(inner, "fresh", 2)
	if runs != 1 {
		t.Errorf("expected Set to notify the container observer, got %d runs", runs)
	}
	if got := inner.Get("fresh"); got != 2 {
		t.Errorf("expected the added key to store 2, got %v", got)
	}
	if inner.props["fresh"].dep == nil {
		t.Error("expected the added key to be instrumented")
	}

	// A container added this way is observed like any reactive value.
	child := NewMapping(map[string]any{"n": 1})
	Set(inner, "obj", child)
	if inner.Get("obj") != child {
		t.Errorf("expected the added key to store the container, got %v", inner.Get("obj"))
	}
	if child.ob == nil {
		t.Error("expected the added container value to be observed")
	}
	if inner.props["obj"].childOb != child.ob {
		t.Error("expected the added key to hold the container's child observer")
	}

	// The new key is live: a watcher reading it is notified on write.
	freshRuns := 0
	_, _ = NewWatcher(nil, func() any { return inner.Get("fresh") },
		func(newVal, oldVal any) { freshRuns++ }, nil)
	inner.Set("fresh", 3)
	if freshRuns != 1 {
		t.Errorf("expected the added key to notify on write, got %d runs", freshRuns)
	}
}

func TestDelNotifiesContainerShape(t *testing.T) {
	inner := NewMapping(map[string]any{"a": 1})
	state := NewMapping(map[string]any{"m": inner})
	Observe(state)

	runs := 0
	_, _ = NewWatcher(nil, func() any { return state.Get("m") },
		func(newVal, oldVal any) { runs++ }, nil)

	Del(inner, "missing")
	if runs != 0 {
		t.Errorf("expected deleting a missing key to be a no-op, got %d runs", runs)
	}

	Del(inner, "a")
	if runs != 1 {
		t.Errorf("expected delete to notify, got %d runs", runs)
	}
	if inner.Has("a") {
		t.Error("expected the key to be gone")
	}
}

func TestSetOnRootStateWarnsAndSkips(t *testing.T) {
	var warned []string
	oldWarn := WarnHandler
	WarnHandler = func(msg string, scope *Scope) { warned = append(warned, msg) }
	defer func() { WarnHandler = oldWarn }()

	root := NewMapping(map[string]any{"a": 1})
	scope := NewScope(nil)
	defer scope.Dispose()
	scope.BindState(root)

	Set(root, "b", 2)
	if root.Has("b") {
		t.Error("expected root-state add to be refused")
	}
	Del(root, "a")
	if !root.Has("a") {
		t.Error("expected root-state delete to be refused")
	}

	if len(warned) != 2 {
		t.Fatalf("expected two warnings, got %d: %v", len(warned), warned)
	}
	for _, msg := range warned {
		if !strings.Contains(msg, "R004") {
			t.Errorf("expected an R004 warning, got %q", msg)
		}
	}
}

func TestSetOnNonContainerWarns(t *testing.T) {
	var warned int
	oldWarn := WarnHandler
	WarnHandler = func(msg string, scope *Scope) { warned++ }
	defer func() { WarnHandler = oldWarn }()

	Set(42, "k", 1)
	Del("str", "k")
	if warned != 2 {
		t.Errorf("expected two warnings, got %d", warned)
	}
}
