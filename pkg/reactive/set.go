package reactive

import (
	"fmt"

	lerrors "github.com/lumos-ui/lumos/internal/errors"
)

// Set assigns value to target[key] reactively. It exists to cover the two
// instrumentation gaps: Sequence index assignment (delivered as a splice so
// interception fires naturally) and addition of a new Mapping key (a fresh
// reactive property is installed and the container Observer's Dep is
// notified, informing watchers that depend on the container's shape).
//
// Adding a key to a container bound as root state is refused with a
// developer warning. Targets that are not observable containers are left
// untouched, with a warning.
func Set(target, key, value any) any {
	switch t := target.(type) {
	case *Sequence:
		idx, ok := key.(int)
		if !ok || idx < 0 {
			warn(fmt.Sprintf("invalid sequence index %v in Set", key), nil)
			return value
		}
		for t.Len() <= idx {
			t.items = append(t.items, nil)
		}
		t.Splice(idx, 1, value)
		return value

	case *Mapping:
		k, ok := key.(string)
		if !ok {
			warn(fmt.Sprintf("invalid mapping key %v in Set", key), nil)
			return value
		}
		if p := t.props[k]; p != nil {
			p.setValue(value)
			return value
		}
		ob := t.ob
		if ob != nil && ob.rootCount > 0 {
			warn(lerrors.New(lerrors.CodeRootStateMutation).Error(), nil)
			return value
		}
		if ob == nil {
			t.prop(k).value = value
			return value
		}
		t.prop(k).value = value
		defineReactive(t, k, false)
		ob.dep.Notify()
		return value
	}

	warn(fmt.Sprintf("cannot set reactive property on non-container value %T", target), nil)
	return value
}

// Del removes target[key] reactively: a splice for Sequence indices, a key
// removal plus container notification for Mappings. Deleting from root
// state is refused with a warning; deleting a missing key is a no-op.
func Del(target, key any) {
	switch t := target.(type) {
	case *Sequence:
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= t.Len() {
			return
		}
		t.Splice(idx, 1)
		return

	case *Mapping:
		k, ok := key.(string)
		if !ok {
			return
		}
		ob := t.ob
		if ob != nil && ob.rootCount > 0 {
			warn(lerrors.New(lerrors.CodeRootStateMutation).Error(), nil)
			return
		}
		if !t.Has(k) {
			return
		}
		t.remove(k)
		if ob != nil {
			ob.dep.Notify()
		}
		return
	}

	warn(fmt.Sprintf("cannot delete reactive property on non-container value %T", target), nil)
}
