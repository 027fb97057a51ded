package reactive

import (
	"math"
	"reflect"
)

// identical reports strict identity between two values: same dynamic type
// and == equality. Containers compare by pointer. Uncomparable values are
// never identical.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// sameValue is the property setter's change check: strict identity, with the
// single exception that two NaN values count as equal so a NaN-to-NaN write
// does not notify. The exception applies here and nowhere else.
func sameValue(a, b any) bool {
	if bothNaN(a, b) {
		return true
	}
	return identical(a, b)
}

func bothNaN(a, b any) bool {
	fa, ok := asFloat(a)
	if !ok || !math.IsNaN(fa) {
		return false
	}
	fb, ok := asFloat(b)
	return ok && math.IsNaN(fb)
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

// isContainer reports whether v is one of the observable container variants.
func isContainer(v any) bool {
	switch v.(type) {
	case *Mapping, *Sequence:
		return true
	}
	return false
}
