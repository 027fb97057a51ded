package reactive

import (
	"strings"

	lerrors "github.com/lumos-ui/lumos/internal/errors"
)

// ParsePath compiles a dotted path expression like "user.address.city" into
// a getter over a Mapping. Each segment read goes through the reactive
// getter, so evaluating the path registers a dependency on every property
// along it. A path that dead-ends (missing key, non-Mapping intermediate)
// yields nil.
func ParsePath(path string) (func(root *Mapping) any, error) {
	if path == "" || !validPath(path) {
		return nil, lerrors.New(lerrors.CodeInvalidExpression).
			WithDetail("invalid watch path " + path)
	}
	segments := strings.Split(path, ".")
	return func(root *Mapping) any {
		var cur any = root
		for _, seg := range segments {
			m, ok := cur.(*Mapping)
			if !ok || m == nil {
				return nil
			}
			cur = m.Get(seg)
		}
		return cur
	}, nil
}

// validPath accepts word characters, '$', and '.' separators with non-empty
// segments.
func validPath(path string) bool {
	prevDot := true
	for _, r := range path {
		switch {
		case r == '.':
			if prevDot {
				return false
			}
			prevDot = true
		case r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9'):
			prevDot = false
		default:
			return false
		}
	}
	return !prevDot
}
