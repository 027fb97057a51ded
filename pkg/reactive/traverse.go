package reactive

// Traverse forces a depth-first read of every reachable property of value.
// Reading through the instrumented getters registers the currently
// evaluating Watcher with each Dep along the way, which is how deep
// watchers come to depend on nested structure without enumerating it.
//
// Traversal stops at non-containers, frozen containers, and opaque values.
// Observed containers already visited in this call are skipped, so shared
// references and cycles terminate. The seen set is per call; distinct calls
// never see stale state.
func Traverse(value any) {
	seen := make(map[uint64]struct{})
	traverse(value, seen)
}

func traverse(value any, seen map[uint64]struct{}) {
	if IsOpaque(value) {
		return
	}
	switch v := value.(type) {
	case *Mapping:
		if v == nil || v.frozen {
			return
		}
		if v.ob != nil {
			id := v.ob.dep.id
			if _, ok := seen[id]; ok {
				return
			}
			seen[id] = struct{}{}
		}
		for _, key := range v.Keys() {
			traverse(v.Get(key), seen)
		}
	case *Sequence:
		if v == nil || v.frozen {
			return
		}
		if v.ob != nil {
			id := v.ob.dep.id
			if _, ok := seen[id]; ok {
				return
			}
			seen[id] = struct{}{}
		}
		for i := 0; i < len(v.items); i++ {
			traverse(v.items[i], seen)
		}
	}
}
