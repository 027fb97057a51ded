package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for deps, watchers, and scopes.
// IDs are monotonically increasing and never reused, so creation order can be
// recovered by comparing IDs.
var globalIDCounter uint64

// nextID returns the next unique ID for a reactive primitive.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
