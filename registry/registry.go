// Package registry implements the process-wide, thread-safe handle table
// described in spec.md §4.1: one concurrent map per handle kind, the sole
// owner of whatever wrapper record it holds. Everything else in the engine
// only ever borrows a record by handle; insert/remove happen solely from a
// wrapper's constructor/destructor.
package registry

import (
	"sync"
	"sync/atomic"
)

// Handle is an opaque identifier handed to callers. Real OpenXR handles are
// pointer-sized; here they are minted from a single process-wide counter so
// that handles never collide across registries of different kinds, even
// though each kind keeps its own map.
type Handle uint64

var handleCounter uint64

// NewHandle mints a fresh, never-reused handle value. Handle 0 is never
// issued, so it is safe to use as a sentinel for "no handle".
func NewHandle() Handle {
	return Handle(atomic.AddUint64(&handleCounter, 1))
}

// Registry is a concurrent handle -> record map for one handle kind. Zero
// value is not usable; construct with New.
type Registry[R any] struct {
	mu      sync.RWMutex
	records map[Handle]R
}

// New creates an empty registry.
func New[R any]() *Registry[R] {
	return &Registry[R]{records: make(map[Handle]R)}
}

// Insert stores rec under handle, taking ownership of it. Called only from
// the record's constructor.
func (r *Registry[R]) Insert(h Handle, rec R) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[h] = rec
}

// Lookup returns the record for h, or the zero value and false if h is not
// (or no longer) live.
func (r *Registry[R]) Lookup(h Handle) (R, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[h]
	return rec, ok
}

// Remove deletes and returns the record for h, if live. Called only from
// the record's destructor.
func (r *Registry[R]) Remove(h Handle) (R, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[h]
	if ok {
		delete(r.records, h)
	}
	return rec, ok
}

// Len reports the number of live records. Intended for diagnostics/tests,
// not for any correctness-sensitive path.
func (r *Registry[R]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Range calls fn for every record live when Range was called, in
// unspecified order. fn runs over a snapshot taken under the read lock and
// released before the first call, so fn may call Insert/Remove on the same
// registry; such changes are not reflected in the ongoing iteration.
func (r *Registry[R]) Range(fn func(h Handle, rec R) bool) {
	r.mu.RLock()
	snapshot := make(map[Handle]R, len(r.records))
	for h, rec := range r.records {
		snapshot[h] = rec
	}
	r.mu.RUnlock()

	for h, rec := range snapshot {
		if !fn(h, rec) {
			return
		}
	}
}
