package cache

import "time"

// EntryContext holds the bookkeeping metadata for a stored entry.
type EntryContext struct {
	// CreatedAt is when the entry was first written.
	CreatedAt time.Time

	// UpdatedAt is when the entry was last overwritten.
	// Equal to CreatedAt until the first overwrite.
	UpdatedAt time.Time
}

// Age returns how long ago the entry was last written, relative to now.
func (c EntryContext) Age(now time.Time) time.Duration {
	return now.Sub(c.UpdatedAt)
}

type entry[V any] struct {
	value   V
	context EntryContext
}

// Store is an associative mapping from keys to values.
//
// Contract:
//   - Lookup has no side effects and is O(1) amortized.
//   - Insert is unconditional; any write gating happens in the engine above.
//   - At most one entry exists per key; overwrites are last-write-wins.
//   - Not safe for concurrent use. The store is exclusively owned by one
//     engine; callers needing shared access must serialize externally.
type Store[K comparable, V any] struct {
	entries map[K]entry[V]
}

// NewStore creates an empty store.
func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
	}
}

// Lookup returns the value stored under key. Returns (zero, false) on miss.
func (s *Store[K, V]) Lookup(key K) (V, bool) {
	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Insert stores value under key, replacing any existing entry.
// CreatedAt is preserved across overwrites; UpdatedAt is always bumped.
func (s *Store[K, V]) Insert(key K, value V) {
	now := time.Now()
	ctx := EntryContext{CreatedAt: now, UpdatedAt: now}
	if prev, ok := s.entries[key]; ok {
		ctx.CreatedAt = prev.context.CreatedAt
	}
	s.entries[key] = entry[V]{value: value, context: ctx}
}

// Context returns the metadata recorded for key. Returns (zero, false) on miss.
func (s *Store[K, V]) Context(key K) (EntryContext, bool) {
	e, ok := s.entries[key]
	if !ok {
		return EntryContext{}, false
	}
	return e.context, true
}

// Contains reports whether key has an entry.
func (s *Store[K, V]) Contains(key K) bool {
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	return len(s.entries)
}
