package cache

import (
	"fmt"
	"strings"
)

// Producer computes the value for a key. It is invoked at most once per
// Execute call, and only on a cache miss.
type Producer[V any] func() V

// CacheUp is a memoization engine over a Store.
//
// Contract:
//   - Execute invokes the producer exactly once per miss and never on a hit.
//   - Not safe for concurrent use; the engine and its store have a single
//     logical owner. External synchronization is the caller's responsibility.
//   - Producers are treated as infallible; a panicking producer propagates
//     unmodified and nothing is stored.
type CacheUp[K comparable, V any] struct {
	store *Store[K, V]
}

// New creates an empty engine with its own store.
func New[K comparable, V any]() *CacheUp[K, V] {
	return &CacheUp[K, V]{
		store: NewStore[K, V](),
	}
}

// Execute returns the value cached under key, or invokes produce and stores
// the result. The second return is true on a cache hit, false on a miss.
// On a miss the freshly produced value is always stored.
func (c *CacheUp[K, V]) Execute(key K, produce Producer[V]) (V, bool) {
	return c.ExecuteWithOption(key, produce, nil)
}

// ExecuteWithOption is Execute with write gating. On a miss, the option's
// policies decide in order whether the produced value is stored; a single
// false vetoes the write. Policies are never consulted on a hit. The
// produced value is returned either way, so a vetoed key is recomputed on
// every subsequent call until some call's policies accept a write.
//
// A nil option behaves like an empty one: the write is always accepted.
func (c *CacheUp[K, V]) ExecuteWithOption(key K, produce Producer[V], opt *Option[K, V]) (V, bool) {
	if value, ok := c.store.Lookup(key); ok {
		return value, true
	}

	value := produce()
	if opt.accepts(key, value) {
		c.store.Insert(key, value)
	}
	return value, false
}

// Contains reports whether key currently has a stored entry.
func (c *CacheUp[K, V]) Contains(key K) bool {
	return c.store.Contains(key)
}

// Context returns the entry metadata recorded for key.
func (c *CacheUp[K, V]) Context(key K) (EntryContext, bool) {
	return c.store.Context(key)
}

// Len returns the number of stored entries.
func (c *CacheUp[K, V]) Len() int {
	return c.store.Len()
}

// String renders the stored entries for debugging. Iteration order is
// unspecified.
func (c *CacheUp[K, V]) String() string {
	var b strings.Builder
	b.WriteString("CacheUp{ ")
	for k, e := range c.store.entries {
		fmt.Fprintf(&b, "%v => (%v), ", k, e.value)
	}
	b.WriteString("}")
	return b.String()
}
