package cache

// Stock policies for common write decisions.

// StoreAlways accepts every write. Attaching it is equivalent to attaching
// no policies at all; it exists to make the intent explicit at call sites.
func StoreAlways[K comparable, V any]() Policy[K, V] {
	return func(K, V, bool, V) bool {
		return true
	}
}

// StoreNever rejects every write. The produced value is still returned to
// the caller, but nothing is retained for future hits.
func StoreNever[K comparable, V any]() Policy[K, V] {
	return func(K, V, bool, V) bool {
		return false
	}
}

// StoreIf accepts the write when pred approves the key and candidate value.
func StoreIf[K comparable, V any](pred func(key K, next V) bool) Policy[K, V] {
	return func(key K, _ V, _ bool, next V) bool {
		return pred(key, next)
	}
}
