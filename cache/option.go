package cache

// Policy decides whether a freshly produced value should be stored.
//
// It receives the key, the previous value stored under that key along with a
// flag reporting whether one existed (on the miss path there never is one,
// since the key was just looked up and not found), and the candidate value.
// Policies must be pure: no side effects, and no mutation of the cache.
type Policy[K comparable, V any] func(key K, prev V, found bool, next V) bool

// Option is an ordered set of policies attached to a single execute call.
// The aggregate decision is the logical AND of all policies, evaluated in
// insertion order with short-circuiting; an empty set accepts the write.
type Option[K comparable, V any] struct {
	policies []Policy[K, V]
}

// NewOption creates an empty option.
func NewOption[K comparable, V any]() *Option[K, V] {
	return &Option[K, V]{}
}

// AddPolicy appends a policy and returns the option for chaining.
func (o *Option[K, V]) AddPolicy(p Policy[K, V]) *Option[K, V] {
	o.policies = append(o.policies, p)
	return o
}

// Len returns the number of attached policies.
func (o *Option[K, V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.policies)
}

// accepts folds the policies over the candidate write. A nil option is
// treated as empty.
func (o *Option[K, V]) accepts(key K, next V) bool {
	if o == nil {
		return true
	}
	var prev V
	for _, p := range o.policies {
		if !p(key, prev, false, next) {
			return false
		}
	}
	return true
}
