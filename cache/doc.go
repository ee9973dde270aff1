// Package cache provides a generic memoization cache keyed by comparable values.
//
// It provides the CacheUp engine with an execute-or-fetch contract, a plain
// associative Store underneath it, and ordered write policies that decide
// whether a freshly computed value is retained. Key derivation helpers for
// string-keyed caches live in this package as well.
package cache
