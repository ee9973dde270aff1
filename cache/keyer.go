package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a derived string key.
const MaxKeyLength = 512

// Sentinel errors for key derivation.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Keyer derives deterministic string keys from structured inputs, for use
// with string-keyed engines.
//
// Contract:
//   - Determinism: same inputs must produce the same key, regardless of map
//     iteration order.
type Keyer interface {
	// Key derives a cache key from a scope and an input value.
	Key(scope string, input any) (string, error)
}

// DefaultKeyer derives SHA-256 based keys from canonical JSON.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key derives a deterministic key of the form cacheup:<scope>:<hash>, where
// hash is the first 16 hex characters of SHA-256 over the canonical JSON
// rendering of input.
func (k *DefaultKeyer) Key(scope string, input any) (string, error) {
	var buf bytes.Buffer
	if err := canonicalize(&buf, input); err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize input: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return fmt.Sprintf("cacheup:%s:%s", scope, hex.EncodeToString(sum[:8])), nil
}

// ValidateKey checks that a derived string key is usable.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// canonicalize writes a deterministic JSON rendering of v. Map keys are
// sorted so that iteration order never leaks into the derived key.
func canonicalize(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := canonicalize(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := canonicalize(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
