package cache

import (
	"strings"
	"testing"
)

func TestKeyer_DeterministicForMaps(t *testing.T) {
	keyer := NewDefaultKeyer()

	// Same content, different insertion order
	map1 := map[string]any{"b": 2, "a": 1, "c": 3}
	map2 := map[string]any{"a": 1, "c": 3, "b": 2}
	map3 := map[string]any{"c": 3, "b": 2, "a": 1}

	key1, err := keyer.Key("lookup", map1)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := keyer.Key("lookup", map2)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key3, err := keyer.Key("lookup", map3)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if key1 != key2 {
		t.Errorf("Keys should be equal for same content:\n  key1=%s\n  key2=%s", key1, key2)
	}
	if key2 != key3 {
		t.Errorf("Keys should be equal for same content:\n  key2=%s\n  key3=%s", key2, key3)
	}
}

func TestKeyer_ArrayOrderPreserved(t *testing.T) {
	keyer := NewDefaultKeyer()

	// Different array order should produce different keys
	input1 := map[string]any{"items": []any{1, 2, 3}}
	input2 := map[string]any{"items": []any{3, 2, 1}}

	key1, err := keyer.Key("lookup", input1)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := keyer.Key("lookup", input2)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if key1 == key2 {
		t.Errorf("Keys should differ for different array order:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_DifferentScopesDifferentKeys(t *testing.T) {
	keyer := NewDefaultKeyer()
	input := map[string]any{"query": "test"}

	key1, err := keyer.Key("scope-a", input)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := keyer.Key("scope-b", input)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if key1 == key2 {
		t.Errorf("Keys should differ across scopes:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_KeyFormat(t *testing.T) {
	keyer := NewDefaultKeyer()

	key, err := keyer.Key("lookup", map[string]any{"q": "x"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		t.Fatalf("key %q should have 3 colon-separated parts", key)
	}
	if parts[0] != "cacheup" || parts[1] != "lookup" {
		t.Errorf("key %q should start with cacheup:lookup:", key)
	}
	if len(parts[2]) != 16 {
		t.Errorf("hash part %q should be 16 hex chars", parts[2])
	}
	if err := ValidateKey(key); err != nil {
		t.Errorf("derived key should validate, got: %v", err)
	}
}

func TestKeyer_NilAndNestedInputs(t *testing.T) {
	keyer := NewDefaultKeyer()

	tests := []struct {
		name  string
		input any
	}{
		{"nil input", nil},
		{"nested maps", map[string]any{"outer": map[string]any{"b": 2, "a": 1}}},
		{"mixed slice", []any{1, "two", map[string]any{"three": 3}}},
		{"scalar", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key1, err := keyer.Key("lookup", tt.input)
			if err != nil {
				t.Fatalf("Key() error = %v", err)
			}
			key2, err := keyer.Key("lookup", tt.input)
			if err != nil {
				t.Fatalf("Key() error = %v", err)
			}
			if key1 != key2 {
				t.Errorf("Key not deterministic:\n  key1=%s\n  key2=%s", key1, key2)
			}
		})
	}
}

func TestKeyer_UnmarshalableInput(t *testing.T) {
	keyer := NewDefaultKeyer()

	_, err := keyer.Key("lookup", func() {})
	if err == nil {
		t.Error("Key() on an unmarshalable input should error")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"valid key", "cacheup:lookup:abc123", nil},
		{"contains newline", "key\nwith\nnewlines", ErrInvalidKey},
		{"contains carriage return", "key\rwith\rreturns", ErrInvalidKey},
		{"too long", strings.Repeat("x", MaxKeyLength+1), ErrKeyTooLong},
		{"max length exactly", strings.Repeat("x", MaxKeyLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateKey(tt.key); err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
