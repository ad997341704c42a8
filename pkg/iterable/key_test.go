package iterable

import (
	"errors"
	"testing"

	rerrors "github.com/vango-dev/reference/internal/errors"
)

func keys(t *testing.T, list any, keyPath string) []any {
	t.Helper()
	it, err := New(list, keyPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out []any
	for _, item := range Collect(it) {
		out = append(out, item.Key)
	}
	return out
}

func assertUnique(t *testing.T, ks []any) {
	t.Helper()
	seen := map[any]bool{}
	for _, k := range ks {
		if seen[k] {
			t.Errorf("duplicate resolved key %v in %v", k, ks)
		}
		seen[k] = true
	}
}

func TestIdentityDuplicates(t *testing.T) {
	first := keys(t, []any{"a", "a", "b"}, KeyIdentity)
	if len(first) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(first))
	}
	assertUnique(t, first)

	if first[0] != "a" || first[2] != "b" {
		t.Errorf("expected raw keys for first occurrences, got %v", first)
	}
	occ, ok := first[1].(*Occurrence)
	if !ok || occ.Key != "a" || occ.N != 1 {
		t.Errorf("expected occurrence marker for second a, got %v", first[1])
	}

	second := keys(t, []any{"a", "a", "b"}, KeyIdentity)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("key %d not stable across passes: %v vs %v", i, first[i], second[i])
		}
	}

	reordered := keys(t, []any{"a", "b", "a"}, KeyIdentity)
	assertUnique(t, reordered)
	if reordered[0] != "a" || reordered[1] != "b" || reordered[2] != first[1] {
		t.Errorf("expected duplicates mapped by occurrence count, got %v", reordered)
	}
}

func TestIdentityObjects(t *testing.T) {
	type thing struct{ name string }
	p := &thing{"x"}
	q := &thing{"x"}

	ks := keys(t, []any{p, q, p}, KeyIdentity)
	assertUnique(t, ks)
	if ks[0] != p || ks[1] != q {
		t.Errorf("expected pointer identity keys, got %v", ks)
	}
	if occ, ok := ks[2].(*Occurrence); !ok || occ.Key != p {
		t.Errorf("expected occurrence of p, got %v", ks[2])
	}
}

func TestIdentityNil(t *testing.T) {
	ks := keys(t, []any{nil, nil}, KeyIdentity)
	assertUnique(t, ks)
	if ks[0] != nullIdentity {
		t.Errorf("expected null sentinel, got %v", ks[0])
	}
}

func TestIdentityUncomparableValues(t *testing.T) {
	m := map[string]any{"id": 1}
	s := []int{1, 2}

	// Resolved keys must be usable as map keys.
	ks := keys(t, []any{m, s, m}, KeyIdentity)
	assertUnique(t, ks)
}

func TestIndexShrink(t *testing.T) {
	before := keys(t, []any{"a", "b", "c", "d", "e"}, KeyIndex)
	after := keys(t, []any{"a", "b", "d", "e"}, KeyIndex)

	want := []any{"0", "1", "2", "3", "4"}
	for i, k := range before {
		if k != want[i] {
			t.Errorf("before[%d] = %v, want %v", i, k, want[i])
		}
	}

	if len(after) != 4 {
		t.Fatalf("expected 4 keys after shrinking, got %d", len(after))
	}
	if after[0] != before[0] || after[1] != before[1] {
		t.Error("positions before the removal should keep their keys")
	}
	// d moved from key "3" to key "2".
	if after[2] != "2" || after[3] != "3" {
		t.Errorf("expected shifted items to take new keys, got %v", after)
	}
	for _, k := range after {
		if k == "4" {
			t.Error("no key for position 4 should remain")
		}
	}
}

func TestMemoKey(t *testing.T) {
	ks := keys(t, map[string]int{"b": 2, "a": 1}, KeyMemo)
	if len(ks) != 2 || ks[0] != "a" || ks[1] != "b" {
		t.Errorf("expected sorted map keys, got %v", ks)
	}

	ks = keys(t, []string{"x", "y"}, KeyMemo)
	if ks[0] != 0 || ks[1] != 1 {
		t.Errorf("expected positions, got %v", ks)
	}
}

func TestPathKey(t *testing.T) {
	list := []any{
		map[string]any{"id": 1, "name": "a"},
		map[string]any{"id": 2, "name": "b"},
		map[string]any{"id": 1, "name": "c"},
	}

	ks := keys(t, list, "id")
	assertUnique(t, ks)
	if ks[0] != 1 || ks[1] != 2 {
		t.Errorf("expected ids as keys, got %v", ks)
	}
	if occ, ok := ks[2].(*Occurrence); !ok || occ.Key != 1 {
		t.Errorf("expected occurrence of id 1, got %v", ks[2])
	}

	type user struct {
		Profile struct{ Email string }
	}
	var u1, u2 user
	u1.Profile.Email = "a@example.com"
	u2.Profile.Email = "b@example.com"
	ks = keys(t, []user{u1, u2}, "Profile.Email")
	if ks[0] != "a@example.com" || ks[1] != "b@example.com" {
		t.Errorf("expected nested path keys, got %v", ks)
	}
}

func TestInvalidKeyPath(t *testing.T) {
	tests := []string{"@bogus", "@", "@Index"}
	for _, keyPath := range tests {
		t.Run(keyPath, func(t *testing.T) {
			_, err := KeyFor(keyPath)
			if !errors.Is(err, ErrInvalidKeyPath) {
				t.Fatalf("expected ErrInvalidKeyPath, got %v", err)
			}
			var diag *rerrors.Error
			if !errors.As(err, &diag) || diag.Code != "R004" {
				t.Errorf("expected R004 diagnostic, got %v", err)
			}
			if _, err := New([]any{1}, keyPath); !errors.Is(err, ErrInvalidKeyPath) {
				t.Errorf("New: expected ErrInvalidKeyPath, got %v", err)
			}
		})
	}
}

func TestOccurrenceString(t *testing.T) {
	o := &Occurrence{Key: "a", N: 2}
	if o.String() != "a#2" {
		t.Errorf("String() = %q", o.String())
	}
}
