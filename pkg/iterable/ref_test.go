package iterable

import (
	"errors"
	"testing"

	"github.com/vango-dev/reference/pkg/reactive"
)

func TestCreateIteratorRef(t *testing.T) {
	list := reactive.MutableCell([]string{"a", "b"})
	ref, err := CreateIteratorRef(list, KeyIndex)
	if err != nil {
		t.Fatalf("CreateIteratorRef: %v", err)
	}

	first := reactive.Unwrap(ref)
	if reactive.Unwrap(ref) != first {
		t.Error("expected the cached iterator while the list is unchanged")
	}
	if items := Collect(first); len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	reactive.Write(list, []string{"a", "b", "c"})

	second := reactive.Unwrap(ref)
	if second == first {
		t.Fatal("expected a new iterator after the list changed")
	}
	items := Collect(second)
	if len(items) != 3 || items[2].Key != "2" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestCreateIteratorRefDuplicatesStable(t *testing.T) {
	list := reactive.MutableCell([]any{"a", "a"})
	ref, _ := CreateIteratorRef(list, KeyIdentity)

	before := Collect(reactive.Unwrap(ref))
	reactive.Write(list, []any{"a", "a"})
	after := Collect(reactive.Unwrap(ref))

	if before[1].Key != after[1].Key {
		t.Error("expected the duplicate marker to survive recomputation")
	}
}

func TestCreateIteratorRefInvalidKeyPath(t *testing.T) {
	ref, err := CreateIteratorRef(reactive.ReadonlyCell([]int{1}), "@nope")
	if !errors.Is(err, ErrInvalidKeyPath) {
		t.Errorf("expected ErrInvalidKeyPath, got %v", err)
	}
	if ref != nil {
		t.Error("expected no reactive for an invalid key path")
	}
}

func TestCreateIteratorRefUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	list := reactive.FallibleFormula(func() ([]int, error) { return nil, boom })
	ref, _ := CreateIteratorRef(list, KeyIndex)

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, boom) {
			t.Errorf("expected upstream error to be rethrown, got %v", err)
		}
	}()
	reactive.Read(ref)
	t.Fatal("expected panic")
}

func TestCreateIteratorItemRef(t *testing.T) {
	item := CreateIteratorItemRef("a")
	computations := 0
	body := reactive.InfallibleFormula(func() any {
		computations++
		return reactive.Unwrap(item)
	})

	reactive.Read(body)

	// Same value: the loop body stays cached.
	if err := reactive.Write(item, any("a")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	reactive.Read(body)
	if computations != 1 {
		t.Errorf("expected no recomputation for an identical value, got %d", computations)
	}

	if err := reactive.Write(item, any("b")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := reactive.Unwrap(body); got != "b" {
		t.Errorf("expected b, got %v", got)
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestCreateIteratorItemRefObjects(t *testing.T) {
	a := map[string]int{"n": 1}
	item := CreateIteratorItemRef(a)
	computations := 0
	body := reactive.InfallibleFormula(func() any {
		computations++
		return reactive.Unwrap(item)
	})

	reactive.Read(body)
	reactive.Write(item, any(a))
	reactive.Read(body)
	if computations != 1 {
		t.Errorf("expected the same map to keep the body cached, got %d computations", computations)
	}

	reactive.Write(item, any(map[string]int{"n": 1}))
	reactive.Read(body)
	if computations != 2 {
		t.Errorf("expected an equal but distinct map to invalidate, got %d computations", computations)
	}
}
