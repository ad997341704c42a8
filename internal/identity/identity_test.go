package identity

import "testing"

type point struct{ X, Y int }

type bag struct{ Items []int }

func TestKeyObjects(t *testing.T) {
	p := &point{1, 2}
	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}

	tests := []struct {
		name   string
		a, b   any
		same   bool
		object bool
	}{
		{"same pointer", p, p, true, true},
		{"distinct pointers", p, &point{1, 2}, false, true},
		{"same map", m, m, true, true},
		{"distinct maps", m, map[string]int{"a": 1}, false, true},
		{"same slice", s, s, true, true},
		{"reslice differs", s, s[:2], false, true},
		{"equal strings", "x", "x", true, false},
		{"equal structs", point{1, 2}, point{1, 2}, true, false},
		{"different ints", 1, 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, obj := Key(tt.a)
			kb, _ := Key(tt.b)
			if obj != tt.object {
				t.Errorf("Key() object = %v, want %v", obj, tt.object)
			}
			if (ka == kb) != tt.same {
				t.Errorf("keys equal = %v, want %v", ka == kb, tt.same)
			}
		})
	}
}

func TestKeyNonComparableStruct(t *testing.T) {
	k1, obj := Key(bag{Items: []int{1}})
	k2, _ := Key(bag{Items: []int{1}})
	if obj {
		t.Error("struct value should not be an object identity")
	}
	// Must be usable as a map key without panicking.
	seen := map[any]int{k1: 1}
	if seen[k2] != 1 {
		t.Error("equal opaque values should produce equal keys")
	}
}

func TestSame(t *testing.T) {
	p := &point{}
	if !Same(p, p) {
		t.Error("Same(p, p) = false")
	}
	if Same(p, &point{}) {
		t.Error("distinct pointers reported same")
	}
	if !Same(nil, nil) {
		t.Error("Same(nil, nil) = false")
	}
	if Same(nil, 0) {
		t.Error("Same(nil, 0) = true")
	}
	if Same(int32(1), int64(1)) {
		t.Error("values of different types reported same")
	}
	if Same(bag{}, bag{}) {
		t.Error("non-comparable values should never be the same")
	}
}

func TestIsObject(t *testing.T) {
	if IsObject(nil) || IsObject(1) || IsObject("s") || IsObject(point{}) {
		t.Error("primitive reported as object")
	}
	if !IsObject(&point{}) || !IsObject([]int{}) || !IsObject(map[int]int{}) {
		t.Error("object reported as primitive")
	}
}
