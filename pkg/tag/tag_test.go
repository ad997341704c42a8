package tag

import "testing"

func TestDirtyableValidate(t *testing.T) {
	tg := New()
	snap := ValueOf(tg)

	if !Validate(tg, snap) {
		t.Fatal("fresh snapshot should validate")
	}

	Dirty(tg)

	if Validate(tg, snap) {
		t.Error("snapshot should be invalid after Dirty")
	}
	if !Validate(tg, ValueOf(tg)) {
		t.Error("new snapshot should validate")
	}
}

func TestDirtyAdvancesClock(t *testing.T) {
	before := Current()
	Dirty(New())
	if Current() != before+1 {
		t.Errorf("Current() = %d, want %d", Current(), before+1)
	}
}

func TestConstantAlwaysValid(t *testing.T) {
	if !Validate(Constant, ConstantRevision) {
		t.Error("Constant should validate at ConstantRevision")
	}
	Dirty(New())
	if !Validate(Constant, ConstantRevision) {
		t.Error("Constant should stay valid after unrelated dirties")
	}
}

func TestVolatileAndNilNeverValid(t *testing.T) {
	if Validate(Volatile, Current()) {
		t.Error("Volatile should never validate")
	}
	if Validate(nil, Current()) {
		t.Error("nil tag should never validate")
	}
}

func TestCombine(t *testing.T) {
	a, b := New(), New()

	tests := []struct {
		name string
		tags []Tag
		want func(Tag) bool
	}{
		{"empty is constant", nil, func(t Tag) bool { return t == Constant }},
		{"only constants", []Tag{Constant, Constant}, func(t Tag) bool { return t == Constant }},
		{"single tag unwrapped", []Tag{Constant, a}, func(t Tag) bool { return t == Tag(a) }},
		{"multiple tags combined", []Tag{a, b}, func(t Tag) bool {
			_, ok := t.(*combinator)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.tags); !tt.want(got) {
				t.Errorf("Combine() = %#v", got)
			}
		})
	}
}

func TestCombineInvalidatesOnAnyMember(t *testing.T) {
	a, b := New(), New()
	c := Combine([]Tag{a, b})

	snap := ValueOf(c)
	Dirty(b)
	if Validate(c, snap) {
		t.Error("combined tag should invalidate when a member is dirtied")
	}

	snap = ValueOf(c)
	Dirty(a)
	if Validate(c, snap) {
		t.Error("combined tag should invalidate when the other member is dirtied")
	}
}
