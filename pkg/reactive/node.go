package reactive

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/reference/pkg/tag"
)

// Kind identifies the variant of a reactive.
type Kind uint8

const (
	KindMutableCell Kind = iota + 1
	KindReadonlyCell
	KindDeeplyConstant
	KindFallibleFormula
	KindInfallibleFormula
	KindAccessor
	KindConstantError
)

var kindNames = map[Kind]string{
	KindMutableCell:       "MutableCell",
	KindReadonlyCell:      "ReadonlyCell",
	KindDeeplyConstant:    "DeeplyConstant",
	KindFallibleFormula:   "FallibleFormula",
	KindInfallibleFormula: "InfallibleFormula",
	KindAccessor:          "Accessor",
	KindConstantError:     "ConstantError",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// variant is the closed set of reactive payloads. The engine dispatches on it
// with a single type switch.
type variant[T any] interface {
	kind() Kind
}

// mutableCell owns the tag dirtied by writes.
type mutableCell struct {
	tag *tag.Dirtyable
}

type readonlyCell struct{}

type deeplyConstant struct{}

type constantError struct{}

type fallibleFormula[T any] struct {
	compute func() Result[T]
}

type infallibleFormula[T any] struct {
	compute func() T
}

// accessor always carries both halves. set returns nil, a *UserError, or a
// programming error from a nested Write.
type accessor[T any] struct {
	get func() Result[T]
	set func(T) error
}

func (*mutableCell) kind() Kind          { return KindMutableCell }
func (readonlyCell) kind() Kind          { return KindReadonlyCell }
func (deeplyConstant) kind() Kind        { return KindDeeplyConstant }
func (constantError) kind() Kind         { return KindConstantError }
func (*fallibleFormula[T]) kind() Kind   { return KindFallibleFormula }
func (*infallibleFormula[T]) kind() Kind { return KindInfallibleFormula }
func (*accessor[T]) kind() Kind          { return KindAccessor }

// globalIDCounter is the source of reactive IDs.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Reactive is a tagged, memoized value participating in dependency tracking.
// Reactives are created by the constructors in this package and mutated in
// place by Read and Write; they are never replaced.
type Reactive[T any] struct {
	id      uint64
	variant variant[T]

	// tag and lastRevision validate the cached result. A nil tag forces the
	// next Read to recompute.
	tag          tag.Tag
	lastRevision tag.Revision

	// value is meaningful only while hasValue is set.
	value    T
	hasValue bool

	// err is the failure stored by the last computation or write. It is never
	// set together with hasValue.
	err *UserError

	children childTable
}

func newReactive[T any](v variant[T]) *Reactive[T] {
	r := &Reactive[T]{id: nextID(), variant: v}
	recordCreation(r.id)
	return r
}

// ID returns the unique identifier of the reactive.
func (r *Reactive[T]) ID() uint64 {
	return r.id
}

// Kind returns the variant of the reactive.
func (r *Reactive[T]) Kind() Kind {
	return r.variant.kind()
}

// String implements fmt.Stringer.
func (r *Reactive[T]) String() string {
	if desc := description(r.id); desc != "" {
		return fmt.Sprintf("%s#%d(%s)", r.Kind(), r.id, desc)
	}
	return fmt.Sprintf("%s#%d", r.Kind(), r.id)
}

func (r *Reactive[T]) info() NodeInfo {
	return NodeInfo{ID: r.id, Kind: r.Kind(), Description: description(r.id)}
}

// result returns the cached outcome.
func (r *Reactive[T]) result() Result[T] {
	if r.err != nil {
		return Result[T]{err: r.err}
	}
	return Result[T]{value: r.value}
}

func (r *Reactive[T]) storeValue(value T, t tag.Tag) {
	r.value = value
	r.hasValue = true
	r.err = nil
	r.tag = t
	r.lastRevision = tag.ValueOf(t)
}

func (r *Reactive[T]) storeError(err *UserError) {
	var zero T
	r.value = zero
	r.hasValue = false
	r.err = err
	r.tag = nil
}

// childTable caches property children by key. It stays unallocated until the
// first child is stored.
type childTable struct {
	entries map[string]*Reactive[any]

	// erased is the *Reactive[any] view of the owner returned by an empty
	// path.
	erased *Reactive[any]
}

func (c *childTable) lookup(key string) (*Reactive[any], bool) {
	if c.entries == nil {
		return nil, false
	}
	child, ok := c.entries[key]
	return child, ok
}

func (c *childTable) store(key string, child *Reactive[any]) {
	if c.entries == nil {
		c.entries = make(map[string]*Reactive[any])
	}
	c.entries[key] = child
}

func (c *childTable) len() int {
	return len(c.entries)
}
