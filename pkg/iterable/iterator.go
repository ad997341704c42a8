package iterable

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/vango-dev/reference/pkg/property"
)

// Item is one keyed element of a list.
type Item struct {
	Key   any
	Value any
	Memo  any
}

// Iterator yields the keyed items of a list. Iterators are not restartable.
type Iterator interface {
	IsEmpty() bool
	Next() (Item, bool)
}

// Entry is one unkeyed element produced by a Delegate.
type Entry struct {
	Value any
	Memo  any
}

// Delegate is implemented by list-like values that iterate themselves.
type Delegate interface {
	IsEmpty() bool
	Next() (Entry, bool)
}

// New returns an iterator over list keyed by keyPath.
func New(list any, keyPath string) (Iterator, error) {
	keyFor, err := KeyFor(keyPath)
	if err != nil {
		return nil, err
	}
	return newIterator(list, uniqueKeyFor(keyFor)), nil
}

// Collect drains it into a slice.
func Collect(it Iterator) []Item {
	var items []Item
	for {
		item, ok := it.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

func newIterator(list any, keyFor KeyFunc) Iterator {
	switch l := list.(type) {
	case nil:
		return emptyIterator{}
	case Delegate:
		return &delegateIterator{delegate: l, keyFor: keyFor}
	case []any:
		return newSliceIterator(len(l), func(i int) any { return l[i] }, keyFor)
	case cty.Value:
		if entries, ok := ctyEntries(l); ok {
			return &delegateIterator{delegate: &entryList{entries: entries}, keyFor: keyFor}
		}
		return emptyIterator{}
	case iter.Seq[any]:
		return &delegateIterator{delegate: seqEntries(l), keyFor: keyFor}
	case func(func(any) bool):
		return &delegateIterator{delegate: seqEntries(l), keyFor: keyFor}
	case iter.Seq2[any, any]:
		return &delegateIterator{delegate: seq2Entries(l), keyFor: keyFor}
	case func(func(any, any) bool):
		return &delegateIterator{delegate: seq2Entries(l), keyFor: keyFor}
	}

	rv := reflect.ValueOf(list)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return newSliceIterator(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, keyFor)
	case reflect.Map:
		return &delegateIterator{delegate: mapEntries(rv), keyFor: keyFor}
	}
	return emptyIterator{}
}

type emptyIterator struct{}

func (emptyIterator) IsEmpty() bool      { return true }
func (emptyIterator) Next() (Item, bool) { return Item{}, false }

// sliceIterator is the fast path over ordered sequences. The memo of each item
// is its position.
type sliceIterator struct {
	at     func(int) any
	length int
	pos    int
	first  bool
	keyFor KeyFunc
}

func newSliceIterator(length int, at func(int) any, keyFor KeyFunc) *sliceIterator {
	return &sliceIterator{at: at, length: length, first: length > 0, keyFor: keyFor}
}

func (it *sliceIterator) IsEmpty() bool {
	return it.length == 0
}

func (it *sliceIterator) Next() (Item, bool) {
	if it.first {
		it.first = false
	} else if it.pos >= it.length-1 {
		return Item{}, false
	} else {
		it.pos++
	}

	value := it.at(it.pos)
	return Item{Key: it.keyFor(value, it.pos), Value: value, Memo: it.pos}, true
}

// delegateIterator annotates the entries of a Delegate with their keys.
type delegateIterator struct {
	delegate Delegate
	keyFor   KeyFunc
}

func (it *delegateIterator) IsEmpty() bool {
	return it.delegate.IsEmpty()
}

func (it *delegateIterator) Next() (Item, bool) {
	e, ok := it.delegate.Next()
	if !ok {
		return Item{}, false
	}
	return Item{Key: it.keyFor(e.Value, e.Memo), Value: e.Value, Memo: e.Memo}, true
}

// entryList is a Delegate over entries collected up front.
type entryList struct {
	entries []Entry
	pos     int
}

func (l *entryList) IsEmpty() bool {
	return len(l.entries) == 0
}

func (l *entryList) Next() (Entry, bool) {
	if l.pos >= len(l.entries) {
		return Entry{}, false
	}
	e := l.entries[l.pos]
	l.pos++
	return e, true
}

// mapEntries collects a map in key order. The memo of each entry is its key.
func mapEntries(rv reflect.Value) *entryList {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Value: rv.MapIndex(k).Interface(), Memo: k.Interface()})
	}
	return &entryList{entries: entries}
}

func compareKeys(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanFloat() && b.CanFloat():
		return cmp.Compare(a.Float(), b.Float())
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return cmp.Compare(a.String(), b.String())
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

// seqEntries collects a sequence. The memo of each entry is its position.
func seqEntries(seq iter.Seq[any]) *entryList {
	l := &entryList{}
	i := 0
	for v := range seq {
		l.entries = append(l.entries, Entry{Value: v, Memo: i})
		i++
	}
	return l
}

// seq2Entries collects a key/value sequence. The memo of each entry is its
// key.
func seq2Entries(seq iter.Seq2[any, any]) *entryList {
	l := &entryList{}
	for k, v := range seq {
		l.entries = append(l.entries, Entry{Value: v, Memo: k})
	}
	return l
}

// ctyEntries collects a cty collection. Lists, tuples and sets use positions
// as memos; maps and objects use their keys. Primitive elements are converted
// to Go values.
func ctyEntries(v cty.Value) ([]Entry, bool) {
	if !v.IsKnown() || v.IsNull() {
		return nil, false
	}
	ty := v.Type()
	keyed := ty.IsMapType() || ty.IsObjectType()
	if !keyed && !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, false
	}

	var entries []Entry
	pos := 0
	for it := v.ElementIterator(); it.Next(); pos++ {
		k, ev := it.Element()

		var memo any = pos
		if keyed {
			memo = k.AsString()
		}

		value, err := property.FromCty(ev)
		if err != nil {
			value = ev
		}
		entries = append(entries, Entry{Value: value, Memo: memo})
	}
	return entries, true
}
