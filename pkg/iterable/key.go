package iterable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rerrors "github.com/vango-dev/reference/internal/errors"
	"github.com/vango-dev/reference/internal/identity"
	"github.com/vango-dev/reference/pkg/property"
)

// ErrInvalidKeyPath is wrapped by the error returned for key paths starting
// with "@" that name no known strategy.
var ErrInvalidKeyPath = errors.New("iterable: invalid key path")

// Key strategies.
const (
	KeyMemo     = "@key"
	KeyIndex    = "@index"
	KeyIdentity = "@identity"
)

// KeyFunc computes the raw key of an item from its value and memo.
type KeyFunc func(value, memo any) any

// null stands in for a nil item under @identity.
type null struct{}

var nullIdentity = &null{}

// KeyFor returns the raw key function selected by keyPath.
func KeyFor(keyPath string) (KeyFunc, error) {
	switch keyPath {
	case KeyMemo:
		return keyForMemo, nil
	case KeyIndex:
		return keyForIndex, nil
	case KeyIdentity:
		return keyForIdentity, nil
	}
	if strings.HasPrefix(keyPath, "@") {
		return nil, rerrors.New("R004").WithDetail(keyPath).Wrap(ErrInvalidKeyPath)
	}
	return keyForPath(keyPath), nil
}

func keyForMemo(_, memo any) any {
	return memo
}

func keyForIndex(_, memo any) any {
	switch m := memo.(type) {
	case int:
		return strconv.Itoa(m)
	case string:
		return m
	}
	return fmt.Sprint(memo)
}

func keyForIdentity(value, _ any) any {
	if value == nil {
		return nullIdentity
	}
	return value
}

func keyForPath(path string) KeyFunc {
	return func(value, _ any) any {
		v, err := property.GetPath(value, path)
		if err != nil {
			return nil
		}
		return v
	}
}

// Occurrence marks the Nth (N >= 1) repeat of a raw key within one pass.
type Occurrence struct {
	Key any
	N   int
}

// String implements fmt.Stringer.
func (o *Occurrence) String() string {
	return fmt.Sprintf("%v#%d", o.Key, o.N)
}

type occurrenceKey struct {
	key any
	n   int
}

// occurrences holds the markers handed out for duplicate keys, split by
// whether the raw key has object or value identity. Markers live for the
// lifetime of the process.
var occurrences = struct {
	objects    map[occurrenceKey]*Occurrence
	primitives map[occurrenceKey]*Occurrence
}{
	objects:    map[occurrenceKey]*Occurrence{},
	primitives: map[occurrenceKey]*Occurrence{},
}

func occurrenceFor(raw, id any, isObject bool, n int) *Occurrence {
	table := occurrences.primitives
	if isObject {
		table = occurrences.objects
	}
	k := occurrenceKey{key: id, n: n}
	if o, ok := table[k]; ok {
		return o
	}
	o := &Occurrence{Key: raw, N: n}
	table[k] = o
	return o
}

// uniqueKeyFor wraps keyFor so that the keys it returns are unique within
// one pass and comparable. Each pass needs a fresh wrapper.
func uniqueKeyFor(keyFor KeyFunc) KeyFunc {
	seen := map[any]int{}
	return func(value, memo any) any {
		raw := keyFor(value, memo)
		id, isObject := identity.Key(raw)

		count := seen[id]
		seen[id] = count + 1
		if count == 0 {
			return id
		}
		return occurrenceFor(raw, id, isObject, count)
	}
}
