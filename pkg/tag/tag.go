package tag

import "math"

// Revision is a point on the global revision clock.
type Revision uint64

const (
	// ConstantRevision is reported by tags that never change.
	ConstantRevision Revision = 0

	// InitialRevision is the clock value before any tag has been dirtied.
	InitialRevision Revision = 1

	// volatileRevision is reported by tags that are never valid.
	volatileRevision Revision = math.MaxUint64
)

// current is the global revision clock. It only moves forward.
var current = InitialRevision

// Current returns the current global revision.
func Current() Revision {
	return current
}

// Tag summarizes the dependencies of a value.
type Tag interface {
	// Revision returns the revision at which the tag last changed.
	Revision() Revision
}

type constantTag struct{}

func (constantTag) Revision() Revision { return ConstantRevision }

type volatileTag struct{}

func (volatileTag) Revision() Revision { return volatileRevision }

// Constant is the tag of values that never change. Validating it always
// succeeds and consuming it is a no-op.
var Constant Tag = constantTag{}

// Volatile is the tag of values that must be recomputed on every read.
var Volatile Tag = volatileTag{}

// Dirtyable is a tag owned by a piece of mutable state. Its revision moves
// forward each time the state is dirtied.
type Dirtyable struct {
	revision Revision
}

// New creates a dirtyable tag at the initial revision.
func New() *Dirtyable {
	return &Dirtyable{revision: InitialRevision}
}

// Revision implements Tag.
func (t *Dirtyable) Revision() Revision {
	return t.revision
}

// Dirty advances the global clock and stamps t with the new revision,
// invalidating every snapshot taken of t or of any tag combining it.
func Dirty(t *Dirtyable) {
	current++
	t.revision = current
}

// combinator is the union of several tags.
type combinator struct {
	tags []Tag
}

func (c *combinator) Revision() Revision {
	max := ConstantRevision
	for _, t := range c.tags {
		if r := t.Revision(); r > max {
			max = r
		}
	}
	return max
}

// Combine merges tags into a single tag whose revision is the maximum of its
// members. Constant members are dropped; an empty set yields Constant.
func Combine(tags []Tag) Tag {
	filtered := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t == nil || t == Constant {
			continue
		}
		filtered = append(filtered, t)
	}

	switch len(filtered) {
	case 0:
		return Constant
	case 1:
		return filtered[0]
	default:
		return &combinator{tags: filtered}
	}
}

// ValueOf returns the current revision of t. A nil tag reports the volatile
// revision.
func ValueOf(t Tag) Revision {
	if t == nil {
		return volatileRevision
	}
	return t.Revision()
}

// Validate reports whether a snapshot taken at revision snapshot is still
// valid for t.
func Validate(t Tag, snapshot Revision) bool {
	if t == nil {
		return false
	}
	if t == Constant {
		return true
	}
	rev := t.Revision()
	if rev == volatileRevision {
		return false
	}
	return snapshot >= rev
}
