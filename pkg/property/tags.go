package property

import (
	"github.com/vango-dev/reference/internal/identity"
	"github.com/vango-dev/reference/pkg/tag"
)

// propertyTags maps an object identity to the tags of its properties. Entries
// live for the lifetime of the process.
var propertyTags = map[any]map[string]*tag.Dirtyable{}

func propertyTag(obj any, key string, create bool) *tag.Dirtyable {
	id, isObject := identity.Key(obj)
	if !isObject {
		return nil
	}

	tags, ok := propertyTags[id]
	if !ok {
		if !create {
			return nil
		}
		tags = make(map[string]*tag.Dirtyable)
		propertyTags[id] = tags
	}

	t, ok := tags[key]
	if !ok && create {
		t = tag.New()
		tags[key] = t
	}
	return t
}

// TagFor returns the tag tracking property key of obj. Values without
// reference identity cannot be mutated in place and get the Constant tag.
func TagFor(obj any, key string) tag.Tag {
	if t := propertyTag(obj, key, true); t != nil {
		return t
	}
	return tag.Constant
}

// DirtyTagFor invalidates everything that read property key of obj through
// TagFor.
func DirtyTagFor(obj any, key string) {
	if t := propertyTag(obj, key, true); t != nil {
		tag.Dirty(t)
	}
}
