// Package tag provides the dependency tags and revision clock consumed by the
// reactive engine.
//
// A Tag summarizes everything a value depends on. Every tag reports a
// Revision; a snapshot of that revision taken when a value was computed stays
// valid for as long as the tag's revision does not move past it.
//
// # Tags
//
//	t := tag.New()            // dirtyable tag, owned by a data cell
//	snap := tag.ValueOf(t)
//	tag.Validate(t, snap)     // true
//	tag.Dirty(t)
//	tag.Validate(t, snap)     // false
//
// The Constant tag never invalidates. Combine merges several tags into one
// whose revision is the maximum of its members.
//
// # Tracking
//
// Track runs a function inside a tracking frame and returns a tag combining
// every tag consumed during the call:
//
//	fresh := tag.Track(func() {
//	    tag.Consume(a)
//	    tag.Consume(b)
//	})
//	// fresh invalidates when either a or b is dirtied
//
// Frames nest: a Track inside a Track reports its consumed tags to the inner
// frame only; the caller of the inner Track decides whether to re-consume the
// combined result in the outer frame. Untrack runs a function whose reads are
// not reported to any frame.
//
// # Concurrency
//
// The tracking state is a single package-level stack. Rendering is
// single-threaded, so none of the functions in this package are safe for
// concurrent use.
package tag
