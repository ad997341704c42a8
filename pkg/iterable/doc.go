// Package iterable turns list values into sequences of keyed items for
// incremental list diffing.
//
// Every item carries a key that is stable across renders, so a diff can tell
// a moved item from a new one. The key strategy is chosen by a key path:
//
//   - "@key": the item's memo (its position or map key) verbatim
//   - "@index": the item's position as a string
//   - "@identity": the item itself
//   - anything else: a dotted property path read off the item
//
// Within one pass over a list every key is unique. When the strategy yields
// the same raw key more than once, the second and later occurrences are
// replaced by an *Occurrence marker for (raw key, N). The same duplicate in
// the same position of its duplicate run resolves to the same marker on every
// later pass.
//
// Lists can be slices and arrays (the fast path), values implementing
// Delegate, Go maps, iter.Seq and iter.Seq2 sequences, and cty collections.
// Anything else iterates as empty.
package iterable
