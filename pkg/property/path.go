package property

import "strings"

// SplitPath splits a dotted path into its segments. The empty path has no
// segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// GetPath reads a dotted path from obj, one segment at a time. Reading
// through a nil intermediate value yields nil.
func GetPath(obj any, path string) (any, error) {
	cur := obj
	for _, seg := range SplitPath(path) {
		if cur == nil {
			return nil, nil
		}
		next, err := Get(cur, seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
