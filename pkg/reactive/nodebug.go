//go:build !reactivedebug

package reactive

// DebugEnabled reports whether the package was built with the reactivedebug
// tag.
const DebugEnabled = false

func recordCreation(uint64) {}

func setDescription(uint64, string) {}

func description(uint64) string { return "" }

func creationSite(uint64) (string, int, bool) { return "", 0, false }
