//go:build reactivedebug

package reactive

import "runtime"

// DebugEnabled reports whether the package was built with the reactivedebug
// tag. Debug builds record where each reactive was created and keep the
// descriptions set with Describe.
const DebugEnabled = true

type debugInfo struct {
	description string
	file        string
	line        int
}

var debugTable = map[uint64]*debugInfo{}

// recordCreation records the caller of the exported constructor.
func recordCreation(id uint64) {
	info := &debugInfo{}
	// recordCreation <- newReactive <- constructor <- caller
	if _, file, line, ok := runtime.Caller(3); ok {
		info.file = file
		info.line = line
	}
	debugTable[id] = info
}

func setDescription(id uint64, desc string) {
	if info, ok := debugTable[id]; ok {
		info.description = desc
		return
	}
	debugTable[id] = &debugInfo{description: desc}
}

func description(id uint64) string {
	if info, ok := debugTable[id]; ok {
		return info.description
	}
	return ""
}

func creationSite(id uint64) (string, int, bool) {
	info, ok := debugTable[id]
	if !ok || info.file == "" {
		return "", 0, false
	}
	return info.file, info.line, true
}
