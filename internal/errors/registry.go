package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Engine Errors (R001-R009)
	// ============================================

	"R001": {
		Category:   CategoryProgramming,
		Message:    "Reactive value is not updatable",
		Suggestion: "Only mutable cells and accessors accept writes. Wrap the value with ToMut or use MutableCell.",
	},
	"R002": {
		Category: CategoryUser,
		Message:  "User computation failed",
	},
	"R003": {
		Category:   CategoryPoison,
		Message:    "Constant value is poisoned",
		Suggestion: "A property read on a deeply constant value failed once; the failure is cached for the lifetime of the value.",
	},
	"R004": {
		Category:   CategoryKeyPath,
		Message:    "Invalid key path",
		Suggestion: "Valid keys are @key, @index, @identity, or a dotted property path.",
	},

	// ============================================
	// Config Errors (R010-R019)
	// ============================================

	"R010": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that reference.json is valid JSON",
	},
	"R011": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"R012": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI Errors (R020-R029)
	// ============================================

	"R020": {
		Category: CategoryCLI,
		Message:  "Invalid input document",
	},
}

// Lookup returns the template for a registered code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
