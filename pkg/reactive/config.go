package reactive

import (
	"log/slog"
	"sync/atomic"
)

// DevMode enables development-time checks for invalid operations.
// When true:
//   - Write panics on reactives that do not accept writes
//
// When false (production):
//   - Write returns an error wrapping ErrNotUpdatable and leaves the value
//     untouched
//
// Set this at startup:
//
//	func main() {
//	    reactive.DevMode = os.Getenv("REFERENCE_DEV") == "1"
//	    // ...
//	}
var DevMode = false

// DebugConfig controls debugging features for development.
type DebugConfig struct {
	// LogUserErrors logs failures caught from user code at Debug level and
	// poison creation at Warn level.
	// Default: false.
	LogUserErrors bool

	// LogComputations logs each recomputation with its duration.
	// Default: false.
	LogComputations bool
}

// DefaultDebugConfig returns a DebugConfig with all debugging disabled.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{
		LogUserErrors:   false,
		LogComputations: false,
	}
}

// Debug is the global debug configuration.
// Modify this at startup to enable debugging features.
var Debug = DefaultDebugConfig()

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used for debug output. A nil logger restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger used for debug output.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func logUserError(info NodeInfo, err *UserError) {
	if !Debug.LogUserErrors {
		return
	}
	attrs := []any{
		slog.Uint64("id", info.ID),
		slog.String("kind", info.Kind.String()),
		slog.Any("error", err.Err),
	}
	if info.Description != "" {
		attrs = append(attrs, slog.String("description", info.Description))
	}
	if err.Panic != nil {
		attrs = append(attrs, slog.Bool("panic", true))
	}
	Logger().Debug("reactive: user error", attrs...)
}

func logPoison(info NodeInfo, err *UserError) {
	if !Debug.LogUserErrors {
		return
	}
	Logger().Warn("reactive: poisoned property",
		slog.Uint64("id", info.ID),
		slog.String("description", info.Description),
		slog.Any("error", err.Err),
	)
}
