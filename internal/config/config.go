package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vango-dev/reference/internal/errors"
	"github.com/vango-dev/reference/pkg/iterable"
	"github.com/vango-dev/reference/pkg/reactive"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reference.json"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "reference"

	// DefaultKey is the default key strategy for keyed iteration.
	DefaultKey = iterable.KeyIdentity
)

// Config represents the complete reference.json configuration.
type Config struct {
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `json:"logLevel,omitempty"`

	// DevMode makes invalid writes panic instead of returning an error.
	DevMode bool `json:"devMode,omitempty"`

	// Debug contains engine debugging switches.
	Debug DebugConfig `json:"debug,omitempty"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Iteration contains keyed iteration configuration.
	Iteration IterationConfig `json:"iteration,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DebugConfig mirrors reactive.DebugConfig.
type DebugConfig struct {
	// LogUserErrors logs failures caught from user code.
	LogUserErrors bool `json:"logUserErrors,omitempty"`

	// LogComputations logs every recomputation with its duration.
	LogComputations bool `json:"logComputations,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled registers the metrics collector as an engine observer.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// IterationConfig contains keyed iteration settings.
type IterationConfig struct {
	// DefaultKey is the key path used when none is given.
	DefaultKey string `json:"defaultKey,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
		Iteration: IterationConfig{
			DefaultKey: DefaultKey,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for reference.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R011").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("R010").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("R010").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Iteration.DefaultKey == "" {
		c.Iteration.DefaultKey = DefaultKey
	}
}

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("R012").
			WithDetail("logLevel must be one of debug, info, warn, error; got " + c.LogLevel)
	}
	if c.Metrics.Namespace != "" && !metricNamePattern.MatchString(c.Metrics.Namespace) {
		return errors.New("R012").
			WithDetail("metrics.namespace is not a valid Prometheus name: " + c.Metrics.Namespace)
	}
	if _, err := iterable.KeyFor(c.Iteration.DefaultKey); err != nil {
		return errors.New("R012").
			WithDetail("iteration.defaultKey: " + c.Iteration.DefaultKey).
			Wrap(err)
	}
	return nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// SlogLevel returns the configured log level. Invalid levels map to Info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// Apply pushes the engine settings into the reactive package.
func (c *Config) Apply() {
	reactive.DevMode = c.DevMode
	reactive.Debug = reactive.DebugConfig{
		LogUserErrors:   c.Debug.LogUserErrors,
		LogComputations: c.Debug.LogComputations,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing reference.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("R011").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest reference.json at
// or above the working directory. Without one, it returns the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
