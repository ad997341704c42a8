package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reference/internal/config"
	"github.com/vango-dev/reference/internal/errors"
	"github.com/vango-dev/reference/pkg/metrics"
	"github.com/vango-dev/reference/pkg/reactive"
)

// Error output formats.
const (
	formatText    = "text"
	formatCompact = "compact"
	formatJSON    = "json"
)

// options holds the state shared by all commands.
type options struct {
	stdout io.Writer
	stderr io.Writer

	configPath  string
	logLevel    string
	metrics     bool
	errorFormat string

	cfg       *config.Config
	logger    *slog.Logger
	registry  *prometheus.Registry
	unobserve func()
}

// setup loads the configuration and wires logging and metrics into the
// engine.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFile(o.configPath)
	} else {
		o.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		o.cfg.LogLevel = o.logLevel
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	o.cfg.Apply()

	o.logger = slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: o.cfg.SlogLevel()}))
	reactive.SetLogger(o.logger)
	o.logger.Debug("configuration loaded",
		slog.String("path", o.cfg.Path()),
		slog.String("command", cmd.Name()),
	)

	if o.metrics || o.cfg.Metrics.Enabled {
		o.registry = prometheus.NewRegistry()
		collector := metrics.New(
			metrics.WithRegistry(o.registry),
			metrics.WithNamespace(o.cfg.Metrics.Namespace),
		)
		o.unobserve = reactive.Observe(collector)
	}
	return nil
}

// teardown prints collected metrics and detaches the engine observers.
func (o *options) teardown() error {
	if o.unobserve != nil {
		o.unobserve()
		o.unobserve = nil
	}
	reactive.SetLogger(nil)
	if o.registry == nil {
		return nil
	}

	registry := o.registry
	o.registry = nil
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(o.stderr)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(o.stderr, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// printError writes err in the configured format.
func (o *options) printError(err error) {
	var ue *reactive.UserError
	if stderrors.As(err, &ue) {
		err = ue.Diagnostic()
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		errorMsg(o.stderr, "%s", err)
		return
	}

	switch o.errorFormat {
	case formatCompact:
		fmt.Fprintln(o.stderr, e.FormatCompact())
	case formatJSON:
		fmt.Fprintln(o.stderr, e.FormatJSON())
	default:
		errors.Fprint(o.stderr, e)
	}
}
