package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts := &options{stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if terr := opts.teardown(); err == nil {
		err = terr
	}
	if err != nil {
		opts.printError(err)
		return 1
	}
	return 0
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reference",
		Short: "Evaluate JSON documents through the reactive engine",
		Long: `reference loads JSON documents into reactive values and reads them
back through the engine, the way a template VM would:

  • dotted property paths resolved through the property cache
  • keyed iteration with stable, de-duplicated keys
  • engine metrics and debug logging`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to reference.json (default: nearest one above the working directory)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&opts.metrics, "metrics", false, "print engine metrics after the command")
	flags.StringVar(&opts.errorFormat, "error-format", formatText, "error output: text, compact, json")

	rootCmd.AddCommand(
		evalCmd(opts),
		eachCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
