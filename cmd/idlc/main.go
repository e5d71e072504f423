package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"idlc/internal/version"
)

// newRootCmd builds the command tree. Tests build their own tree so flag
// state does not leak between runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "idlc",
		Short:         "IDL semantic resolver",
		Long:          `idlc resolves names, includes and constants in parsed IDL syntax trees`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newVersionCmd())

	// global flags
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per input")
	rootCmd.PersistentFlags().String("config", "", "path to idlc.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "comma-separated trace outputs (- for stderr, .ndjson for machine-readable)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "do not read or write the summary cache")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.As(err, new(exitError)) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// exitError signals a failed run whose diagnostics were already printed.
type exitError struct{}

func (exitError) Error() string { return "diagnostics reported errors" }

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
