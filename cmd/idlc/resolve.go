package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"idlc/internal/diag"
	"idlc/internal/driver"
	"idlc/internal/observ"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [flags] [file.idlast|file.json...]",
		Short: "Resolve parsed IDL trees and report diagnostics",
		Long: `Resolve every input tree: look up type references through the
definitions before them and through include namespaces, and check constant
values against their declared types. Exits with status 1 on errors.`,
		RunE: runResolve,
	}
	cmd.Flags().Bool("verify", false, "check that no unresolved reference survived resolution")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().StringSliceP("include-dir", "I", nil, "additional directory searched for included trees")
	cmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return fmt.Errorf("failed to get verify flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format %q (expected pretty|short|json)", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	d, err := s.newDriver()
	if err != nil {
		return err
	}
	d.Verify = verify

	results, err := d.ResolveFiles(cmd.Context(), s.inputs)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	colored, err := useColor(cmd, errOut)
	if err != nil {
		return err
	}

	bag := diag.NewBag(s.maxDiagnostics * len(results))
	failed := 0
	for i := range results {
		bag.Merge(results[i].Bag)
		if results[i].Failed() {
			failed++
		}
	}
	bag.Sort()
	bag.Dedup()
	switch format {
	case "json":
		// machine-readable output goes to stdout alone
		if err := diag.WriteJSON(cmd.OutOrStdout(), bag, withNotes); err != nil {
			return err
		}
	case "short":
		if out := diag.FormatShort(bag); out != "" {
			fmt.Fprintln(errOut, out)
		}
	default:
		diag.Pretty(errOut, bag, diag.PrettyOpts{Color: colored, Notes: withNotes})
	}

	if showTimings {
		printTimings(errOut, results)
	}
	if format != "json" {
		if s.manifest != nil && s.manifest.Name != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ", s.manifest.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "resolved %d of %d input(s)\n", len(results)-failed, len(results))
	}
	if failed > 0 {
		return exitError{}
	}
	return nil
}

func printTimings(out io.Writer, results []driver.Result) {
	reports := make([]observ.Report, 0, len(results))
	for i := range results {
		reports = append(reports, results[i].Timing)
	}
	fmt.Fprint(out, observ.Merge(reports...).String())
}
