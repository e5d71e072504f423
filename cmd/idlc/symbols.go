package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"idlc/internal/diag"
	"idlc/internal/driver"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [flags] [file.idlast|file.json...]",
		Short: "List the definitions reachable from each input",
		Long: `List every struct, union, exception, enum and const reachable from each
input, qualified by the include prefixes leading to it. Unchanged inputs are
served from the summary cache without resolving them again.`,
		RunE: runSymbols,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().StringSliceP("include-dir", "I", nil, "additional directory searched for included trees")
	cmd.Flags().String("format", "table", "output format (table|json)")
	cmd.Flags().Bool("local", false, "list only the input's own top-level definitions")
	return cmd
}

type symbolsPayload struct {
	Path    string        `json:"path"`
	Cached  bool          `json:"cached"`
	Symbols []symbolEntry `json:"symbols"`
}

type symbolEntry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func runSymbols(cmd *cobra.Command, args []string) error {
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

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q (expected table|json)", format)
	}
	local, err := cmd.Flags().GetBool("local")
	if err != nil {
		return fmt.Errorf("failed to get local flag: %w", err)
	}

	d, err := s.newDriver()
	if err != nil {
		return err
	}
	results, err := d.Summaries(cmd.Context(), s.inputs)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	colored, err := useColor(cmd, errOut)
	if err != nil {
		return err
	}

	payloads := make([]symbolsPayload, 0, len(results))
	failed := false
	for i := range results {
		r := &results[i]
		if r.Failed() {
			failed = true
			diag.Pretty(errOut, r.Bag, diag.PrettyOpts{Color: colored, Notes: true})
			continue
		}
		entries := r.Summary.Symbols
		if local {
			entries = r.Summary.Defs
		}
		payloads = append(payloads, toPayload(r, entries))
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payloads); err != nil {
			return err
		}
	} else {
		renderSymbolTable(out, payloads, len(results) > 1)
	}
	if failed {
		return exitError{}
	}
	return nil
}

func toPayload(r *driver.Result, entries []driver.SymbolEntry) symbolsPayload {
	p := symbolsPayload{Path: r.Path, Cached: r.Cached, Symbols: make([]symbolEntry, 0, len(entries))}
	for _, e := range entries {
		p.Symbols = append(p.Symbols, symbolEntry{Kind: e.Kind, Name: e.Name})
	}
	return p
}

// renderSymbolTable prints one "KIND  NAME" line per symbol with the kind
// column padded to its widest cell.
func renderSymbolTable(out io.Writer, payloads []symbolsPayload, withHeaders bool) {
	for i, p := range payloads {
		if withHeaders {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s:\n", p.Path)
		}
		width := 0
		for _, sym := range p.Symbols {
			width = max(width, runewidth.StringWidth(sym.Kind))
		}
		for _, sym := range p.Symbols {
			fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(sym.Kind, width), sym.Name)
		}
	}
}
