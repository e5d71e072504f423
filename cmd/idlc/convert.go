package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idlc/internal/astio"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [flags] <in> <out>",
		Short: "Re-encode a parsed tree between msgpack and JSON",
		Long: `Re-encode a parsed tree. Formats are picked from the file extensions
(.idlast for msgpack, .json for JSON) unless --to is given. With --inline the
included trees are loaded and embedded into the output.`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}
	cmd.Flags().String("to", "", "output format (msgpack|json), default from the output extension")
	cmd.Flags().Bool("inline", false, "embed included trees")
	cmd.Flags().StringSliceP("include-dir", "I", nil, "additional directory searched for included trees")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	inline, err := cmd.Flags().GetBool("inline")
	if err != nil {
		return fmt.Errorf("failed to get inline flag: %w", err)
	}
	dirs, err := cmd.Flags().GetStringSlice("include-dir")
	if err != nil {
		return fmt.Errorf("failed to get include-dir flag: %w", err)
	}

	format := astio.FormatForPath(out)
	if to != "" {
		if format, err = astio.ParseFormat(to); err != nil {
			return err
		}
	}

	var src *astio.Source
	if inline {
		if src, err = astio.NewLoader(absPaths(dirs)...).Load(in); err != nil {
			return err
		}
	} else {
		content, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", in, err)
		}
		doc, err := astio.Decode(bytes.NewReader(content), astio.FormatForPath(in))
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		src = &astio.Source{Path: in, Doc: doc}
	}

	var buf bytes.Buffer
	if err := astio.Encode(&buf, src.Doc, format); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", out, format, buf.Len())
	return nil
}
