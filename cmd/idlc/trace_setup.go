package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idlc/internal/trace"
)

// setupTracing initializes the tracer described by s and attaches it to
// cmd's context. It returns a cleanup function flushing and closing it.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	level, err := trace.ParseLevel(s.traceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	// an output without a level traces phases
	if level == trace.LevelOff && s.traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	formatStr, err := cmd.Root().PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	// several comma-separated outputs share one event stream
	var tracers []trace.Tracer
	for _, out := range strings.Split(s.traceOutput, ",") {
		t, err := trace.New(trace.Config{
			Level:      level,
			Format:     format,
			OutputPath: strings.TrimSpace(out),
		})
		if err != nil {
			for _, opened := range tracers {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		tracers = append(tracers, t)
	}
	tracer := tracers[0]
	if len(tracers) > 1 {
		tracer = trace.NewMultiTracer(level, tracers...)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
