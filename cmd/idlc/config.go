package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"idlc/internal/driver"
	"idlc/internal/project"
)

// settings merges idlc.toml with command-line flags.
type settings struct {
	manifest       *project.Manifest
	inputs         []string
	includeDirs    []string
	jobs           int
	maxDiagnostics int
	traceLevel     string
	traceOutput    string
	cacheDir       string
	cacheOff       bool
}

// loadManifestSettings reads the manifest named by --config, or the nearest
// idlc.toml above the working directory. Without a manifest the settings
// are empty.
func loadManifestSettings(cmd *cobra.Command) (*settings, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, ok, err := project.FindManifest(cwd)
		if err != nil {
			return nil, err
		}
		if ok {
			configPath = found
		}
	}

	s := &settings{}
	if configPath == "" {
		return s, nil
	}
	m, err := project.LoadManifest(configPath)
	if err != nil {
		return nil, err
	}
	s.manifest = m
	s.inputs = m.Inputs
	s.includeDirs = m.IncludeDirs
	s.jobs = m.Jobs
	s.traceLevel = m.TraceLevel
	s.traceOutput = m.TraceOutput
	s.cacheDir = m.CacheDir
	s.cacheOff = m.CacheOff
	return s, nil
}

// loadSettings applies cmd's flags and args on top of the manifest
// settings. Flags win.
func loadSettings(cmd *cobra.Command, args []string) (*settings, error) {
	s, err := loadManifestSettings(cmd)
	if err != nil {
		return nil, err
	}
	root := cmd.Root().PersistentFlags()

	if len(args) > 0 {
		s.inputs = args
	}
	if flags := cmd.Flags(); flags.Lookup("include-dir") != nil {
		dirs, err := flags.GetStringSlice("include-dir")
		if err != nil {
			return nil, fmt.Errorf("failed to get include-dir flag: %w", err)
		}
		// command-line dirs are searched first
		s.includeDirs = append(absPaths(dirs), s.includeDirs...)
	}
	if flags := cmd.Flags(); flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if s.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if root.Changed("trace-level") || s.traceLevel == "" {
		if s.traceLevel, err = root.GetString("trace-level"); err != nil {
			return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
	}
	if root.Changed("trace") {
		if s.traceOutput, err = root.GetString("trace"); err != nil {
			return nil, fmt.Errorf("failed to get trace flag: %w", err)
		}
	}
	noCache, err := root.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	s.cacheOff = s.cacheOff || noCache

	if len(s.inputs) == 0 {
		return nil, fmt.Errorf("no input files: pass them as arguments or list them in [project].inputs of %s", project.ManifestName)
	}
	return s, nil
}

// newDriver builds a driver for s, opening the summary cache unless it is
// disabled.
func (s *settings) newDriver() (*driver.Driver, error) {
	d := driver.New(s.includeDirs, s.jobs)
	d.MaxDiagnostics = s.maxDiagnostics
	if s.cacheOff {
		return d, nil
	}
	cache, err := driver.OpenDiskCache("idlc", s.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	d.Cache = cache
	return d, nil
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			p = a
		}
		out = append(out, p)
	}
	return out
}
