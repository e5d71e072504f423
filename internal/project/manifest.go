package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed idlc.toml. Relative paths are resolved against
// Root, the directory holding the manifest.
type Manifest struct {
	Root        string
	Name        string
	Inputs      []string
	IncludeDirs []string
	Jobs        int
	TraceLevel  string
	TraceOutput string
	CacheDir    string
	CacheOff    bool
}

var (
	// ErrProjectSectionMissing indicates that [project] is missing.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrInvalidJobs indicates a negative [resolve].jobs.
	ErrInvalidJobs = errors.New("[resolve].jobs must not be negative")
)

type manifestFile struct {
	Project struct {
		Name        string   `toml:"name"`
		Inputs      []string `toml:"inputs"`
		IncludeDirs []string `toml:"include_dirs"`
	} `toml:"project"`
	Resolve struct {
		Jobs int `toml:"jobs"`
	} `toml:"resolve"`
	Trace struct {
		Level  string `toml:"level"`
		Output string `toml:"output"`
	} `toml:"trace"`
	Cache struct {
		Dir     string `toml:"dir"`
		Enabled *bool  `toml:"enabled"`
	} `toml:"cache"`
}

// LoadManifest parses an idlc.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if cfg.Resolve.Jobs < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidJobs)
	}

	root := filepath.Dir(path)
	m := &Manifest{
		Root:        root,
		Name:        strings.TrimSpace(cfg.Project.Name),
		Inputs:      absAll(root, cfg.Project.Inputs),
		IncludeDirs: absAll(root, cfg.Project.IncludeDirs),
		Jobs:        cfg.Resolve.Jobs,
		TraceLevel:  cfg.Trace.Level,
		TraceOutput: cfg.Trace.Output,
	}
	if cfg.Trace.Output != "" && cfg.Trace.Output != "-" {
		m.TraceOutput = abs(root, cfg.Trace.Output)
	}
	if cfg.Cache.Dir != "" {
		m.CacheDir = abs(root, cfg.Cache.Dir)
	}
	if cfg.Cache.Enabled != nil && !*cfg.Cache.Enabled {
		m.CacheOff = true
	}
	return m, nil
}

func abs(root, p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func absAll(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, abs(root, p))
	}
	return out
}
