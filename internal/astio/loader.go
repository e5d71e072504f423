package astio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"idlc/internal/ast"
	"idlc/internal/project"
)

// IncludeNotFoundError is returned when no tree file matches an include.
type IncludeNotFoundError struct {
	From    string
	Include string
	Tried   []string
}

func (e *IncludeNotFoundError) Error() string {
	return fmt.Sprintf("%s: include %q not found (tried %s)", e.From, e.Include, strings.Join(e.Tried, ", "))
}

// IncludeCycleError is returned when a file includes itself, directly or not.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "include cycle: " + strings.Join(e.Chain, " -> ")
}

// Source is a loaded tree together with the digest of its content and of
// everything it includes, in header order.
type Source struct {
	Path   string
	Doc    *ast.Document
	Digest project.Digest
}

// Loader reads tree files and fills in the documents of their includes.
// It is safe for concurrent use; each file is decoded once.
type Loader struct {
	IncludeDirs []string

	mu    sync.Mutex
	cache map[string]*Source
}

// NewLoader creates a loader searching dirs after the including file's own
// directory.
func NewLoader(dirs ...string) *Loader {
	return &Loader{IncludeDirs: dirs, cache: make(map[string]*Source)}
}

// Load reads path and, recursively, every include whose document is not
// inlined.
func (l *Loader) Load(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return l.load(abs, nil)
}

func (l *Loader) cached(path string) (*Source, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.cache[path]
	return src, ok
}

func (l *Loader) store(src *Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache == nil {
		l.cache = make(map[string]*Source)
	}
	l.cache[src.Path] = src
}

func (l *Loader) load(path string, chain []string) (*Source, error) {
	for i, p := range chain {
		if p == path {
			cycle := append(append([]string(nil), chain[i:]...), path)
			return nil, &IncludeCycleError{Chain: cycle}
		}
	}
	if src, ok := l.cached(path); ok {
		return src, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(content), FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	chain = append(chain, path)
	deps := make([]project.Digest, 0)
	for i, h := range doc.Headers {
		inc, ok := h.(*ast.Include)
		if !ok {
			continue
		}
		filled := &ast.Include{Path: inc.Path, Prefix: inc.Prefix, Doc: inc.Doc}
		if filled.Prefix == "" {
			filled.Prefix = DefaultPrefix(inc.Path)
		}
		if filled.Doc == nil {
			target, err := l.find(path, inc.Path)
			if err != nil {
				return nil, err
			}
			dep, err := l.load(target, chain)
			if err != nil {
				return nil, err
			}
			filled.Doc = dep.Doc
			deps = append(deps, dep.Digest)
		}
		doc.Headers[i] = filled
	}

	src := &Source{
		Path:   path,
		Doc:    doc,
		Digest: project.Combine(project.Sum(content), deps...),
	}
	l.store(src)
	return src, nil
}

// find locates the tree file for an include written in from. The include
// path is tried as written and with each tree extension in place of its
// own, first next to from, then in every include dir.
func (l *Loader) find(from, include string) (string, error) {
	names := candidateNames(filepath.FromSlash(include))
	bases := append([]string{filepath.Dir(from)}, l.IncludeDirs...)

	var tried []string
	for _, base := range bases {
		for _, name := range names {
			candidate := name
			if !filepath.IsAbs(candidate) {
				candidate = filepath.Join(base, name)
			}
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return filepath.Abs(candidate)
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
			tried = append(tried, candidate)
		}
	}
	return "", &IncludeNotFoundError{From: from, Include: include, Tried: tried}
}

func candidateNames(include string) []string {
	ext := filepath.Ext(include)
	if strings.EqualFold(ext, ExtMsgpack) || strings.EqualFold(ext, ExtJSON) {
		return []string{include}
	}
	stem := strings.TrimSuffix(include, ext)
	return []string{stem + ExtMsgpack, stem + ExtJSON}
}

// DefaultPrefix derives the namespace alias of an include from its path:
// the base name without extension.
func DefaultPrefix(include string) string {
	base := filepath.Base(filepath.FromSlash(include))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
