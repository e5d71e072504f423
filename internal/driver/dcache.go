package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"idlc/internal/project"
	"idlc/internal/resolve"
)

// Current schema version - increment when Summary format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-input summaries on disk, keyed by the input digest.
// The digest covers the input and everything it includes, so a hit means
// nothing the summary was computed from has changed.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Summary is what idlc remembers about a resolved input.
type Summary struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path   string
	Digest project.Digest

	// Top-level definitions in declaration order.
	Defs []SymbolEntry
	// Symbols reachable through the final snapshot, see resolve.Resolved.Reachable.
	Symbols []SymbolEntry

	// Broken is set when resolution failed; Symbols is then empty.
	Broken bool
}

// SymbolEntry is a definition name with its kind ("struct", "enum", ...).
type SymbolEntry struct {
	Name string
	Kind string
}

// OpenDiskCache initializes and returns a disk cache at dir, or at the
// standard location for app when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "summaries", key.String()+".mp")
}

// Put serializes and writes a summary to the disk cache.
func (c *DiskCache) Put(key project.Digest, s *Summary) (err error) {
	if c == nil || key.IsZero() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// after a successful rename the temp file is gone
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf("failed to remove temp file: %w", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a summary from the disk cache. Entries written with another
// schema version are reported as misses.
func (c *DiskCache) Get(key project.Digest) (*Summary, bool, error) {
	if c == nil || key.IsZero() {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var s Summary
	if err := msgpack.NewDecoder(f).Decode(&s); err != nil {
		return nil, false, err
	}
	if s.Schema != diskCacheSchemaVersion || s.Digest != key {
		return nil, false, nil
	}
	return &s, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// summarize builds the cache entry for an input. res is nil when
// resolution failed.
func summarize(path string, digest project.Digest, parsed []SymbolEntry, res *resolve.Resolved) *Summary {
	s := &Summary{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Digest: digest,
		Defs:   parsed,
		Broken: res == nil,
	}
	if res != nil {
		for _, sym := range res.Reachable() {
			s.Symbols = append(s.Symbols, SymbolEntry{Name: sym.Name, Kind: sym.Kind})
		}
	}
	return s
}
