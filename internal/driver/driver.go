// Package driver runs the load → resolve → verify pipeline over a set of
// input trees and turns failures into diagnostics.
package driver

import (
	"idlc/internal/astio"
	"idlc/internal/diag"
	"idlc/internal/observ"
	"idlc/internal/project"
	"idlc/internal/resolve"
)

// Driver holds the settings shared by every input of one run.
type Driver struct {
	Loader *astio.Loader
	// Jobs bounds both the inputs processed at once and the includes of a
	// single document resolved at once. 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, receives a Summary for every input and serves
	// Summaries for unchanged inputs.
	Cache *DiskCache
	// Verify runs the post-resolution invariant checker on every resolved
	// document.
	Verify bool
	// MaxDiagnostics bounds each input's bag.
	MaxDiagnostics int
}

// Result is the outcome for one input.
type Result struct {
	Path   string
	Digest project.Digest
	// Resolved is nil when loading or resolution failed, and for summaries
	// served from the cache.
	Resolved *resolve.Resolved
	Summary  *Summary
	// Cached reports that Summary came from the disk cache.
	Cached bool
	Bag    *diag.Bag
	Timing observ.Report
}

// Failed reports whether the input produced any error diagnostic.
func (r *Result) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// New creates a driver searching includeDirs for included trees.
func New(includeDirs []string, jobs int) *Driver {
	return &Driver{
		Loader:         astio.NewLoader(includeDirs...),
		Jobs:           jobs,
		MaxDiagnostics: 100,
	}
}
