package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"idlc/internal/ast"
	"idlc/internal/diag"
	"idlc/internal/observ"
	"idlc/internal/resolve"
	"idlc/internal/testkit"
	"idlc/internal/trace"
)

// ResolveFiles loads and resolves every path in parallel. Results are
// returned in input order; per-input failures land in Result.Bag, the
// returned error only reports cancellation.
func (d *Driver) ResolveFiles(ctx context.Context, paths []string) ([]Result, error) {
	return d.run(ctx, paths, false)
}

// Summaries is ResolveFiles for callers that only need the summary: inputs
// whose digest has a clean cache entry are not resolved again.
func (d *Driver) Summaries(ctx context.Context, paths []string) ([]Result, error) {
	return d.run(ctx, paths, true)
}

func (d *Driver) run(ctx context.Context, paths []string, useCache bool) ([]Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "resolve-files")
	span.WithExtra("inputs", strconv.Itoa(len(paths)))

	results := make([]Result, len(paths))
	if len(paths) == 0 {
		span.End("no inputs")
		return results, nil
	}

	// indices are unique per goroutine, no mutex needed
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs(d.Jobs), len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.processFile(gctx, path, useCache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.Fail(err)
		return results, err
	}

	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	span.WithExtra("failed", strconv.Itoa(failed)).End("")
	return results, nil
}

func (d *Driver) processFile(ctx context.Context, path string, useCache bool) (res Result) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, path)
	defer span.End("")

	res = Result{Path: path, Bag: diag.NewBag(d.MaxDiagnostics)}
	rep := diag.BagReporter{Bag: res.Bag}
	timer := observ.NewTimer()
	defer func() { res.Timing = timer.Report() }()

	idx := timer.Begin("load")
	src, err := d.Loader.Load(path)
	timer.End(idx, "")
	if err != nil {
		rep.Report(loadDiagnostic(path, err))
		return res
	}
	res.Digest = src.Digest

	if useCache && d.Cache != nil {
		idx = timer.Begin("cache")
		s, ok, err := d.Cache.Get(src.Digest)
		timer.End(idx, "")
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "cache-read", err.Error(), span.ID())
		}
		if ok && !s.Broken {
			res.Summary = s
			res.Cached = true
			return res
		}
	}

	idx = timer.Begin("resolve")
	resolved, err := resolve.Document(ctx, src.Doc, resolve.Options{Jobs: jobs(d.Jobs)})
	timer.End(idx, "")
	if err != nil {
		rep.Report(resolveDiagnostic(path, err))
	} else {
		res.Resolved = resolved
		if d.Verify {
			idx = timer.Begin("verify")
			if err := testkit.CheckResolved(resolved.Doc); err != nil {
				rep.Report(verifyDiagnostic(path, err))
			}
			timer.End(idx, "")
		}
	}

	res.Summary = summarize(path, src.Digest, topLevel(src.Doc), res.Resolved)
	if res.Failed() {
		res.Summary.Broken = true
	}
	if d.Cache != nil {
		if err := d.Cache.Put(src.Digest, res.Summary); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "cache-write", err.Error(), span.ID())
		}
	}
	return res
}

func jobs(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func topLevel(doc *ast.Document) []SymbolEntry {
	out := make([]SymbolEntry, 0, len(doc.Defs))
	for _, def := range doc.Defs {
		out = append(out, SymbolEntry{Name: def.DefName(), Kind: ast.DefKind(def)})
	}
	return out
}
