package resolve

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"idlc/internal/ast"
	"idlc/internal/trace"
)

// Options tunes a resolution pass. The zero value resolves includes
// sequentially.
type Options struct {
	// Jobs bounds how many includes of one document are resolved at once.
	Jobs int
}

// Resolved pairs a fully substituted document with the final snapshot.
// Both are read-only once returned; documents that include this one reuse
// it as is.
type Resolved struct {
	Doc      *ast.Document
	Resolver *Resolver
}

// Document resolves doc starting from an empty snapshot. ctx carries the
// tracer.
func Document(ctx context.Context, doc *ast.Document, opts Options) (*Resolved, error) {
	return Empty().ResolveDocument(ctx, doc, opts)
}

// ResolveDocument resolves the includes of doc, each against a fresh empty
// snapshot, then folds over the definitions in declaration order. A
// definition sees only the definitions before it.
func (r *Resolver) ResolveDocument(ctx context.Context, doc *ast.Document, opts Options) (*Resolved, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "resolve")
	res, err := r.resolveDocument(ctx, doc, opts)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	types, consts, includes := res.Resolver.Len()
	span.WithExtra("types", strconv.Itoa(types)).
		WithExtra("consts", strconv.Itoa(consts)).
		WithExtra("includes", strconv.Itoa(includes)).
		End("")
	return res, nil
}

func (r *Resolver) resolveDocument(ctx context.Context, doc *ast.Document, opts Options) (*Resolved, error) {
	if doc == nil {
		doc = &ast.Document{}
	}

	includes, err := resolveIncludes(ctx, doc.Includes(), opts)
	if err != nil {
		return nil, err
	}

	headers := make([]ast.Header, len(doc.Headers))
	next := 0
	for i, h := range doc.Headers {
		inc, ok := h.(*ast.Include)
		if !ok {
			headers[i] = h
			continue
		}
		resolved := includes[next]
		next++
		r = r.withInclude(inc.Prefix, resolved)
		headers[i] = &ast.Include{Path: inc.Path, Prefix: inc.Prefix, Doc: resolved.Doc}
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	defs := make([]ast.Definition, len(doc.Defs))
	for i, def := range doc.Defs {
		trace.Point(tracer, trace.ScopeDefinition, ast.DefKind(def)+":"+def.DefName(), "", parent)
		out, extended, err := r.ResolveDefinition(def)
		if err != nil {
			return nil, err
		}
		defs[i] = out
		r = extended
	}

	return &Resolved{
		Doc:      &ast.Document{Headers: headers, Defs: defs},
		Resolver: r,
	}, nil
}

// resolveIncludes resolves every included document with an empty snapshot.
// Includes are independent of each other and run concurrently when
// opts.Jobs > 1; the returned slice and the reported error follow header
// order regardless of scheduling.
func resolveIncludes(ctx context.Context, incs []*ast.Include, opts Options) ([]*Resolved, error) {
	out := make([]*Resolved, len(incs))
	errs := make([]error, len(incs))

	resolveOne := func(i int) {
		inc := incs[i]
		ictx, span := trace.Start(ctx, trace.ScopeInclude, "include:"+inc.Prefix)
		res, err := Empty().resolveDocument(ictx, inc.Doc, opts)
		if err != nil {
			err = inInclude(err, inc.Prefix)
			span.Fail(err)
			errs[i] = err
			return
		}
		span.WithExtra("path", inc.Path).End("")
		out[i] = res
	}

	if opts.Jobs <= 1 || len(incs) < 2 {
		for i := range incs {
			resolveOne(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(opts.Jobs)
	for i := range incs {
		g.Go(func() error {
			resolveOne(i)
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
