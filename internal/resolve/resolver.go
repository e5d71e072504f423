package resolve

import (
	"maps"
	"slices"

	"idlc/internal/ast"
)

// Resolver is an immutable snapshot of the symbols visible at one point of
// the resolution walk: the type namespace, the constant namespace and the
// include namespace. Every operation that adds a binding returns a new
// Resolver; a Resolver is never modified once returned, so it may be shared
// freely between goroutines.
type Resolver struct {
	types    map[string]ast.FieldType
	consts   map[string]*ast.Const
	includes map[string]*Resolved
}

var empty = &Resolver{}

// Empty returns the snapshot with no bindings.
func Empty() *Resolver { return empty }

// LookupType resolves a possibly dotted type name against the snapshot.
func (r *Resolver) LookupType(name string) (ast.FieldType, error) {
	return r.resolveReference(name)
}

// LookupConst returns the constant bound to name in this document.
func (r *Resolver) LookupConst(name string) (*ast.Const, bool) {
	c, ok := r.consts[name]
	return c, ok
}

// Include returns the resolved document bound to prefix.
func (r *Resolver) Include(prefix string) (*Resolved, bool) {
	inc, ok := r.includes[prefix]
	return inc, ok
}

// TypeNames returns the bound type names in sorted order.
func (r *Resolver) TypeNames() []string { return slices.Sorted(maps.Keys(r.types)) }

// ConstNames returns the bound constant names in sorted order.
func (r *Resolver) ConstNames() []string { return slices.Sorted(maps.Keys(r.consts)) }

// IncludePrefixes returns the bound include prefixes in sorted order.
func (r *Resolver) IncludePrefixes() []string { return slices.Sorted(maps.Keys(r.includes)) }

// Len reports the number of bindings per namespace.
func (r *Resolver) Len() (types, consts, includes int) {
	return len(r.types), len(r.consts), len(r.includes)
}

// withType binds name in the type namespace. An earlier binding of the same
// name is replaced silently.
func (r *Resolver) withType(name string, t ast.FieldType) *Resolver {
	next := *r
	next.types = maps.Clone(r.types)
	if next.types == nil {
		next.types = make(map[string]ast.FieldType, 1)
	}
	next.types[name] = t
	return &next
}

func (r *Resolver) withConst(c *ast.Const) *Resolver {
	next := *r
	next.consts = maps.Clone(r.consts)
	if next.consts == nil {
		next.consts = make(map[string]*ast.Const, 1)
	}
	next.consts[c.Name] = c
	return &next
}

func (r *Resolver) withInclude(prefix string, inc *Resolved) *Resolver {
	next := *r
	next.includes = maps.Clone(r.includes)
	if next.includes == nil {
		next.includes = make(map[string]*Resolved, 1)
	}
	next.includes[prefix] = inc
	return &next
}
