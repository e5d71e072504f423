package resolve

import (
	"sort"

	"idlc/internal/ast"
)

// Symbol is a struct-like, enum or const definition reachable from a
// resolved document.
type Symbol struct {
	// Name is qualified by the include prefixes leading to the definition,
	// e.g. "shared.User".
	Name string
	Kind string
	Def  ast.Definition
}

// Reachable lists every struct, union, exception, enum and const visible
// from r, directly or through include prefixes, sorted by qualified name.
// Aliases introduced by typedefs are not listed separately.
func (r *Resolved) Reachable() []Symbol {
	if r == nil || r.Resolver == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []Symbol
	collectReachable(r.Resolver, "", seen, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func collectReachable(r *Resolver, prefix string, seen map[string]bool, out *[]Symbol) {
	add := func(name string, def ast.Definition) {
		q := name
		if prefix != "" {
			q = prefix + "." + name
		}
		if seen[q] {
			return
		}
		seen[q] = true
		*out = append(*out, Symbol{Name: q, Kind: ast.DefKind(def), Def: def})
	}

	for _, name := range r.TypeNames() {
		switch t := r.types[name].(type) {
		case *ast.StructType:
			if t.Scope == "" && t.Def != nil && t.Def.DefName() == name {
				add(name, t.Def)
			}
		case *ast.EnumType:
			if t.Scope == "" && t.Def != nil && t.Def.Name == name {
				add(name, t.Def)
			}
		}
	}
	for _, name := range r.ConstNames() {
		add(name, r.consts[name])
	}
	for _, p := range r.IncludePrefixes() {
		inc := r.includes[p]
		if inc == nil || inc.Resolver == nil {
			continue
		}
		next := p
		if prefix != "" {
			next = prefix + "." + p
		}
		collectReachable(inc.Resolver, next, seen, out)
	}
}
