package resolve

import (
	"strings"

	"idlc/internal/ast"
)

// ResolveConst type-checks c against the concrete type expected and
// replaces enum-member identifiers with EnumValueConstant. Scalar literals
// are not coerced or range checked. Pointer forms of value constants are
// accepted and returned in value form.
func (r *Resolver) ResolveConst(c ast.Constant, expected ast.FieldType) (ast.Constant, error) {
	c = ast.Canonical(c)
	switch cc := c.(type) {
	case *ast.ListConstant:
		list, ok := expected.(*ast.ListType)
		if !ok {
			return nil, typeMismatch(expected, c)
		}
		elems := make([]ast.Constant, len(cc.Elems))
		for i, e := range cc.Elems {
			v, err := r.ResolveConst(e, list.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ast.ListConstant{Elems: elems}, nil

	case *ast.MapConstant:
		m, ok := expected.(*ast.MapType)
		if !ok {
			return nil, typeMismatch(expected, c)
		}
		entries := make([]ast.MapEntry, len(cc.Entries))
		for i, e := range cc.Entries {
			k, err := r.ResolveConst(e.Key, m.Key)
			if err != nil {
				return nil, err
			}
			v, err := r.ResolveConst(e.Value, m.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.MapEntry{Key: k, Value: v}
		}
		return &ast.MapConstant{Entries: entries}, nil

	case ast.Identifier:
		return r.resolveEnumValue(cc.Name, expected)

	default:
		return c, nil
	}
}

// resolveEnumValue accepts VALUE, Enum.VALUE and scope.Enum.VALUE where the
// expected type is an enum.
func (r *Resolver) resolveEnumValue(name string, expected ast.FieldType) (ast.Constant, error) {
	enum, ok := expected.(*ast.EnumType)
	if !ok || enum.Def == nil {
		return nil, undefinedSymbol(name)
	}

	valueName := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		scope := name[:i]
		valueName = name[i+1:]
		if !strings.Contains(scope, ".") {
			if scope != enum.Def.Name {
				return nil, undefinedSymbol(scope)
			}
		} else {
			t, err := r.resolveReference(scope)
			if err != nil {
				return nil, undefinedSymbol(scope)
			}
			et, ok := t.(*ast.EnumType)
			if !ok || et.Def != enum.Def {
				return nil, undefinedSymbol(scope)
			}
		}
	}

	value, ok := enum.Def.Lookup(valueName)
	if !ok {
		return nil, undefinedSymbol(valueName)
	}
	return &ast.EnumValueConstant{Enum: enum.Def, Value: value}, nil
}
