package resolve

import (
	"errors"
	"strings"

	"idlc/internal/ast"
)

// ResolveFieldType replaces every ReferenceType in t with the type it names.
// Concrete types are returned unchanged, *BaseType in value form.
func (r *Resolver) ResolveFieldType(t ast.FieldType) (ast.FieldType, error) {
	t = ast.CanonicalType(t)
	switch tt := t.(type) {
	case *ast.ReferenceType:
		return r.resolveReference(tt.Name)
	case *ast.ListType:
		elem, err := r.ResolveFieldType(tt.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Elem: elem, CppType: tt.CppType}, nil
	case *ast.SetType:
		elem, err := r.ResolveFieldType(tt.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.SetType{Elem: elem, CppType: tt.CppType}, nil
	case *ast.MapType:
		key, err := r.ResolveFieldType(tt.Key)
		if err != nil {
			return nil, err
		}
		value, err := r.ResolveFieldType(tt.Value)
		if err != nil {
			return nil, err
		}
		return &ast.MapType{Key: key, Value: value, CppType: tt.CppType}, nil
	default:
		return t, nil
	}
}

// ResolveFunctionType resolves a function return type; void passes through.
func (r *Resolver) ResolveFunctionType(t ast.FunctionType) (ast.FunctionType, error) {
	t = ast.CanonicalFunctionType(t)
	ft, ok := t.(ast.FieldType)
	if !ok {
		return t, nil
	}
	resolved, err := r.ResolveFieldType(ft)
	if err != nil {
		return nil, err
	}
	return resolved.(ast.FunctionType), nil
}

// resolveReference looks name up in the type namespace. A dotted name is
// split on its first dot: the head selects an include and the tail is
// resolved by that include's own snapshot, recursively.
func (r *Resolver) resolveReference(name string) (ast.FieldType, error) {
	prefix, rest, qualified := strings.Cut(name, ".")
	if !qualified {
		t, ok := r.types[name]
		if !ok {
			return nil, typeNotFound(name)
		}
		return t, nil
	}

	inc, ok := r.includes[prefix]
	if !ok {
		return nil, undefinedSymbol(prefix)
	}
	t, err := inc.Resolver.resolveReference(rest)
	if err != nil {
		var re *Error
		if errors.As(err, &re) && re.Kind == TypeNotFound {
			return nil, typeNotFound(prefix + "." + re.Name)
		}
		return nil, err
	}
	return withScope(t, prefix), nil
}

// withScope records on nominal types, including those nested in containers,
// the include prefix they were reached through.
func withScope(t ast.FieldType, prefix string) ast.FieldType {
	switch tt := t.(type) {
	case *ast.StructType:
		return &ast.StructType{Def: tt.Def, Scope: joinScope(prefix, tt.Scope)}
	case *ast.EnumType:
		return &ast.EnumType{Def: tt.Def, Scope: joinScope(prefix, tt.Scope)}
	case *ast.ListType:
		return &ast.ListType{Elem: withScope(tt.Elem, prefix), CppType: tt.CppType}
	case *ast.SetType:
		return &ast.SetType{Elem: withScope(tt.Elem, prefix), CppType: tt.CppType}
	case *ast.MapType:
		return &ast.MapType{Key: withScope(tt.Key, prefix), Value: withScope(tt.Value, prefix), CppType: tt.CppType}
	}
	return t
}

func joinScope(prefix, scope string) string {
	if scope == "" {
		return prefix
	}
	return prefix + "." + scope
}
