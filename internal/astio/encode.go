package astio

import (
	"fmt"

	"idlc/internal/ast"
)

// toWire converts doc back to the wire form. Resolved nominal types and
// enum values are written as the references a parser would have produced,
// so a resolved tree re-encodes into an equivalent unresolved one.
func toWire(doc *ast.Document) (*wireDocument, error) {
	if doc == nil {
		return &wireDocument{}, nil
	}
	w := &wireDocument{}
	for _, h := range doc.Headers {
		wh, err := headerToWire(h)
		if err != nil {
			return nil, err
		}
		w.Headers = append(w.Headers, wh)
	}
	for _, d := range doc.Defs {
		wd, err := defToWire(d)
		if err != nil {
			return nil, err
		}
		w.Defs = append(w.Defs, wd)
	}
	return w, nil
}

func headerToWire(h ast.Header) (wireHeader, error) {
	switch hh := h.(type) {
	case *ast.Include:
		wh := wireHeader{Kind: headerInclude, Path: hh.Path, Prefix: hh.Prefix}
		if hh.Doc != nil {
			doc, err := toWire(hh.Doc)
			if err != nil {
				return wireHeader{}, fmt.Errorf("include %q: %w", hh.Path, err)
			}
			wh.Doc = doc
		}
		return wh, nil
	case *ast.Namespace:
		return wireHeader{Kind: headerNamespace, Scope: hh.Scope, Name: hh.Name}, nil
	case *ast.CppInclude:
		return wireHeader{Kind: headerCppInclude, Path: hh.Path}, nil
	}
	return wireHeader{}, fmt.Errorf("cannot encode header %T", h)
}

func defToWire(def ast.Definition) (wireDef, error) {
	w := wireDef{Kind: ast.DefKind(def), Name: def.DefName()}
	var err error
	switch d := def.(type) {
	case *ast.Typedef:
		w.Type, err = typeToWire(d.Type)
	case ast.StructLike:
		w.Fields, err = fieldsToWire(d.StructFields())
	case *ast.Enum:
		for _, v := range d.Values {
			n := int64(v.Value)
			w.Values = append(w.Values, wireEnumItem{Name: v.Name, Value: &n})
		}
	case *ast.Senum:
		w.Strings = append([]string(nil), d.Values...)
	case *ast.Const:
		if w.Type, err = typeToWire(d.Type); err == nil {
			w.Value, err = constToWire(d.Value)
		}
	case *ast.Service:
		if d.Parent != nil {
			w.Extends = d.Parent.Name
			if d.Parent.Prefix != "" {
				w.Extends = d.Parent.Prefix + "." + d.Parent.Name
			}
		}
		for _, fn := range d.Functions {
			if w.Functions, err = appendFunction(w.Functions, fn); err != nil {
				break
			}
		}
	default:
		return wireDef{}, fmt.Errorf("cannot encode definition %q of type %T", def.DefName(), def)
	}
	if err != nil {
		return wireDef{}, fmt.Errorf("definition %q: %w", def.DefName(), err)
	}
	return w, nil
}

func appendFunction(out []wireFunction, fn *ast.Function) ([]wireFunction, error) {
	wf := wireFunction{Name: fn.Name, Oneway: fn.Oneway}
	var err error
	if wf.Args, err = fieldsToWire(fn.Args); err != nil {
		return nil, fmt.Errorf("function %q: %w", fn.Name, err)
	}
	if wf.Throws, err = fieldsToWire(fn.Throws); err != nil {
		return nil, fmt.Errorf("function %q: %w", fn.Name, err)
	}
	if ft, ok := ast.CanonicalFunctionType(fn.Return).(ast.FieldType); ok {
		if wf.Return, err = typeToWire(ft); err != nil {
			return nil, fmt.Errorf("function %q: %w", fn.Name, err)
		}
	} else {
		wf.Return = &wireType{Kind: typeVoid}
	}
	return append(out, wf), nil
}

func fieldsToWire(fields []*ast.Field) ([]wireField, error) {
	out := make([]wireField, 0, len(fields))
	for _, f := range fields {
		t, err := typeToWire(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		wf := wireField{
			ID:       int64(f.ID),
			Name:     f.Name,
			Type:     t,
			Required: f.Requiredness.String(),
		}
		if f.Default != nil {
			if wf.Default, err = constToWire(f.Default); err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
		out = append(out, wf)
	}
	return out, nil
}

func typeToWire(t ast.FieldType) (*wireType, error) {
	switch tt := ast.CanonicalType(t).(type) {
	case ast.BaseType:
		return &wireType{Kind: tt.Kind.String()}, nil
	case *ast.ListType:
		elem, err := typeToWire(tt.Elem)
		if err != nil {
			return nil, err
		}
		return &wireType{Kind: typeList, Elem: elem, CppType: tt.CppType}, nil
	case *ast.SetType:
		elem, err := typeToWire(tt.Elem)
		if err != nil {
			return nil, err
		}
		return &wireType{Kind: typeSet, Elem: elem, CppType: tt.CppType}, nil
	case *ast.MapType:
		key, err := typeToWire(tt.Key)
		if err != nil {
			return nil, err
		}
		value, err := typeToWire(tt.Value)
		if err != nil {
			return nil, err
		}
		return &wireType{Kind: typeMap, Key: key, Value: value, CppType: tt.CppType}, nil
	case *ast.StructType, *ast.EnumType, *ast.ReferenceType:
		return &wireType{Kind: typeRef, Name: tt.String()}, nil
	}
	return nil, fmt.Errorf("cannot encode type %T", t)
}

func constToWire(c ast.Constant) (*wireConst, error) {
	switch cc := ast.Canonical(c).(type) {
	case ast.BoolConstant:
		return &wireConst{Kind: constBool, Bool: cc.Value}, nil
	case ast.IntConstant:
		return &wireConst{Kind: constInt, Int: cc.Value}, nil
	case ast.DoubleConstant:
		return &wireConst{Kind: constDouble, Double: cc.Value}, nil
	case ast.StringConstant:
		return &wireConst{Kind: constString, String: cc.Value}, nil
	case ast.Identifier:
		return &wireConst{Kind: constIdent, Name: cc.Name}, nil
	case *ast.EnumValueConstant:
		return &wireConst{Kind: constIdent, Name: cc.String()}, nil
	case *ast.ListConstant:
		w := &wireConst{Kind: constList, Elems: make([]wireConst, 0, len(cc.Elems))}
		for _, e := range cc.Elems {
			we, err := constToWire(e)
			if err != nil {
				return nil, err
			}
			w.Elems = append(w.Elems, *we)
		}
		return w, nil
	case *ast.MapConstant:
		w := &wireConst{Kind: constMap, Entries: make([]wireEntry, 0, len(cc.Entries))}
		for _, e := range cc.Entries {
			k, err := constToWire(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := constToWire(e.Value)
			if err != nil {
				return nil, err
			}
			w.Entries = append(w.Entries, wireEntry{Key: *k, Value: *v})
		}
		return w, nil
	}
	return nil, fmt.Errorf("cannot encode constant %T", c)
}
