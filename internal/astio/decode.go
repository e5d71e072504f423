package astio

import (
	"fmt"

	"fortio.org/safecast"

	"idlc/internal/ast"
)

// DecodeError reports a malformed tree. Path locates the offending node.
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

func decodeErr(path, format string, args ...any) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func fromWire(w *wireDocument) (*ast.Document, error) {
	if w == nil {
		return &ast.Document{}, nil
	}
	doc := &ast.Document{
		Headers: make([]ast.Header, 0, len(w.Headers)),
		Defs:    make([]ast.Definition, 0, len(w.Defs)),
	}
	for i := range w.Headers {
		h, err := headerFromWire(&w.Headers[i])
		if err != nil {
			return nil, err
		}
		doc.Headers = append(doc.Headers, h)
	}
	for i := range w.Defs {
		d, err := defFromWire(&w.Defs[i])
		if err != nil {
			return nil, err
		}
		doc.Defs = append(doc.Defs, d)
	}
	return doc, nil
}

func headerFromWire(h *wireHeader) (ast.Header, error) {
	switch h.Kind {
	case headerInclude:
		if h.Path == "" {
			return nil, decodeErr("include", "missing path")
		}
		inc := &ast.Include{Path: h.Path, Prefix: h.Prefix}
		if h.Doc != nil {
			doc, err := fromWire(h.Doc)
			if err != nil {
				return nil, fmt.Errorf("include %q: %w", h.Path, err)
			}
			inc.Doc = doc
		}
		return inc, nil
	case headerNamespace:
		return &ast.Namespace{Scope: h.Scope, Name: h.Name}, nil
	case headerCppInclude:
		return &ast.CppInclude{Path: h.Path}, nil
	}
	return nil, decodeErr("header", "unknown header kind %q", h.Kind)
}

func defFromWire(d *wireDef) (ast.Definition, error) {
	path := d.Name
	switch d.Kind {
	case defTypedef:
		t, err := typeFromWire(path, d.Type)
		if err != nil {
			return nil, err
		}
		return &ast.Typedef{Name: d.Name, Type: t}, nil

	case defStruct, defUnion, defException:
		fields, err := fieldsFromWire(path, d.Fields)
		if err != nil {
			return nil, err
		}
		switch d.Kind {
		case defUnion:
			return &ast.Union{Name: d.Name, Fields: fields}, nil
		case defException:
			return &ast.Exception{Name: d.Name, Fields: fields}, nil
		}
		return &ast.Struct{Name: d.Name, Fields: fields}, nil

	case defEnum:
		values, err := enumValuesFromWire(path, d.Values)
		if err != nil {
			return nil, err
		}
		return &ast.Enum{Name: d.Name, Values: values}, nil

	case defSenum:
		return &ast.Senum{Name: d.Name, Values: append([]string(nil), d.Strings...)}, nil

	case defConst:
		t, err := typeFromWire(path, d.Type)
		if err != nil {
			return nil, err
		}
		if d.Value == nil {
			return nil, decodeErr(path, "const without value")
		}
		v, err := constFromWire(path, d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Const{Name: d.Name, Type: t, Value: v}, nil

	case defService:
		svc := &ast.Service{Name: d.Name, Parent: parentFromWire(d.Extends)}
		for _, fn := range d.Functions {
			f, err := functionFromWire(path, &fn)
			if err != nil {
				return nil, err
			}
			svc.Functions = append(svc.Functions, f)
		}
		return svc, nil
	}
	return nil, decodeErr(path, "unknown definition kind %q", d.Kind)
}

// enumValuesFromWire numbers implicit values from the previous value + 1,
// starting at 0.
func enumValuesFromWire(path string, items []wireEnumItem) ([]ast.EnumValue, error) {
	values := make([]ast.EnumValue, 0, len(items))
	var next int64
	for _, it := range items {
		n := next
		if it.Value != nil {
			n = *it.Value
		}
		v, err := safecast.Conv[int32](n)
		if err != nil {
			return nil, decodeErr(path+"."+it.Name, "enum value %d out of range: %v", n, err)
		}
		values = append(values, ast.EnumValue{Name: it.Name, Value: v})
		next = n + 1
	}
	return values, nil
}

func parentFromWire(extends string) *ast.ServiceParent {
	if extends == "" {
		return nil
	}
	for i := len(extends) - 1; i >= 0; i-- {
		if extends[i] == '.' {
			return &ast.ServiceParent{Prefix: extends[:i], Name: extends[i+1:]}
		}
	}
	return &ast.ServiceParent{Name: extends}
}

func functionFromWire(path string, fn *wireFunction) (*ast.Function, error) {
	fpath := path + "." + fn.Name
	out := &ast.Function{Name: fn.Name, Oneway: fn.Oneway, Return: ast.Void}
	if fn.Return != nil && fn.Return.Kind != typeVoid {
		t, err := typeFromWire(fpath, fn.Return)
		if err != nil {
			return nil, err
		}
		out.Return = t.(ast.FunctionType)
	}
	var err error
	if out.Args, err = fieldsFromWire(fpath, fn.Args); err != nil {
		return nil, err
	}
	if out.Throws, err = fieldsFromWire(fpath, fn.Throws); err != nil {
		return nil, err
	}
	return out, nil
}

func fieldsFromWire(path string, in []wireField) ([]*ast.Field, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]*ast.Field, 0, len(in))
	for _, f := range in {
		fpath := path + "." + f.Name
		id, err := safecast.Conv[int16](f.ID)
		if err != nil {
			return nil, decodeErr(fpath, "field id %d out of range: %v", f.ID, err)
		}
		t, err := typeFromWire(fpath, f.Type)
		if err != nil {
			return nil, err
		}
		field := &ast.Field{ID: id, Name: f.Name, Type: t}
		switch f.Required {
		case "", "default":
		case "required":
			field.Requiredness = ast.Required
		case "optional":
			field.Requiredness = ast.Optional
		default:
			return nil, decodeErr(fpath, "unknown requiredness %q", f.Required)
		}
		if f.Default != nil {
			if field.Default, err = constFromWire(fpath, f.Default); err != nil {
				return nil, err
			}
		}
		out = append(out, field)
	}
	return out, nil
}

func typeFromWire(path string, t *wireType) (ast.FieldType, error) {
	if t == nil {
		return nil, decodeErr(path, "missing type")
	}
	if k, ok := ast.BaseKindByName(t.Kind); ok {
		return ast.BaseType{Kind: k}, nil
	}
	switch t.Kind {
	case typeRef:
		if t.Name == "" {
			return nil, decodeErr(path, "type reference without name")
		}
		return &ast.ReferenceType{Name: t.Name}, nil
	case typeList, typeSet:
		elem, err := typeFromWire(path, t.Elem)
		if err != nil {
			return nil, err
		}
		if t.Kind == typeSet {
			return &ast.SetType{Elem: elem, CppType: t.CppType}, nil
		}
		return &ast.ListType{Elem: elem, CppType: t.CppType}, nil
	case typeMap:
		key, err := typeFromWire(path, t.Key)
		if err != nil {
			return nil, err
		}
		value, err := typeFromWire(path, t.Value)
		if err != nil {
			return nil, err
		}
		return &ast.MapType{Key: key, Value: value, CppType: t.CppType}, nil
	case typeVoid:
		return nil, decodeErr(path, "void is only valid as a return type")
	}
	return nil, decodeErr(path, "unknown type kind %q", t.Kind)
}

func constFromWire(path string, c *wireConst) (ast.Constant, error) {
	switch c.Kind {
	case constBool:
		return ast.BoolConstant{Value: c.Bool}, nil
	case constInt:
		return ast.IntConstant{Value: c.Int}, nil
	case constDouble:
		return ast.DoubleConstant{Value: c.Double}, nil
	case constString:
		return ast.StringConstant{Value: c.String}, nil
	case constIdent:
		if c.Name == "" {
			return nil, decodeErr(path, "identifier without name")
		}
		return ast.Identifier{Name: c.Name}, nil
	case constList:
		elems := make([]ast.Constant, 0, len(c.Elems))
		for i := range c.Elems {
			e, err := constFromWire(path, &c.Elems[i])
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return &ast.ListConstant{Elems: elems}, nil
	case constMap:
		entries := make([]ast.MapEntry, 0, len(c.Entries))
		for i := range c.Entries {
			k, err := constFromWire(path, &c.Entries[i].Key)
			if err != nil {
				return nil, err
			}
			v, err := constFromWire(path, &c.Entries[i].Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.MapEntry{Key: k, Value: v})
		}
		return &ast.MapConstant{Entries: entries}, nil
	}
	return nil, decodeErr(path, "unknown constant kind %q", c.Kind)
}
