package ast

// Node is a FieldType, FunctionType or Constant visited by Inspect.
type Node interface {
	String() string
}

// Inspect walks every type and constant position of doc's definitions in
// declaration order, then the documents of its includes. For each node fn
// receives a dotted path locating it (definition, member, include prefix)
// and the node itself; returning false skips the node's children.
//
// Nominal types are not followed into their definitions: those are visited
// where they are declared.
func Inspect(doc *Document, fn func(path string, n Node) bool) {
	if doc == nil {
		return
	}
	inspectDocument("", doc, fn)
}

func inspectDocument(prefix string, doc *Document, fn func(string, Node) bool) {
	for _, def := range doc.Defs {
		inspectDefinition(join(prefix, def.DefName()), def, fn)
	}
	for _, inc := range doc.Includes() {
		if inc.Doc != nil {
			inspectDocument(join(prefix, inc.Prefix), inc.Doc, fn)
		}
	}
}

func inspectDefinition(path string, def Definition, fn func(string, Node) bool) {
	switch d := def.(type) {
	case *Typedef:
		inspectType(path, d.Type, fn)
	case *Const:
		inspectType(path, d.Type, fn)
		inspectConst(path, d.Value, fn)
	case StructLike:
		inspectFields(path, d.StructFields(), fn)
	case *Service:
		for _, f := range d.Functions {
			fpath := join(path, f.Name)
			if f.Return != nil {
				if ft, ok := f.Return.(FieldType); ok {
					inspectType(fpath, ft, fn)
				} else {
					fn(fpath, f.Return)
				}
			}
			inspectFields(fpath, f.Args, fn)
			inspectFields(fpath, f.Throws, fn)
		}
	}
}

func inspectFields(path string, fields []*Field, fn func(string, Node) bool) {
	for _, f := range fields {
		fpath := join(path, f.Name)
		inspectType(fpath, f.Type, fn)
		if f.Default != nil {
			inspectConst(fpath, f.Default, fn)
		}
	}
}

func inspectType(path string, t FieldType, fn func(string, Node) bool) {
	if t == nil || !fn(path, t) {
		return
	}
	switch tt := t.(type) {
	case *ListType:
		inspectType(path, tt.Elem, fn)
	case *SetType:
		inspectType(path, tt.Elem, fn)
	case *MapType:
		inspectType(path, tt.Key, fn)
		inspectType(path, tt.Value, fn)
	}
}

func inspectConst(path string, c Constant, fn func(string, Node) bool) {
	if c == nil || !fn(path, c) {
		return
	}
	switch cc := c.(type) {
	case *ListConstant:
		for _, e := range cc.Elems {
			inspectConst(path, e, fn)
		}
	case *MapConstant:
		for _, e := range cc.Entries {
			inspectConst(path, e.Key, fn)
			inspectConst(path, e.Value, fn)
		}
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
