package ast

// Header is a document-level directive preceding definitions.
type Header interface {
	header()
}

// Include pulls another, already parsed, document into scope under Prefix.
type Include struct {
	// Path is the include path as written in source.
	Path string
	// Prefix is the namespace alias the included symbols are reached through.
	Prefix string
	Doc    *Document
}

// Namespace declares the target-language namespace for a generator scope.
type Namespace struct {
	Scope string
	Name  string
}

// CppInclude is the legacy cpp_include header.
type CppInclude struct {
	Path string
}

func (*Include) header()    {}
func (*Namespace) header()  {}
func (*CppInclude) header() {}

// Document is one parsed IDL file.
type Document struct {
	Headers []Header
	Defs    []Definition
}

// Includes returns the include headers in header order.
func (d *Document) Includes() []*Include {
	if d == nil {
		return nil
	}
	var out []*Include
	for _, h := range d.Headers {
		if inc, ok := h.(*Include); ok {
			out = append(out, inc)
		}
	}
	return out
}

// Namespace returns the namespace declared for scope, or "" if none.
func (d *Document) Namespace(scope string) string {
	if d == nil {
		return ""
	}
	wildcard := ""
	for _, h := range d.Headers {
		ns, ok := h.(*Namespace)
		if !ok {
			continue
		}
		if ns.Scope == scope {
			return ns.Name
		}
		if ns.Scope == "*" && wildcard == "" {
			wildcard = ns.Name
		}
	}
	return wildcard
}
