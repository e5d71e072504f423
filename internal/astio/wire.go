package astio

// The wire form is a tagged, pointer-free rendition of the ast package:
// every sum type becomes one record with a Kind discriminator. Both
// encodings (msgpack and JSON) share these structs.

type wireDocument struct {
	Headers []wireHeader `msgpack:"headers,omitempty" json:"headers,omitempty"`
	Defs    []wireDef    `msgpack:"defs,omitempty" json:"defs,omitempty"`
}

// Header kinds.
const (
	headerInclude    = "include"
	headerNamespace  = "namespace"
	headerCppInclude = "cpp_include"
)

type wireHeader struct {
	Kind   string        `msgpack:"kind" json:"kind"`
	Path   string        `msgpack:"path,omitempty" json:"path,omitempty"`
	Prefix string        `msgpack:"prefix,omitempty" json:"prefix,omitempty"`
	Scope  string        `msgpack:"scope,omitempty" json:"scope,omitempty"`
	Name   string        `msgpack:"name,omitempty" json:"name,omitempty"`
	Doc    *wireDocument `msgpack:"doc,omitempty" json:"doc,omitempty"`
}

// Type kinds besides the base type names (bool, i32, ...).
const (
	typeVoid = "void"
	typeList = "list"
	typeSet  = "set"
	typeMap  = "map"
	typeRef  = "ref"
)

type wireType struct {
	Kind    string    `msgpack:"kind" json:"kind"`
	Name    string    `msgpack:"name,omitempty" json:"name,omitempty"`
	Elem    *wireType `msgpack:"elem,omitempty" json:"elem,omitempty"`
	Key     *wireType `msgpack:"key,omitempty" json:"key,omitempty"`
	Value   *wireType `msgpack:"value,omitempty" json:"value,omitempty"`
	CppType string    `msgpack:"cpp_type,omitempty" json:"cpp_type,omitempty"`
}

// Constant kinds.
const (
	constBool   = "bool"
	constInt    = "int"
	constDouble = "double"
	constString = "string"
	constList   = "list"
	constMap    = "map"
	constIdent  = "ident"
)

type wireConst struct {
	Kind    string      `msgpack:"kind" json:"kind"`
	Bool    bool        `msgpack:"bool,omitempty" json:"bool,omitempty"`
	Int     int64       `msgpack:"int,omitempty" json:"int,omitempty"`
	Double  float64     `msgpack:"double,omitempty" json:"double,omitempty"`
	String  string      `msgpack:"string,omitempty" json:"string,omitempty"`
	Name    string      `msgpack:"name,omitempty" json:"name,omitempty"`
	Elems   []wireConst `msgpack:"elems,omitempty" json:"elems,omitempty"`
	Entries []wireEntry `msgpack:"entries,omitempty" json:"entries,omitempty"`
}

type wireEntry struct {
	Key   wireConst `msgpack:"key" json:"key"`
	Value wireConst `msgpack:"value" json:"value"`
}

// Definition kinds.
const (
	defTypedef   = "typedef"
	defStruct    = "struct"
	defUnion     = "union"
	defException = "exception"
	defEnum      = "enum"
	defSenum     = "senum"
	defConst     = "const"
	defService   = "service"
)

type wireDef struct {
	Kind      string         `msgpack:"kind" json:"kind"`
	Name      string         `msgpack:"name" json:"name"`
	Type      *wireType      `msgpack:"type,omitempty" json:"type,omitempty"`
	Value     *wireConst     `msgpack:"value,omitempty" json:"value,omitempty"`
	Fields    []wireField    `msgpack:"fields,omitempty" json:"fields,omitempty"`
	Values    []wireEnumItem `msgpack:"values,omitempty" json:"values,omitempty"`
	Strings   []string       `msgpack:"strings,omitempty" json:"strings,omitempty"`
	Extends   string         `msgpack:"extends,omitempty" json:"extends,omitempty"`
	Functions []wireFunction `msgpack:"functions,omitempty" json:"functions,omitempty"`
}

type wireField struct {
	ID       int64      `msgpack:"id" json:"id"`
	Name     string     `msgpack:"name" json:"name"`
	Type     *wireType  `msgpack:"type" json:"type"`
	Default  *wireConst `msgpack:"default,omitempty" json:"default,omitempty"`
	Required string     `msgpack:"req,omitempty" json:"req,omitempty"`
}

type wireEnumItem struct {
	Name string `msgpack:"name" json:"name"`
	// Value is nil when the source left the number implicit.
	Value *int64 `msgpack:"value,omitempty" json:"value,omitempty"`
}

type wireFunction struct {
	Name   string      `msgpack:"name" json:"name"`
	Return *wireType   `msgpack:"return,omitempty" json:"return,omitempty"`
	Args   []wireField `msgpack:"args,omitempty" json:"args,omitempty"`
	Throws []wireField `msgpack:"throws,omitempty" json:"throws,omitempty"`
	Oneway bool        `msgpack:"oneway,omitempty" json:"oneway,omitempty"`
}
