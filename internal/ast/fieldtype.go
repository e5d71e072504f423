package ast

// FieldType is the closed set of type expressions that may appear in a field,
// typedef, constant or function signature.
//
// After resolution no *ReferenceType is reachable from a document; nominal
// types point at their declaring definition instead of naming it.
type FieldType interface {
	fieldType()
	String() string
}

// FunctionType is a FieldType or Void, the only valid return types.
type FunctionType interface {
	functionType()
	String() string
}

// VoidType is the return type of functions that return nothing.
type VoidType struct{}

// Void is the shared VoidType value.
var Void FunctionType = VoidType{}

func (VoidType) functionType() {}

// BaseKind enumerates the primitive types.
type BaseKind uint8

const (
	KindBool BaseKind = iota + 1
	KindByte
	KindI16
	KindI32
	KindI64
	KindDouble
	KindString
	KindBinary
)

var baseKindNames = [...]string{
	KindBool:   "bool",
	KindByte:   "byte",
	KindI16:    "i16",
	KindI32:    "i32",
	KindI64:    "i64",
	KindDouble: "double",
	KindString: "string",
	KindBinary: "binary",
}

func (k BaseKind) String() string {
	if int(k) < len(baseKindNames) && baseKindNames[k] != "" {
		return baseKindNames[k]
	}
	return "invalid"
}

// BaseKindByName maps IDL keywords to primitive kinds.
func BaseKindByName(name string) (BaseKind, bool) {
	for k, n := range baseKindNames {
		if n != "" && n == name {
			return BaseKind(k), true
		}
	}
	return 0, false
}

// BaseType is a primitive type.
type BaseType struct {
	Kind BaseKind
}

// Predeclared primitive types.
var (
	TBool   = BaseType{Kind: KindBool}
	TByte   = BaseType{Kind: KindByte}
	TI16    = BaseType{Kind: KindI16}
	TI32    = BaseType{Kind: KindI32}
	TI64    = BaseType{Kind: KindI64}
	TDouble = BaseType{Kind: KindDouble}
	TString = BaseType{Kind: KindString}
	TBinary = BaseType{Kind: KindBinary}
)

// ListType is list<Elem>.
type ListType struct {
	Elem FieldType
	// CppType is the optional cpp_type annotation, carried through untouched.
	CppType string
}

// SetType is set<Elem>.
type SetType struct {
	Elem    FieldType
	CppType string
}

// MapType is map<Key, Value>.
type MapType struct {
	Key     FieldType
	Value   FieldType
	CppType string
}

// StructType refers to a struct, union or exception by its definition.
type StructType struct {
	Def StructLike
	// Scope is the include prefix the type was reached through, empty for
	// types declared in the same document.
	Scope string
}

// EnumType refers to an enum by its definition.
type EnumType struct {
	Def   *Enum
	Scope string
}

// ReferenceType is a not yet resolved, possibly dotted, type name.
type ReferenceType struct {
	Name string
}

func (BaseType) fieldType()       {}
func (*ListType) fieldType()      {}
func (*SetType) fieldType()       {}
func (*MapType) fieldType()       {}
func (*StructType) fieldType()    {}
func (*EnumType) fieldType()      {}
func (*ReferenceType) fieldType() {}

func (BaseType) functionType()       {}
func (*ListType) functionType()      {}
func (*SetType) functionType()       {}
func (*MapType) functionType()       {}
func (*StructType) functionType()    {}
func (*EnumType) functionType()      {}
func (*ReferenceType) functionType() {}

// IsContainer reports whether t is a list, set or map.
func IsContainer(t FieldType) bool {
	switch t.(type) {
	case *ListType, *SetType, *MapType:
		return true
	}
	return false
}
