package ast

// Definition is a top-level declaration of a document.
//
// The resolver handles the concrete kinds declared in this package and
// passes any other implementation through untouched.
type Definition interface {
	DefName() string
}

// StructLike is implemented by *Struct, *Union and *Exception, the kinds a
// StructType may refer to.
type StructLike interface {
	Definition
	StructFields() []*Field
	structLike()
}

// Requiredness of a field.
type Requiredness uint8

const (
	Default Requiredness = iota
	Required
	Optional
)

func (r Requiredness) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	}
	return ""
}

// Field is a member of a struct, an argument or a declared throw.
type Field struct {
	ID           int16
	Name         string
	Type         FieldType
	Default      Constant // nil when absent
	Requiredness Requiredness
}

// Typedef declares Name as an alias of Type.
type Typedef struct {
	Name string
	Type FieldType
}

// Struct is a record type.
type Struct struct {
	Name   string
	Fields []*Field
}

// Union is a struct in which at most one field is set.
type Union struct {
	Name   string
	Fields []*Field
}

// Exception has the same shape as Struct and may be thrown by functions.
type Exception struct {
	Name   string
	Fields []*Field
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Name  string
	Value int32
}

// Enum is a closed set of named integer values, in declaration order.
type Enum struct {
	Name   string
	Values []EnumValue
}

// Lookup returns the value named name, matched case-sensitively.
func (e *Enum) Lookup(name string) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v, true
		}
	}
	return EnumValue{}, false
}

// Senum is the legacy string enum.
type Senum struct {
	Name   string
	Values []string
}

// Const declares a named, typed constant.
type Const struct {
	Name  string
	Type  FieldType
	Value Constant
}

// Function is one method of a service.
type Function struct {
	Name   string
	Return FunctionType
	Args   []*Field
	Throws []*Field
	Oneway bool
}

// ServiceParent names the service a service extends, optionally through an
// include prefix.
type ServiceParent struct {
	Name   string
	Prefix string
}

// Service is a set of functions.
type Service struct {
	Name      string
	Parent    *ServiceParent
	Functions []*Function
}

func (d *Typedef) DefName() string   { return d.Name }
func (d *Struct) DefName() string    { return d.Name }
func (d *Union) DefName() string     { return d.Name }
func (d *Exception) DefName() string { return d.Name }
func (d *Enum) DefName() string      { return d.Name }
func (d *Senum) DefName() string     { return d.Name }
func (d *Const) DefName() string     { return d.Name }
func (d *Service) DefName() string   { return d.Name }

func (d *Struct) StructFields() []*Field    { return d.Fields }
func (d *Union) StructFields() []*Field     { return d.Fields }
func (d *Exception) StructFields() []*Field { return d.Fields }

func (*Struct) structLike()    {}
func (*Union) structLike()     {}
func (*Exception) structLike() {}

// DefKind returns a short keyword describing d, as written in IDL source.
func DefKind(d Definition) string {
	switch d.(type) {
	case *Typedef:
		return "typedef"
	case *Struct:
		return "struct"
	case *Union:
		return "union"
	case *Exception:
		return "exception"
	case *Enum:
		return "enum"
	case *Senum:
		return "senum"
	case *Const:
		return "const"
	case *Service:
		return "service"
	}
	return "definition"
}
