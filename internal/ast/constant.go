package ast

// Constant is the closed set of literal forms on the right-hand side of a
// const definition or a field default.
type Constant interface {
	constant()
	String() string
}

// BoolConstant is true or false.
type BoolConstant struct{ Value bool }

// IntConstant is an integer literal. Range checks are not performed here.
type IntConstant struct{ Value int64 }

// DoubleConstant is a floating point literal.
type DoubleConstant struct{ Value float64 }

// StringConstant is a string literal.
type StringConstant struct{ Value string }

// ListConstant is [a, b, ...]. It only matches list types; set literals are
// not supported.
type ListConstant struct {
	Elems []Constant
}

// MapEntry is one key/value pair of a map literal, kept in source order.
type MapEntry struct {
	Key   Constant
	Value Constant
}

// MapConstant is {k: v, ...}.
type MapConstant struct {
	Entries []MapEntry
}

// Identifier is a bare, possibly dotted name in constant position. It is only
// valid where an enum value is expected and never survives resolution.
type Identifier struct {
	Name string
}

// EnumValueConstant is a resolved reference to one value of an enum.
type EnumValueConstant struct {
	Enum  *Enum
	Value EnumValue
}

func (BoolConstant) constant()       {}
func (IntConstant) constant()        {}
func (DoubleConstant) constant()     {}
func (StringConstant) constant()     {}
func (*ListConstant) constant()      {}
func (*MapConstant) constant()       {}
func (Identifier) constant()         {}
func (*EnumValueConstant) constant() {}
