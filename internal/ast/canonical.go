package ast

// Scalar constants, Identifier, BaseType and VoidType are value variants.
// Their pointer forms also satisfy the interfaces; Canonical and
// CanonicalType fold them back so consumers only match one form.

// Canonical returns c with pointer forms of value constants dereferenced.
// A nil pointer yields nil.
func Canonical(c Constant) Constant {
	switch cc := c.(type) {
	case *BoolConstant:
		if cc == nil {
			return nil
		}
		return *cc
	case *IntConstant:
		if cc == nil {
			return nil
		}
		return *cc
	case *DoubleConstant:
		if cc == nil {
			return nil
		}
		return *cc
	case *StringConstant:
		if cc == nil {
			return nil
		}
		return *cc
	case *Identifier:
		if cc == nil {
			return nil
		}
		return *cc
	}
	return c
}

// CanonicalType is Canonical for type expressions.
func CanonicalType(t FieldType) FieldType {
	if bt, ok := t.(*BaseType); ok {
		if bt == nil {
			return nil
		}
		return *bt
	}
	return t
}

// CanonicalFunctionType also folds *VoidType into Void.
func CanonicalFunctionType(t FunctionType) FunctionType {
	switch tt := t.(type) {
	case *VoidType:
		return Void
	case FieldType:
		if ft := CanonicalType(tt); ft != nil {
			return ft.(FunctionType)
		}
		return nil
	}
	return t
}
