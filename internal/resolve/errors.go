package resolve

import (
	"errors"
	"fmt"
	"strings"

	"idlc/internal/ast"
	"idlc/internal/diag"
)

// Kind classifies resolution failures.
type Kind uint8

const (
	// TypeNotFound: a type name has no binding in the type namespace.
	TypeNotFound Kind = iota + 1
	// UndefinedSymbol: an include prefix, enum scope or enum value does not
	// exist, or an identifier appears where no enum is expected.
	UndefinedSymbol
	// TypeMismatch: a list or map literal does not match the expected type.
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case TypeNotFound:
		return "type not found"
	case UndefinedSymbol:
		return "undefined symbol"
	case TypeMismatch:
		return "type mismatch"
	}
	return "unknown resolve error"
}

// Code maps the kind onto its diagnostic code.
func (k Kind) Code() diag.Code {
	switch k {
	case TypeNotFound:
		return diag.SemaTypeNotFound
	case UndefinedSymbol:
		return diag.SemaUndefinedSymbol
	case TypeMismatch:
		return diag.SemaTypeMismatch
	}
	return diag.UnknownCode
}

// Error is the single error type returned by the resolver. Resolution stops
// at the first Error; there is no partial result.
type Error struct {
	Kind Kind
	// Name is the offending symbol for TypeNotFound and UndefinedSymbol.
	Name string
	// Expected and Found describe a TypeMismatch.
	Expected ast.FieldType
	Found    ast.Constant

	// Definition is the top-level definition being resolved when the error
	// was raised, empty for errors outside any definition.
	Definition string
	// Includes is the chain of include prefixes, outermost first, leading
	// to the document Definition belongs to.
	Includes []string
}

func (e *Error) Error() string {
	if where := e.Where(); where != "" {
		return where + ": " + e.Message()
	}
	return e.Message()
}

// Message describes the failure without its location.
func (e *Error) Message() string {
	if e.Kind == TypeMismatch {
		return fmt.Sprintf("%s: expecting %s, found %s", e.Kind, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

// Where returns the dotted location of the failing definition, including
// the include chain, e.g. "shared.User".
func (e *Error) Where() string {
	parts := make([]string, 0, len(e.Includes)+1)
	parts = append(parts, e.Includes...)
	if e.Definition != "" {
		parts = append(parts, e.Definition)
	}
	return strings.Join(parts, ".")
}

// Is matches errors by kind so callers can test errors.Is(err, resolve.ErrTypeNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Name == "" && t.Expected == nil && t.Found == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrTypeNotFound    = &Error{Kind: TypeNotFound}
	ErrUndefinedSymbol = &Error{Kind: UndefinedSymbol}
	ErrTypeMismatch    = &Error{Kind: TypeMismatch}
)

func typeNotFound(name string) *Error {
	return &Error{Kind: TypeNotFound, Name: name}
}

func undefinedSymbol(name string) *Error {
	return &Error{Kind: UndefinedSymbol, Name: name}
}

func typeMismatch(expected ast.FieldType, found ast.Constant) *Error {
	return &Error{Kind: TypeMismatch, Expected: expected, Found: found}
}

// inDefinition records the definition an error surfaced in. The innermost
// definition wins.
func inDefinition(err error, name string) error {
	var re *Error
	if !errors.As(err, &re) || re.Definition != "" {
		return err
	}
	cp := *re
	cp.Definition = name
	return &cp
}

// inInclude prepends an include prefix to the error's location.
func inInclude(err error, prefix string) error {
	var re *Error
	if !errors.As(err, &re) {
		return err
	}
	cp := *re
	cp.Includes = append([]string{prefix}, re.Includes...)
	return &cp
}
