package testkit

import (
	"fmt"

	"idlc/internal/ast"
)

// DanglingError reports an unresolved node left in a resolved document.
type DanglingError struct {
	Path string
	Node ast.Node
}

func (e *DanglingError) Error() string {
	return fmt.Sprintf("%s: unresolved %T %q survived resolution", e.Path, e.Node, e.Node.String())
}

// CheckResolved verifies the post-resolution invariants of doc:
//  1. no ReferenceType in any type position, including included documents
//  2. no bare Identifier in any constant position
//  3. nominal types point at a definition
//
// It returns the first violation found, in walk order.
func CheckResolved(doc *ast.Document) error {
	var first error
	ast.Inspect(doc, func(path string, n ast.Node) bool {
		if first != nil {
			return false
		}
		switch nn := n.(type) {
		case *ast.ReferenceType, ast.Identifier, *ast.Identifier:
			first = &DanglingError{Path: path, Node: n}
			return false
		case *ast.StructType:
			if nn.Def == nil {
				first = fmt.Errorf("%s: struct type without definition", path)
			}
		case *ast.EnumType:
			if nn.Def == nil {
				first = fmt.Errorf("%s: enum type without definition", path)
			}
		case *ast.EnumValueConstant:
			if nn.Enum == nil {
				first = fmt.Errorf("%s: enum value %q without enum", path, nn.Value.Name)
			}
		}
		return first == nil
	})
	return first
}
