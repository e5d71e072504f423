package ast

import (
	"strconv"
	"strings"
)

func (VoidType) String() string   { return "void" }
func (t BaseType) String() string { return t.Kind.String() }

func (t *ListType) String() string { return "list<" + typeString(t.Elem) + ">" }
func (t *SetType) String() string  { return "set<" + typeString(t.Elem) + ">" }
func (t *MapType) String() string {
	return "map<" + typeString(t.Key) + ", " + typeString(t.Value) + ">"
}

func (t *StructType) String() string {
	if t.Def == nil {
		return qualify(t.Scope, "<nil struct>")
	}
	return qualify(t.Scope, t.Def.DefName())
}

func (t *EnumType) String() string {
	if t.Def == nil {
		return qualify(t.Scope, "<nil enum>")
	}
	return qualify(t.Scope, t.Def.Name)
}

func (t *ReferenceType) String() string { return t.Name }

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

func typeString(t FieldType) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func (c BoolConstant) String() string {
	if c.Value {
		return "true"
	}
	return "false"
}

func (c IntConstant) String() string    { return strconv.FormatInt(c.Value, 10) }
func (c DoubleConstant) String() string { return strconv.FormatFloat(c.Value, 'g', -1, 64) }
func (c StringConstant) String() string { return strconv.Quote(c.Value) }
func (c Identifier) String() string     { return c.Name }

func (c *ListConstant) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range c.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(constString(e))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (c *MapConstant) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range c.Entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(constString(e.Key))
		sb.WriteString(": ")
		sb.WriteString(constString(e.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (c *EnumValueConstant) String() string {
	if c.Enum == nil {
		return c.Value.Name
	}
	return c.Enum.Name + "." + c.Value.Name
}

func constString(c Constant) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}
