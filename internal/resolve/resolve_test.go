package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlc/internal/ast"
	"idlc/internal/testkit"
)

func ref(name string) *ast.ReferenceType { return &ast.ReferenceType{Name: name} }

func field(id int16, name string, t ast.FieldType) *ast.Field {
	return &ast.Field{ID: id, Name: name, Type: t}
}

func include(prefix string, doc *ast.Document) *ast.Include {
	return &ast.Include{Path: prefix + ".thrift", Prefix: prefix, Doc: doc}
}

func colorEnum() *ast.Enum {
	return &ast.Enum{Name: "Color", Values: []ast.EnumValue{
		{Name: "RED", Value: 0},
		{Name: "GREEN", Value: 1},
		{Name: "BLUE", Value: 2},
	}}
}

func resolveDoc(t *testing.T, doc *ast.Document) *Resolved {
	t.Helper()
	res, err := Document(context.Background(), doc, Options{})
	require.NoError(t, err)
	require.NoError(t, testkit.CheckResolved(res.Doc))
	return res
}

func requireKind(t *testing.T, err error, kind Kind, name string) *Error {
	t.Helper()
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, kind, re.Kind, "error: %v", err)
	if name != "" {
		assert.Equal(t, name, re.Name, "error: %v", err)
	}
	return re
}

func TestTypedefResolvesToTarget(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "MyInt", Type: ast.TI32},
		&ast.Typedef{Name: "Ints", Type: &ast.ListType{Elem: ref("MyInt")}},
	}})

	got, err := res.Resolver.LookupType("Ints")
	require.NoError(t, err)
	assert.Equal(t, &ast.ListType{Elem: ast.TI32}, got)
	assert.Equal(t, &ast.Typedef{Name: "Ints", Type: &ast.ListType{Elem: ast.TI32}}, res.Doc.Defs[1])
}

func TestForwardReferenceRejected(t *testing.T) {
	_, err := Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "A", Type: ref("B")},
		&ast.Typedef{Name: "B", Type: ast.TString},
	}}, Options{})

	re := requireKind(t, err, TypeNotFound, "B")
	assert.Equal(t, "A", re.Definition)
	assert.True(t, errors.Is(err, ErrTypeNotFound))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
}

func TestStructSelfReferenceUnsupported(t *testing.T) {
	_, err := Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Struct{Name: "Node", Fields: []*ast.Field{field(1, "next", ref("Node"))}},
	}}, Options{})
	requireKind(t, err, TypeNotFound, "Node")
}

func TestQualifiedLookup(t *testing.T) {
	a := &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "MyInt", Type: ast.TI32},
	}}
	b := resolveDoc(t, &ast.Document{
		Headers: []ast.Header{include("a", a)},
		Defs: []ast.Definition{
			&ast.Struct{Name: "S", Fields: []*ast.Field{field(1, "n", ref("a.MyInt"))}},
		},
	})

	s := b.Doc.Defs[0].(*ast.Struct)
	assert.Equal(t, ast.TI32, s.Fields[0].Type)
}

func TestQualifiedNominalTypeCarriesScope(t *testing.T) {
	inner := &ast.Document{Defs: []ast.Definition{
		&ast.Struct{Name: "Point", Fields: []*ast.Field{field(1, "x", ast.TDouble)}},
	}}
	middle := &ast.Document{Headers: []ast.Header{include("geo", inner)}}
	res := resolveDoc(t, &ast.Document{
		Headers: []ast.Header{include("shapes", middle)},
		Defs: []ast.Definition{
			&ast.Typedef{Name: "P", Type: ref("shapes.geo.Point")},
			&ast.Typedef{Name: "Ps", Type: &ast.ListType{Elem: ref("shapes.geo.Point")}},
		},
	})

	p := res.Doc.Defs[0].(*ast.Typedef).Type.(*ast.StructType)
	assert.Equal(t, "shapes.geo", p.Scope)
	assert.Equal(t, "Point", p.Def.DefName())
	assert.Equal(t, "shapes.geo.Point", p.String())

	geo, ok := res.Resolver.Include("shapes")
	require.True(t, ok)
	inc, ok := geo.Resolver.Include("geo")
	require.True(t, ok)
	declared, err := inc.Resolver.LookupType("Point")
	require.NoError(t, err)
	assert.Same(t, declared.(*ast.StructType).Def, p.Def)
}

func TestQualifiedTypeNotFoundKeepsFullPath(t *testing.T) {
	inner := &ast.Document{}
	middle := &ast.Document{Headers: []ast.Header{include("c", inner)}}

	tests := []struct {
		ref  string
		kind Kind
		name string
	}{
		{"b.Missing", TypeNotFound, "b.Missing"},
		{"b.c.Missing", TypeNotFound, "b.c.Missing"},
		{"b.nope.Missing", UndefinedSymbol, "nope"},
		{"zz.Missing", UndefinedSymbol, "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := Document(context.Background(), &ast.Document{
				Headers: []ast.Header{include("b", middle)},
				Defs:    []ast.Definition{&ast.Typedef{Name: "T", Type: ref(tt.ref)}},
			}, Options{})
			requireKind(t, err, tt.kind, tt.name)
		})
	}
}

func TestIncludesAreNotTransitive(t *testing.T) {
	c := &ast.Document{Defs: []ast.Definition{&ast.Struct{Name: "Foo"}}}
	b := &ast.Document{Headers: []ast.Header{include("C", c)}}

	_, err := Document(context.Background(), &ast.Document{
		Headers: []ast.Header{include("B", b)},
		Defs:    []ast.Definition{&ast.Struct{Name: "A", Fields: []*ast.Field{field(1, "foo", ref("C.Foo"))}}},
	}, Options{})
	requireKind(t, err, UndefinedSymbol, "C")

	// reachable through the prefix chain
	resolveDoc(t, &ast.Document{
		Headers: []ast.Header{include("B", b)},
		Defs:    []ast.Definition{&ast.Struct{Name: "A", Fields: []*ast.Field{field(1, "foo", ref("B.C.Foo"))}}},
	})
}

func TestIncludeStartsFromEmptySnapshot(t *testing.T) {
	included := &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "UsesOuter", Type: ref("Outer")},
	}}
	_, err := Empty().
		withType("Outer", ast.TString).
		ResolveDocument(context.Background(), &ast.Document{
			Headers: []ast.Header{include("inc", included)},
		}, Options{})

	re := requireKind(t, err, TypeNotFound, "Outer")
	assert.Equal(t, []string{"inc"}, re.Includes)
	assert.Equal(t, "inc.UsesOuter", re.Where())
	assert.Equal(t, "inc.UsesOuter: type not found: Outer", err.Error())
}

func TestEnumConstants(t *testing.T) {
	shared := &ast.Document{Defs: []ast.Definition{colorEnum()}}

	tests := []struct {
		name     string
		typ      ast.FieldType
		value    string
		wantErr  Kind
		errName  string
		wantName string
	}{
		{name: "qualified by enum", typ: ref("Color"), value: "Color.RED", wantName: "RED"},
		{name: "bare value", typ: ref("Color"), value: "GREEN", wantName: "GREEN"},
		{name: "unknown value", typ: ref("Color"), value: "Color.PURPLE", wantErr: UndefinedSymbol, errName: "PURPLE"},
		{name: "case sensitive", typ: ref("Color"), value: "red", wantErr: UndefinedSymbol, errName: "red"},
		{name: "wrong enum", typ: ref("Color"), value: "Shade.RED", wantErr: UndefinedSymbol, errName: "Shade"},
		{name: "scoped", typ: ref("shared.Color"), value: "shared.Color.BLUE", wantName: "BLUE"},
		{name: "scoped enum name only", typ: ref("shared.Color"), value: "Color.BLUE", wantName: "BLUE"},
		{name: "scope names other enum", typ: ref("shared.Color"), value: "local.Color.BLUE", wantErr: UndefinedSymbol, errName: "local.Color"},
		{name: "scope names local enum", typ: ref("Color"), value: "shared.Color.RED", wantErr: UndefinedSymbol, errName: "shared.Color"},
		{name: "not an enum", typ: ast.TI32, value: "Color.RED", wantErr: UndefinedSymbol, errName: "Color.RED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &ast.Document{
				Headers: []ast.Header{include("shared", shared)},
				Defs: []ast.Definition{
					colorEnum(),
					&ast.Const{Name: "DEFAULT", Type: tt.typ, Value: ast.Identifier{Name: tt.value}},
				},
			}
			res, err := Document(context.Background(), doc, Options{})
			if tt.wantErr != 0 {
				re := requireKind(t, err, tt.wantErr, tt.errName)
				assert.Equal(t, "DEFAULT", re.Definition)
				return
			}
			require.NoError(t, err)
			c, ok := res.Resolver.LookupConst("DEFAULT")
			require.True(t, ok)
			ev, ok := c.Value.(*ast.EnumValueConstant)
			require.True(t, ok, "got %T", c.Value)
			assert.Equal(t, "Color", ev.Enum.Name)
			assert.Equal(t, tt.wantName, ev.Value.Name)
			assert.Same(t, c.Type.(*ast.EnumType).Def, ev.Enum)
		})
	}
}

func TestEnumDefaultInStructField(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		colorEnum(),
		&ast.Struct{Name: "Pixel", Fields: []*ast.Field{{
			ID: 1, Name: "color", Type: ref("Color"), Default: ast.Identifier{Name: "Color.BLUE"},
		}}},
	}})

	f := res.Doc.Defs[1].(*ast.Struct).Fields[0]
	assert.Equal(t, ast.EnumValue{Name: "BLUE", Value: 2}, f.Default.(*ast.EnumValueConstant).Value)
}

func TestContainerConstants(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		colorEnum(),
		&ast.Const{
			Name: "WEIGHTS",
			Type: &ast.MapType{Key: ref("Color"), Value: &ast.ListType{Elem: ast.TI32}},
			Value: &ast.MapConstant{Entries: []ast.MapEntry{
				{Key: ast.Identifier{Name: "RED"}, Value: &ast.ListConstant{Elems: []ast.Constant{ast.IntConstant{Value: 1}}}},
				{Key: ast.Identifier{Name: "Color.GREEN"}, Value: &ast.ListConstant{}},
			}},
		},
	}})

	c, _ := res.Resolver.LookupConst("WEIGHTS")
	m := c.Value.(*ast.MapConstant)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "Color.RED", m.Entries[0].Key.String())
	assert.Equal(t, "Color.GREEN", m.Entries[1].Key.String())
	assert.Equal(t, "[1]", m.Entries[0].Value.String())
}

func TestShapeMismatch(t *testing.T) {
	mapLit := &ast.MapConstant{Entries: []ast.MapEntry{
		{Key: ast.StringConstant{Value: "a"}, Value: ast.IntConstant{Value: 1}},
	}}
	_, err := Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Struct{Name: "S", Fields: []*ast.Field{{
			ID: 1, Name: "xs", Type: &ast.ListType{Elem: ast.TI32}, Default: mapLit,
		}}},
	}}, Options{})

	re := requireKind(t, err, TypeMismatch, "")
	assert.Equal(t, &ast.ListType{Elem: ast.TI32}, re.Expected)
	assert.Equal(t, mapLit, re.Found)
	assert.Equal(t, `S: type mismatch: expecting list<i32>, found {"a": 1}`, err.Error())

	_, err = Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "M", Type: &ast.MapType{Key: ast.TString, Value: ast.TI32}, Value: &ast.ListConstant{}},
	}}, Options{})
	requireKind(t, err, TypeMismatch, "")

	// sets take no list literal here either
	_, err = Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "S", Type: &ast.SetType{Elem: ast.TI32}, Value: &ast.ListConstant{}},
	}}, Options{})
	requireKind(t, err, TypeMismatch, "")
}

func TestScalarConstantsPassThrough(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "BIG", Type: ast.TByte, Value: ast.IntConstant{Value: 1 << 40}},
		&ast.Const{Name: "NAME", Type: ast.TI32, Value: ast.StringConstant{Value: "x"}},
	}})
	c, _ := res.Resolver.LookupConst("BIG")
	assert.Equal(t, ast.IntConstant{Value: 1 << 40}, c.Value)
}

func TestRedefinitionLastBindingWins(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "Id", Type: ast.TI32},
		&ast.Typedef{Name: "A", Type: ref("Id")},
		&ast.Typedef{Name: "Id", Type: ast.TString},
		&ast.Typedef{Name: "B", Type: ref("Id")},
	}})

	a, _ := res.Resolver.LookupType("A")
	b, _ := res.Resolver.LookupType("B")
	assert.Equal(t, ast.TI32, a)
	assert.Equal(t, ast.TString, b)
	assert.Len(t, res.Doc.Defs, 4)
}

func TestDefinitionBindings(t *testing.T) {
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		&ast.Senum{Name: "Legacy", Values: []string{"a", "b"}},
		&ast.Exception{Name: "Oops", Fields: []*ast.Field{field(1, "msg", ast.TString)}},
		&ast.Union{Name: "Either", Fields: []*ast.Field{field(1, "l", ref("Legacy")), field(2, "o", ref("Oops"))}},
	}})

	legacy, _ := res.Resolver.LookupType("Legacy")
	assert.Equal(t, ast.TString, legacy)

	oops, _ := res.Resolver.LookupType("Oops")
	assert.Same(t, res.Doc.Defs[1], oops.(*ast.StructType).Def)

	either := res.Doc.Defs[2].(*ast.Union)
	assert.Equal(t, ast.TString, either.Fields[0].Type)
	assert.Equal(t, "Oops", either.Fields[1].Type.String())
}

func TestServiceResolvedButNotBound(t *testing.T) {
	doc := &ast.Document{Defs: []ast.Definition{
		&ast.Struct{Name: "User"},
		&ast.Exception{Name: "NotFound"},
		&ast.Service{
			Name:   "Users",
			Parent: &ast.ServiceParent{Name: "Base", Prefix: "common"},
			Functions: []*ast.Function{
				{
					Name:   "get",
					Return: ref("User"),
					Args:   []*ast.Field{field(1, "id", ast.TI64)},
					Throws: []*ast.Field{field(1, "nf", ref("NotFound"))},
				},
				{Name: "ping", Return: ast.Void, Oneway: true},
			},
		},
	}}
	res := resolveDoc(t, doc)

	svc := res.Doc.Defs[2].(*ast.Service)
	assert.Equal(t, &ast.ServiceParent{Name: "Base", Prefix: "common"}, svc.Parent)
	assert.Equal(t, "User", svc.Functions[0].Return.String())
	assert.Equal(t, "NotFound", svc.Functions[0].Throws[0].Type.String())
	assert.Equal(t, ast.Void, svc.Functions[1].Return)

	_, err := res.Resolver.LookupType("Users")
	requireKind(t, err, TypeNotFound, "Users")
}

type opaque struct{ name string }

func (o *opaque) DefName() string { return o.name }

func TestUnknownDefinitionPassesThrough(t *testing.T) {
	def := &opaque{name: "x"}
	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{def}})
	assert.Same(t, def, res.Doc.Defs[0])
	types, consts, includes := res.Resolver.Len()
	assert.Zero(t, types+consts+includes)
}

func TestResolutionIsIdempotent(t *testing.T) {
	shared := &ast.Document{Defs: []ast.Definition{colorEnum(), &ast.Typedef{Name: "Id", Type: ast.TI64}}}
	doc := &ast.Document{
		Headers: []ast.Header{
			&ast.Namespace{Scope: "go", Name: "demo"},
			include("shared", shared),
		},
		Defs: []ast.Definition{
			&ast.Struct{Name: "User", Fields: []*ast.Field{
				field(1, "id", ref("shared.Id")),
				{ID: 2, Name: "fav", Type: ref("shared.Color"), Default: ast.Identifier{Name: "shared.Color.RED"}},
				field(3, "tags", &ast.MapType{Key: ast.TString, Value: &ast.SetType{Elem: ref("shared.Id")}}),
			}},
			&ast.Const{Name: "C", Type: &ast.ListType{Elem: ref("shared.Color")}, Value: &ast.ListConstant{Elems: []ast.Constant{ast.Identifier{Name: "GREEN"}}}},
		},
	}
	first := resolveDoc(t, doc)
	second := resolveDoc(t, first.Doc)
	assert.Equal(t, first.Doc, second.Doc)
}

func TestDanglingReferencesDetected(t *testing.T) {
	err := testkit.CheckResolved(&ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "T", Type: &ast.ListType{Elem: ref("X")}},
	}})
	var de *testkit.DanglingError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "T", de.Path)
}

func TestPointerFormsAreCanonicalized(t *testing.T) {
	_, err := Document(context.Background(), &ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "X", Type: ast.TI32, Value: &ast.Identifier{Name: "NOPE"}},
	}}, Options{})
	requireKind(t, err, UndefinedSymbol, "NOPE")

	res := resolveDoc(t, &ast.Document{Defs: []ast.Definition{
		colorEnum(),
		&ast.Const{Name: "C", Type: ref("Color"), Value: &ast.Identifier{Name: "Color.RED"}},
		&ast.Const{Name: "N", Type: &ast.BaseType{Kind: ast.KindI64}, Value: &ast.IntConstant{Value: 7}},
	}})
	c, _ := res.Resolver.LookupConst("C")
	assert.IsType(t, &ast.EnumValueConstant{}, c.Value)
	n, _ := res.Resolver.LookupConst("N")
	assert.Equal(t, ast.TI64, n.Type)
	assert.Equal(t, ast.IntConstant{Value: 7}, n.Value)
}

func TestCheckerFindsPointerIdentifier(t *testing.T) {
	err := testkit.CheckResolved(&ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "X", Type: ast.TI32, Value: &ast.Identifier{Name: "NOPE"}},
	}})
	var de *testkit.DanglingError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "X", de.Path)
}

func TestInputIsNotMutated(t *testing.T) {
	f := field(1, "id", ref("Id"))
	doc := &ast.Document{Defs: []ast.Definition{
		&ast.Typedef{Name: "Id", Type: ast.TI32},
		&ast.Struct{Name: "S", Fields: []*ast.Field{f}},
	}}
	resolveDoc(t, doc)
	assert.Equal(t, ref("Id"), f.Type)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	base := Empty()
	_, next, err := base.ResolveDefinition(&ast.Typedef{Name: "A", Type: ast.TBool})
	require.NoError(t, err)
	_, branch, err := next.ResolveDefinition(&ast.Typedef{Name: "A", Type: ast.TDouble})
	require.NoError(t, err)

	_, err = base.LookupType("A")
	requireKind(t, err, TypeNotFound, "A")
	got, _ := next.LookupType("A")
	assert.Equal(t, ast.TBool, got)
	got, _ = branch.LookupType("A")
	assert.Equal(t, ast.TDouble, got)
}

func TestConcurrentIncludesReportFirstErrorInHeaderOrder(t *testing.T) {
	bad := func(name string) *ast.Document {
		return &ast.Document{Defs: []ast.Definition{&ast.Typedef{Name: "T", Type: ref(name)}}}
	}
	var headers []ast.Header
	headers = append(headers, include("ok1", &ast.Document{}))
	headers = append(headers, include("first", bad("Missing1")))
	for i := 0; i < 8; i++ {
		headers = append(headers, include("late", bad("Missing2")))
	}

	for i := 0; i < 20; i++ {
		_, err := Document(context.Background(), &ast.Document{Headers: headers}, Options{Jobs: 4})
		re := requireKind(t, err, TypeNotFound, "Missing1")
		assert.Equal(t, []string{"first"}, re.Includes)
	}
}

func TestConcurrentIncludesMergeInHeaderOrder(t *testing.T) {
	a := &ast.Document{Defs: []ast.Definition{&ast.Typedef{Name: "T", Type: ast.TI16}}}
	b := &ast.Document{Defs: []ast.Definition{&ast.Typedef{Name: "T", Type: ast.TI64}}}
	res, err := Document(context.Background(), &ast.Document{
		Headers: []ast.Header{include("x", a), include("y", a), include("x", b)},
		Defs:    []ast.Definition{&ast.Typedef{Name: "U", Type: ref("x.T")}},
	}, Options{Jobs: 3})
	require.NoError(t, err)

	u, _ := res.Resolver.LookupType("U")
	assert.Equal(t, ast.TI64, u)
	assert.Len(t, res.Doc.Includes(), 3)
}

func TestReachable(t *testing.T) {
	shared := &ast.Document{Defs: []ast.Definition{
		colorEnum(),
		&ast.Const{Name: "MAX", Type: ast.TI32, Value: ast.IntConstant{Value: 10}},
	}}
	res := resolveDoc(t, &ast.Document{
		Headers: []ast.Header{include("shared", shared)},
		Defs: []ast.Definition{
			&ast.Struct{Name: "User"},
			&ast.Typedef{Name: "Person", Type: ref("User")},
			&ast.Typedef{Name: "Hue", Type: ref("shared.Color")},
			&ast.Exception{Name: "Boom"},
		},
	})

	var names, kinds []string
	for _, s := range res.Reachable() {
		names = append(names, s.Name)
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"Boom", "User", "shared.Color", "shared.MAX"}, names)
	assert.Equal(t, []string{"exception", "struct", "enum", "const"}, kinds)
}
