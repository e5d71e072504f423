package astio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlc/internal/ast"
	"idlc/internal/resolve"
	"idlc/internal/testkit"
)

const userJSON = `{
  "headers": [
    {"kind": "namespace", "scope": "go", "name": "users"},
    {"kind": "include", "path": "shared.thrift"}
  ],
  "defs": [
    {"kind": "enum", "name": "Role", "values": [
      {"name": "GUEST"}, {"name": "ADMIN", "value": 10}, {"name": "ROOT"}
    ]},
    {"kind": "typedef", "name": "Tags", "type": {"kind": "set", "elem": {"kind": "string"}}},
    {"kind": "struct", "name": "User", "fields": [
      {"id": 1, "name": "id", "type": {"kind": "ref", "name": "shared.Id"}, "req": "required"},
      {"id": 2, "name": "role", "type": {"kind": "ref", "name": "Role"},
       "default": {"kind": "ident", "name": "Role.GUEST"}},
      {"id": 3, "name": "scores", "type": {"kind": "map", "key": {"kind": "string"}, "value": {"kind": "double"}},
       "default": {"kind": "map", "entries": [{"key": {"kind": "string", "string": "a"}, "value": {"kind": "double", "double": 1.5}}]}}
    ]},
    {"kind": "service", "name": "Users", "extends": "shared.Base", "functions": [
      {"name": "get", "return": {"kind": "ref", "name": "User"},
       "args": [{"id": 1, "name": "id", "type": {"kind": "i64"}}]},
      {"name": "touch", "return": {"kind": "void"}, "oneway": true}
    ]}
  ]
}`

const sharedJSON = `{
  "defs": [
    {"kind": "typedef", "name": "Id", "type": {"kind": "i64"}},
    {"kind": "exception", "name": "Oops", "fields": [{"id": 1, "name": "msg", "type": {"kind": "string"}}]}
  ]
}`

func writeTree(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode(strings.NewReader(userJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "users", doc.Namespace("go"))
	require.Len(t, doc.Includes(), 1)
	assert.Nil(t, doc.Includes()[0].Doc)

	role := doc.Defs[0].(*ast.Enum)
	assert.Equal(t, []ast.EnumValue{{Name: "GUEST", Value: 0}, {Name: "ADMIN", Value: 10}, {Name: "ROOT", Value: 11}}, role.Values)

	user := doc.Defs[2].(*ast.Struct)
	assert.Equal(t, ast.Required, user.Fields[0].Requiredness)
	assert.Equal(t, &ast.ReferenceType{Name: "shared.Id"}, user.Fields[0].Type)
	assert.Equal(t, ast.Identifier{Name: "Role.GUEST"}, user.Fields[1].Default)

	svc := doc.Defs[3].(*ast.Service)
	assert.Equal(t, &ast.ServiceParent{Prefix: "shared", Name: "Base"}, svc.Parent)
	assert.Equal(t, ast.Void, svc.Functions[1].Return)
	assert.True(t, svc.Functions[1].Oneway)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"unknown def", `{"defs":[{"kind":"widget","name":"W"}]}`, `unknown definition kind "widget"`},
		{"unknown type", `{"defs":[{"kind":"typedef","name":"T","type":{"kind":"u128"}}]}`, `unknown type kind "u128"`},
		{"void field", `{"defs":[{"kind":"typedef","name":"T","type":{"kind":"void"}}]}`, "void is only valid"},
		{"enum overflow", `{"defs":[{"kind":"enum","name":"E","values":[{"name":"X","value":4294967296}]}]}`, "E.X: enum value 4294967296 out of range"},
		{"field id overflow", `{"defs":[{"kind":"struct","name":"S","fields":[{"id":70000,"name":"f","type":{"kind":"i32"}}]}]}`, "S.f: field id 70000 out of range"},
		{"unknown field", `{"defs":[],"extra":1}`, "decode json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.json), FormatJSON)
			require.Error(t, err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolvedTreeReencodesAsReferences(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "shared.json"), sharedJSON)
	writeTree(t, filepath.Join(dir, "user.json"), userJSON)

	src, err := NewLoader().Load(filepath.Join(dir, "user.json"))
	require.NoError(t, err)
	first, err := resolve.Document(context.Background(), src.Doc, resolve.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, first.Doc, FormatMsgpack))
	decoded, err := Decode(&buf, FormatMsgpack)
	require.NoError(t, err)

	// typedefs are transparent, so the alias is gone from the re-encoded tree
	user := decoded.Defs[2].(*ast.Struct)
	assert.Equal(t, ast.TI64, user.Fields[0].Type)
	assert.Equal(t, ast.Identifier{Name: "Role.GUEST"}, user.Fields[1].Default)

	second, err := resolve.Document(context.Background(), decoded, resolve.Options{})
	require.NoError(t, err)
	require.NoError(t, testkit.CheckResolved(second.Doc))
	assert.Equal(t, first.Doc, second.Doc)
}

func TestEncodePointerFormsAndMissingNodes(t *testing.T) {
	var buf bytes.Buffer
	doc := &ast.Document{Defs: []ast.Definition{
		&ast.Const{Name: "ROLE", Type: &ast.BaseType{Kind: ast.KindString}, Value: &ast.Identifier{Name: "Role.GUEST"}},
	}}
	require.NoError(t, Encode(&buf, doc, FormatJSON))
	decoded, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	c := decoded.Defs[0].(*ast.Const)
	assert.Equal(t, ast.TString, c.Type)
	assert.Equal(t, ast.Identifier{Name: "Role.GUEST"}, c.Value)

	tests := []struct {
		name string
		def  ast.Definition
		want string
	}{
		{"field without type", &ast.Struct{Name: "S", Fields: []*ast.Field{{ID: 1, Name: "x"}}}, `definition "S": field "x": cannot encode type <nil>`},
		{"nil identifier", &ast.Const{Name: "C", Type: ast.TI32, Value: (*ast.Identifier)(nil)}, `definition "C": cannot encode constant *ast.Identifier`},
		{"nested list element", &ast.Typedef{Name: "L", Type: &ast.ListType{}}, `definition "L": cannot encode type <nil>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Encode(&out, &ast.Document{Defs: []ast.Definition{tt.def}}, FormatMsgpack)
			require.EqualError(t, err, tt.want)
			assert.Zero(t, out.Len())
		})
	}
}

func TestLoaderSearchesIncludeDirs(t *testing.T) {
	root := t.TempDir()
	shared := filepath.Join(root, "vendor", "shared.idlast")
	main := filepath.Join(root, "src", "user.json")

	sharedDoc, err := Decode(strings.NewReader(sharedJSON), FormatJSON)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sharedDoc, FormatMsgpack))
	writeTree(t, shared, buf.String())
	writeTree(t, main, userJSON)

	_, err = NewLoader().Load(main)
	var nf *IncludeNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "shared.thrift", nf.Include)

	loader := NewLoader(filepath.Join(root, "vendor"))
	src, err := loader.Load(main)
	require.NoError(t, err)
	inc := src.Doc.Includes()[0]
	assert.Equal(t, "shared", inc.Prefix)
	require.NotNil(t, inc.Doc)
	assert.Len(t, inc.Doc.Defs, 2)

	again, err := loader.Load(main)
	require.NoError(t, err)
	assert.Same(t, src, again)

	// the digest covers included content
	other := NewLoader(filepath.Join(root, "vendor"))
	writeTree(t, shared, strings.Replace(buf.String(), "Oops", "Oopz", 1))
	changed, err := other.Load(main)
	require.NoError(t, err)
	assert.NotEqual(t, src.Digest, changed.Digest)
}

func TestLoaderDetectsCycles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "a.json"), `{"headers":[{"kind":"include","path":"b.thrift"}]}`)
	writeTree(t, filepath.Join(dir, "b.json"), `{"headers":[{"kind":"include","path":"a.thrift"}]}`)

	_, err := NewLoader().Load(filepath.Join(dir, "a.json"))
	var ce *IncludeCycleError
	require.ErrorAs(t, err, &ce)
	require.Len(t, ce.Chain, 3)
	assert.Equal(t, ce.Chain[0], ce.Chain[2])
}

func TestDefaultPrefix(t *testing.T) {
	assert.Equal(t, "shared", DefaultPrefix("common/shared.thrift"))
	assert.Equal(t, "shared", DefaultPrefix("shared"))
	assert.Equal(t, FormatJSON, FormatForPath("x/y.JSON"))
	assert.Equal(t, FormatMsgpack, FormatForPath("x/y.idlast"))
}
