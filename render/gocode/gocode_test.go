package gocode

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
	"github.com/erdviz/erdviz/traverse"
)

func testGraph(t *testing.T, depth int) *render.Graph {
	t.Helper()
	s := &schema.ParsedSchema{}
	s.AddModel(&schema.Model{
		Name: "User",
		Fields: []*schema.Field{
			{Name: "id", Type: "Int", Required: true, PrimaryKey: true},
			{Name: "email", Type: "String", Required: true},
			{Name: "bio", Type: "String"},
			{Name: "role", Type: "Role", Required: true},
			{Name: "createdAt", Type: "DateTime", Required: true},
			{Name: "posts", Type: "Post", List: true, IsRelation: true},
		},
		Relations: []*schema.Relation{
			{Entity: "Post", Cardinality: schema.O2M, Field: "posts"},
		},
	})
	s.AddModel(&schema.Model{
		Name: "Post",
		Fields: []*schema.Field{
			{Name: "id", Type: "Int", Required: true, PrimaryKey: true},
			{Name: "meta", Type: "Json"},
			{Name: "author", Type: "User", Required: true, IsRelation: true},
		},
		Relations: []*schema.Relation{
			{Entity: "User", Cardinality: schema.O2M, Field: "author", Owner: true},
		},
	})
	s.AddEnum(&schema.Enum{Name: "Role", Values: []string{"ADMIN", "MEMBER"}})
	r, err := traverse.Traverse(s, "User", traverse.WithMaxDepth(depth))
	require.NoError(t, err)
	return render.NewGraph(r, s)
}

func TestRender(t *testing.T) {
	require := require.New(t)
	var b strings.Builder
	err := Renderer{}.Render(&b, testGraph(t, 3), render.Options{Package: "blog"})
	require.NoError(err)
	out := b.String()

	require.Contains(out, "package blog")
	require.Contains(out, "Code generated by erdviz. DO NOT EDIT.")
	require.Contains(out, "type Role string")
	require.Contains(out, "type User struct {")
	require.Contains(out, "type Post struct {")
	require.Contains(out, `json:"created_at"`)

	// gofmt pads declaration columns, so match names and types loosely.
	for _, pat := range []string{
		`RoleAdmin\s+Role = "ADMIN"`,
		`ID\s+int\b`,
		`Bio\s+\*string`,
		`Role\s+Role\b`,
		`CreatedAt\s+time\.Time`,
		`Posts\s+\[\]\*Post`,
		`Author\s+\*User`,
		`Meta\s+\*json\.RawMessage`,
	} {
		require.Regexp(pat, out)
	}

	// The emitted source must parse as Go.
	_, perr := parser.ParseFile(token.NewFileSet(), "blog.go", out, 0)
	require.NoError(perr)
}

func TestRenderDefaultPackage(t *testing.T) {
	require := require.New(t)
	var b strings.Builder
	err := Renderer{}.Render(&b, testGraph(t, 0), render.Options{})
	require.NoError(err)
	out := b.String()
	require.Contains(out, "package model")
	// The relation field to the excluded Post model is dropped.
	require.NotContains(out, "Posts")
}
