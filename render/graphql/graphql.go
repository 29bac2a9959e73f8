// Package graphql exports a schema graph as GraphQL SDL: an object type
// per model/view and an enum type per enum. Useful for feeding the
// traversed subgraph into GraphQL tooling.
package graphql

import (
	"io"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
)

func init() {
	render.Register("graphql", Renderer{})
}

// Renderer emits GraphQL SDL.
type Renderer struct{}

// Render implements render.Renderer.
func (Renderer) Render(w io.Writer, g *render.Graph, opts render.Options) error {
	included := make(map[string]bool)
	for _, m := range g.Models {
		included[m.Name] = true
	}
	for _, v := range g.Views {
		included[v.Name] = true
	}
	for _, e := range g.Enums {
		included[e.Name] = true
	}

	doc := &ast.SchemaDocument{}
	for _, m := range g.Models {
		doc.Definitions = append(doc.Definitions, definition(m, included, opts))
	}
	for _, v := range g.Views {
		def := definition(&v.Model, included, opts)
		if def.Description == "" {
			def.Description = "Database view."
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, e := range g.Enums {
		def := &ast.Definition{Kind: ast.Enum, Name: e.Name, Description: e.Documentation}
		for _, v := range e.Values {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	formatter.NewFormatter(w).FormatSchemaDocument(doc)
	return nil
}

func definition(m *schema.Model, included map[string]bool, opts render.Options) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: m.Name, Description: m.Documentation}
	if opts.SkipFields {
		return def
	}
	for _, f := range m.Fields {
		// Relation fields pointing outside the graph have no type to
		// reference and are dropped.
		if f.IsRelation && !included[f.Type] {
			continue
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Documentation,
			Type:        fieldType(f, included),
		})
	}
	return def
}

// fieldType maps a schema field to a GraphQL type reference with list and
// non-null wrappers derived from the field flags.
func fieldType(f *schema.Field, included map[string]bool) *ast.Type {
	name := f.Type
	switch {
	case f.PrimaryKey:
		name = "ID"
	case f.IsRelation, included[name]:
		// Included entities and enums are referenced by name.
	default:
		name = scalar(f.Type)
	}
	if f.List {
		return ast.NonNullListType(ast.NonNullNamedType(name, nil), nil)
	}
	if f.Required {
		return ast.NonNullNamedType(name, nil)
	}
	return ast.NamedType(name, nil)
}

// scalar maps schema scalar names onto GraphQL built-ins. Anything
// unrecognized degrades to String so the emitted SDL always parses on its
// own.
func scalar(t string) string {
	switch t {
	case "Int", "BigInt":
		return "Int"
	case "Float", "Decimal":
		return "Float"
	case "Boolean":
		return "Boolean"
	}
	return "String"
}
