// Package mermaid renders a schema graph as a Mermaid erDiagram.
package mermaid

import (
	"fmt"
	"io"
	"strings"

	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
)

func init() {
	render.Register("mermaid", Renderer{})
}

// Renderer emits Mermaid erDiagram text.
type Renderer struct{}

// Render implements render.Renderer.
func (Renderer) Render(w io.Writer, g *render.Graph, opts render.Options) error {
	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "---\ntitle: %s\n---\n", opts.Title)
	}
	b.WriteString("erDiagram\n")
	for _, m := range g.Models {
		writeEntity(&b, m.Name, m.Fields, opts)
	}
	for _, v := range g.Views {
		writeEntity(&b, v.Name, v.Fields, opts)
	}
	for _, e := range g.Enums {
		fmt.Fprintf(&b, "    %s {\n", ident(e.Name))
		if !opts.SkipFields {
			for _, v := range e.Values {
				fmt.Fprintf(&b, "        value %s\n", ident(v))
			}
		}
		b.WriteString("    }\n")
	}
	for _, e := range g.Edges {
		label := e.Field
		if label == "" {
			label = strings.ToLower(e.Cardinality.String())
		}
		fmt.Fprintf(&b, "    %s %s %s : \"%s\"\n", ident(e.From), glyph(e.Cardinality), ident(e.To), label)
	}
	for _, e := range g.EnumEdges {
		fmt.Fprintf(&b, "    %s ||--|| %s : \"%s\"\n", ident(e.Entity), ident(e.Enum), e.Field)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntity(b *strings.Builder, name string, fields []*schema.Field, opts render.Options) {
	fmt.Fprintf(b, "    %s {\n", ident(name))
	if !opts.SkipFields {
		for _, f := range fields {
			if f.IsRelation {
				continue
			}
			fmt.Fprintf(b, "        %s %s%s\n", ident(f.Type), ident(f.Name), marker(f))
		}
	}
	b.WriteString("    }\n")
}

// glyph returns the crow's-foot notation for the edge: the From side is
// the "one" side of one-to-many edges.
func glyph(c schema.Cardinality) string {
	switch c {
	case schema.O2O:
		return "||--||"
	case schema.M2M:
		return "}o--o{"
	default:
		return "||--o{"
	}
}

func marker(f *schema.Field) string {
	switch {
	case f.PrimaryKey:
		return " PK"
	case f.IsForeignKey:
		return " FK"
	case f.Unique:
		return " UK"
	}
	return ""
}

// ident makes a name safe for Mermaid: anything beyond identifier
// characters is replaced, since erDiagram has no quoting for attribute
// rows.
func ident(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}
