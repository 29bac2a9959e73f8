// Package dot renders a schema graph as a Graphviz digraph with
// record-shaped entity nodes.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
)

func init() {
	render.Register("dot", Renderer{})
}

// Renderer emits Graphviz DOT text.
type Renderer struct{}

// Render implements render.Renderer.
func (Renderer) Render(w io.Writer, g *render.Graph, opts render.Options) error {
	var b strings.Builder
	b.WriteString("digraph erd {\n")
	if opts.Title != "" {
		fmt.Fprintf(&b, "    label=%q;\n    labelloc=t;\n", opts.Title)
	}
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=record, fontsize=10, fontname=\"Helvetica\"];\n")
	for _, m := range g.Models {
		writeNode(&b, m.Name, m.Fields, opts)
	}
	for _, v := range g.Views {
		writeNode(&b, v.Name, v.Fields, opts)
	}
	for _, e := range g.Enums {
		rows := make([]string, 0, len(e.Values))
		if !opts.SkipFields {
			rows = e.Values
		}
		fmt.Fprintf(&b, "    %q [label=\"{%s (enum)|%s}\", style=dashed];\n",
			e.Name, escape(e.Name), escape(strings.Join(rows, "\\l"))+"\\l")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "    %q -> %q [label=%q, taillabel=%q, headlabel=%q];\n",
			e.From, e.To, e.Field, tail(e.Cardinality), head(e.Cardinality))
	}
	for _, e := range g.EnumEdges {
		fmt.Fprintf(&b, "    %q -> %q [label=%q, style=dashed, arrowhead=none];\n",
			e.Entity, e.Enum, e.Field)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, name string, fields []*schema.Field, opts render.Options) {
	if opts.SkipFields {
		fmt.Fprintf(b, "    %q [label=%q];\n", name, name)
		return
	}
	var rows []string
	for _, f := range fields {
		if f.IsRelation {
			continue
		}
		row := fmt.Sprintf("%s : %s", f.Name, f.Type)
		if f.PrimaryKey {
			row += " PK"
		}
		rows = append(rows, escape(row))
	}
	fmt.Fprintf(b, "    %q [label=\"{%s|%s}\"];\n", name, escape(name), strings.Join(rows, "\\l")+"\\l")
}

func tail(c schema.Cardinality) string {
	if c == schema.M2M {
		return "*"
	}
	return "1"
}

func head(c schema.Cardinality) string {
	if c == schema.O2O {
		return "1"
	}
	return "*"
}

// escape protects record-label metacharacters.
func escape(s string) string {
	r := strings.NewReplacer("{", "\\{", "}", "\\}", "|", "\\|", "<", "\\<", ">", "\\>", `"`, `\"`)
	return r.Replace(s)
}
