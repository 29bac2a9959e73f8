// Package gocode exports a schema graph as Go type declarations: a struct
// per model/view and a string-typed constant set per enum.
package gocode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
)

func init() {
	render.Register("go", Renderer{})
}

// DefaultPackage is used when the options carry no package name.
const DefaultPackage = "model"

// Renderer emits Go source.
type Renderer struct{}

// Render implements render.Renderer.
func (Renderer) Render(w io.Writer, g *render.Graph, opts render.Options) error {
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	included := make(map[string]bool)
	for _, m := range g.Models {
		included[m.Name] = true
	}
	for _, v := range g.Views {
		included[v.Name] = true
	}
	enums := make(map[string]bool)
	for _, e := range g.Enums {
		enums[e.Name] = true
	}

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by erdviz. DO NOT EDIT.")
	for _, e := range g.Enums {
		name := schema.Pascal(e.Name)
		f.Commentf("%s is the %q enum.", name, e.Name)
		f.Type().Id(name).String()
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, v := range e.Values {
				grp.Id(name + schema.Pascal(v)).Id(name).Op("=").Lit(v)
			}
		})
	}
	for _, m := range g.Models {
		writeStruct(f, m, included, enums)
	}
	for _, v := range g.Views {
		writeStruct(f, &v.Model, included, enums)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("erdviz: render go source: %w", err)
	}
	// goimports normalizes the output the same way generated clients are
	// formatted elsewhere in the ecosystem.
	formatted, err := imports.Process(pkg+".go", buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("erdviz: format go source: %w", err)
	}
	_, err = w.Write(formatted)
	return err
}

func writeStruct(f *jen.File, m *schema.Model, included, enums map[string]bool) {
	name := schema.Pascal(m.Name)
	if m.Documentation != "" {
		f.Commentf("%s: %s", name, m.Documentation)
	} else {
		f.Commentf("%s maps the %q entity.", name, m.Name)
	}
	f.Type().Id(name).StructFunc(func(grp *jen.Group) {
		for _, fd := range m.Fields {
			if fd.IsRelation && !included[fd.Type] {
				continue
			}
			grp.Id(schema.Pascal(fd.Name)).Add(goType(fd, enums)).Tag(map[string]string{"json": schema.Snake(fd.Name)})
		}
	})
}

// goType maps a field to its Go type, wrapping lists in slices and
// optional scalars in pointers.
func goType(f *schema.Field, enums map[string]bool) jen.Code {
	var elem jen.Code
	switch {
	case f.IsRelation:
		elem = jen.Op("*").Id(schema.Pascal(f.Type))
		if f.List {
			return jen.Index().Op("*").Id(schema.Pascal(f.Type))
		}
		return elem
	case enums[f.Type]:
		elem = jen.Id(schema.Pascal(f.Type))
	default:
		elem = scalarType(f.Type)
	}
	switch {
	case f.List:
		return jen.Index().Add(elem)
	case !f.Required:
		return jen.Op("*").Add(elem)
	}
	return elem
}

func scalarType(t string) jen.Code {
	switch t {
	case "Int":
		return jen.Int()
	case "BigInt":
		return jen.Int64()
	case "Float", "Decimal":
		return jen.Float64()
	case "Boolean":
		return jen.Bool()
	case "DateTime":
		return jen.Qual("time", "Time")
	case "Json":
		return jen.Qual("encoding/json", "RawMessage")
	case "Bytes":
		return jen.Index().Byte()
	default:
		return jen.String()
	}
}
