// Package gen drives the diagram pipeline end to end: it resolves a schema
// from a file or a live database, traverses it from a start entity, and
// writes one output file per requested format.
//
// Configuration comes from functional options, optionally layered on top of
// an .erdviz.yaml file:
//
//	cfg, err := gen.NewConfig(
//		gen.WithSchemaPath("schema.json"),
//		gen.WithStart("User"),
//		gen.WithFormats("mermaid", "dot"),
//	)
//	if err != nil {
//		return err
//	}
//	return gen.Generate(ctx, cfg)
//
// Renderers register themselves on import; callers pull in the format
// packages they need, e.g. _ "github.com/erdviz/erdviz/render/mermaid".
package gen
