// Package erdviz generates entity-relationship diagrams from parsed
// schemas. The subpackages split the pipeline along its seams:
//
//   - [schema]: the in-memory schema model (models, views, enums, relations)
//   - [load]: schema sources, DMMF documents and live-database introspection
//   - [traverse]: the depth-bounded BFS engine selecting the subgraph to draw
//   - [render]: diagram backends (Mermaid, DOT, GraphQL SDL, Go code)
//   - [gen]: configuration and the export pipeline, including watch mode
//
// This root package holds the small set of interfaces shared across them.
package erdviz

// Version is the release version of erdviz.
const Version = "0.3.1"
