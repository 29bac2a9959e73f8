// Package traverse implements the entity-traversal engine: a depth-bounded
// breadth-first walk over a parsed schema graph.
//
// Starting from a named entity, [Traverse] discovers related models, views
// and enums level by level and returns them in BFS order, each exactly once,
// tagged with the depth at which it was first discovered. The result is the
// subgraph the renderers draw.
//
// # Edges
//
// Neighbor expansion depends on the entity kind:
//
//   - model/view: every related entity (relations are recorded on both
//     sides, so both directions are followed), then every enum referenced
//     by a field type, each in declaration order.
//   - enum: every model/view with a field of the enum's type (the inverse
//     of the field-type edge), models before views.
//
// # Purity
//
// Traverse is a pure function over an immutable schema snapshot: it keeps
// no global state, performs no I/O and never mutates its input. It is safe
// to call concurrently against the same schema as long as the schema is
// not mutated, which it never is after loading.
package traverse
