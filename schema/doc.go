// Package schema defines the in-memory representation of a parsed schema:
// models, views, enums, their fields and typed relations.
//
// Values of this package are produced by the loaders in package load
// (DMMF documents or live-database introspection) and consumed read-only
// by the traversal engine and the diagram renderers. Nothing here touches
// schema source text.
//
// # Entities
//
// The three entity kinds are closed over [Kind]:
//
//	KindModel  // a table-backed model
//	KindView   // structurally a model, backed by a database view
//	KindEnum   // a named set of string values
//
// A [ParsedSchema] keeps each kind in a name-keyed mapping and additionally
// records declaration order, so iteration over entities is deterministic.
//
// # Relations
//
// Relations are recorded symmetrically on both participating models/views.
// Each side carries the related entity name, the field that holds the
// relation, a [Cardinality], and an owner flag marking the side that holds
// the foreign key.
package schema
