package schema

import (
	"fmt"
)

// Kind discriminates the entity kinds a schema can hold.
type Kind int

// Entity kinds.
const (
	KindModel Kind = iota // Table-backed model.
	KindView              // Database view.
	KindEnum              // Named value set.
)

// String returns the kind name.
func (k Kind) String() string {
	s := "unknown"
	switch k {
	case KindModel:
		s = "model"
	case KindView:
		s = "view"
	case KindEnum:
		s = "enum"
	}
	return s
}

// Cardinality is the relation classification between two models/views.
type Cardinality int

// Relation cardinalities.
const (
	Unk Cardinality = iota // Unknown.
	O2O                    // One to one.
	O2M                    // One to many.
	M2M                    // Many to many.
)

// String returns the cardinality name.
func (c Cardinality) String() string {
	s := "UNKNOWN"
	switch c {
	case O2O:
		s = "ONE_TO_ONE"
	case O2M:
		s = "ONE_TO_MANY"
	case M2M:
		s = "MANY_TO_MANY"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler. Cardinalities are
// serialized by name so cached and exported schemas stay readable.
func (c Cardinality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cardinality) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "ONE_TO_ONE":
		*c = O2O
	case "ONE_TO_MANY":
		*c = O2M
	case "MANY_TO_MANY":
		*c = M2M
	case "UNKNOWN", "":
		*c = Unk
	default:
		return fmt.Errorf("schema: unknown cardinality %q", s)
	}
	return nil
}

// Field is a single attribute of a model or view. Type holds either a
// scalar type name or the name of another entity. IsRelation is true iff
// Type names another model/view and the field carries relation metadata.
type Field struct {
	Name          string `json:"name" msgpack:"name"`
	Type          string `json:"type" msgpack:"type"`
	Documentation string `json:"documentation,omitempty" msgpack:"documentation,omitempty"`
	Required      bool   `json:"required,omitempty" msgpack:"required,omitempty"`
	List          bool   `json:"list,omitempty" msgpack:"list,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty" msgpack:"primary_key,omitempty"`
	Unique        bool   `json:"unique,omitempty" msgpack:"unique,omitempty"`
	IsRelation    bool   `json:"is_relation,omitempty" msgpack:"is_relation,omitempty"`
	IsForeignKey  bool   `json:"is_foreign_key,omitempty" msgpack:"is_foreign_key,omitempty"`
}

// Relation is one side of a typed edge between two models/views.
type Relation struct {
	// Entity is the name of the related model or view.
	Entity string `json:"entity" msgpack:"entity"`
	// Cardinality classifies the edge.
	Cardinality Cardinality `json:"cardinality" msgpack:"cardinality"`
	// Field is the name of the field carrying this relation.
	Field string `json:"field" msgpack:"field"`
	// Owner is true iff this side holds the foreign key.
	Owner bool `json:"owner,omitempty" msgpack:"owner,omitempty"`
}

// Model is a named entity with ordered fields and relations.
type Model struct {
	Name          string      `json:"name" msgpack:"name"`
	Documentation string      `json:"documentation,omitempty" msgpack:"documentation,omitempty"`
	Fields        []*Field    `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Relations     []*Relation `json:"relations,omitempty" msgpack:"relations,omitempty"`
}

// EntityName implements Entity.
func (m *Model) EntityName() string { return m.Name }

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// PK returns the primary-key field, or nil if the model has none.
func (m *Model) PK() *Field {
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// View is structurally identical to a model but tagged KindView.
type View struct {
	Model `msgpack:",inline"`
}

// Enum is a named, ordered set of string values.
type Enum struct {
	Name          string   `json:"name" msgpack:"name"`
	Documentation string   `json:"documentation,omitempty" msgpack:"documentation,omitempty"`
	Values        []string `json:"values,omitempty" msgpack:"values,omitempty"`
}

// EntityName implements Entity.
func (e *Enum) EntityName() string { return e.Name }

// Entity is implemented by *Model, *View and *Enum.
type Entity interface {
	EntityName() string
}

// EntityRef pairs an entity with its kind. Lookup helpers and the
// traversal engine exchange entities in this shape.
type EntityRef struct {
	Entity Entity
	Kind   Kind
}

// Name returns the referenced entity's name.
func (r EntityRef) Name() string { return r.Entity.EntityName() }

// ParsedSchema is the immutable-after-load snapshot the traverser and the
// renderers operate on. Entities are kept in declaration order; name-keyed
// indexes are maintained on top for lookups. A name may appear in at most
// one of the three collections (the loaders verify this, the lookups assume
// it).
type ParsedSchema struct {
	Models []*Model `json:"models,omitempty" msgpack:"models,omitempty"`
	Views  []*View  `json:"views,omitempty" msgpack:"views,omitempty"`
	Enums  []*Enum  `json:"enums,omitempty" msgpack:"enums,omitempty"`

	modelIndex map[string]*Model
	viewIndex  map[string]*View
	enumIndex  map[string]*Enum
}

// AddModel appends a model and indexes it by name.
func (s *ParsedSchema) AddModel(m *Model) {
	s.ensureIndex()
	s.Models = append(s.Models, m)
	s.modelIndex[m.Name] = m
}

// AddView appends a view and indexes it by name.
func (s *ParsedSchema) AddView(v *View) {
	s.ensureIndex()
	s.Views = append(s.Views, v)
	s.viewIndex[v.Name] = v
}

// AddEnum appends an enum and indexes it by name.
func (s *ParsedSchema) AddEnum(e *Enum) {
	s.ensureIndex()
	s.Enums = append(s.Enums, e)
	s.enumIndex[e.Name] = e
}

// Model returns the model with the given name, or nil.
func (s *ParsedSchema) Model(name string) *Model {
	s.ensureIndex()
	return s.modelIndex[name]
}

// View returns the view with the given name, or nil.
func (s *ParsedSchema) View(name string) *View {
	s.ensureIndex()
	return s.viewIndex[name]
}

// Enum returns the enum with the given name, or nil.
func (s *ParsedSchema) Enum(name string) *Enum {
	s.ensureIndex()
	return s.enumIndex[name]
}

// Reindex rebuilds the name indexes from the ordered entity slices. It must
// be called after decoding a ParsedSchema from a serialized form (the
// indexes are not part of the wire shape) and before sharing the schema
// across goroutines.
func (s *ParsedSchema) Reindex() {
	s.modelIndex = make(map[string]*Model, len(s.Models))
	s.viewIndex = make(map[string]*View, len(s.Views))
	s.enumIndex = make(map[string]*Enum, len(s.Enums))
	for _, m := range s.Models {
		s.modelIndex[m.Name] = m
	}
	for _, v := range s.Views {
		s.viewIndex[v.Name] = v
	}
	for _, e := range s.Enums {
		s.enumIndex[e.Name] = e
	}
}

func (s *ParsedSchema) ensureIndex() {
	if s.modelIndex == nil {
		s.Reindex()
	}
}
