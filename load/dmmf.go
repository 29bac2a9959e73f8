package load

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/erdviz/erdviz/schema"
)

// document is the DMMF-shaped JSON emitted by schema tooling. The
// datamodel section is the only part this loader reads; generators that
// emit the datamodel at the top level are accepted too.
type document struct {
	Datamodel datamodel `json:"datamodel"`

	// Top-level fallback for producers without the wrapper object.
	Models []*dmmfModel `json:"models,omitempty"`
	Views  []*dmmfModel `json:"views,omitempty"`
	Enums  []*dmmfEnum  `json:"enums,omitempty"`
}

type datamodel struct {
	Models []*dmmfModel `json:"models,omitempty"`
	Views  []*dmmfModel `json:"views,omitempty"`
	Enums  []*dmmfEnum  `json:"enums,omitempty"`
}

type dmmfModel struct {
	Name          string       `json:"name"`
	Documentation string       `json:"documentation,omitempty"`
	Fields        []*dmmfField `json:"fields"`
}

type dmmfField struct {
	Name               string   `json:"name"`
	Kind               string   `json:"kind"` // "scalar", "enum" or "object"
	Type               string   `json:"type"`
	IsRequired         bool     `json:"isRequired"`
	IsList             bool     `json:"isList"`
	IsID               bool     `json:"isId"`
	IsUnique           bool     `json:"isUnique"`
	RelationName       string   `json:"relationName,omitempty"`
	RelationFromFields []string `json:"relationFromFields,omitempty"`
	Documentation      string   `json:"documentation,omitempty"`
}

type dmmfEnum struct {
	Name          string `json:"name"`
	Documentation string `json:"documentation,omitempty"`
	Values        []struct {
		Name string `json:"name"`
	} `json:"values"`
}

// Load reads and parses a DMMF document from the given path.
func Load(path string) (*schema.ParsedSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erdviz: open schema %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a DMMF document from the reader.
func Read(r io.Reader) (*schema.ParsedSchema, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erdviz: read schema: %w", err)
	}
	return Parse(buf)
}

// Parse decodes a DMMF document and converts it into a ParsedSchema.
// Relations are recorded symmetrically: each side of an edge gets its own
// Relation entry, with the foreign-key side marked as owner.
func Parse(buf []byte) (*schema.ParsedSchema, error) {
	doc := &document{}
	if err := json.Unmarshal(buf, doc); err != nil {
		return nil, fmt.Errorf("erdviz: decode schema document: %w", err)
	}
	dm := doc.Datamodel
	if len(dm.Models) == 0 && len(dm.Views) == 0 && len(dm.Enums) == 0 {
		dm = datamodel{Models: doc.Models, Views: doc.Views, Enums: doc.Enums}
	}
	s := &schema.ParsedSchema{}
	for _, m := range dm.Models {
		s.AddModel(dm.convert(m))
	}
	for _, v := range dm.Views {
		s.AddView(&schema.View{Model: *dm.convert(v)})
	}
	for _, e := range dm.Enums {
		ne := &schema.Enum{Name: e.Name, Documentation: e.Documentation}
		for _, v := range e.Values {
			ne.Values = append(ne.Values, v.Name)
		}
		s.AddEnum(ne)
	}
	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// convert maps one DMMF model/view into the schema shape.
func (dm datamodel) convert(m *dmmfModel) *schema.Model {
	out := &schema.Model{Name: m.Name, Documentation: m.Documentation}
	fks := make(map[string]bool)
	for _, f := range m.Fields {
		for _, name := range f.RelationFromFields {
			fks[name] = true
		}
	}
	for _, f := range m.Fields {
		out.Fields = append(out.Fields, &schema.Field{
			Name:          f.Name,
			Type:          f.Type,
			Documentation: f.Documentation,
			Required:      f.IsRequired,
			List:          f.IsList,
			PrimaryKey:    f.IsID,
			Unique:        f.IsUnique,
			IsRelation:    f.Kind == "object",
			IsForeignKey:  fks[f.Name],
		})
		if f.Kind == "object" && f.RelationName != "" {
			out.Relations = append(out.Relations, &schema.Relation{
				Entity:      f.Type,
				Cardinality: dm.cardinality(m, f),
				Field:       f.Name,
				Owner:       len(f.RelationFromFields) > 0,
			})
		}
	}
	return out
}

// cardinality classifies an edge from the list flags of its two sides.
func (dm datamodel) cardinality(m *dmmfModel, f *dmmfField) schema.Cardinality {
	back := dm.backRelation(m, f)
	switch {
	case back == nil:
		if f.IsList {
			return schema.O2M
		}
		return schema.O2O
	case f.IsList && back.IsList:
		return schema.M2M
	case f.IsList || back.IsList:
		return schema.O2M
	default:
		return schema.O2O
	}
}

// backRelation finds the opposite side of a relation field: the field on
// the target entity sharing the relation name. For self-relations the
// opposite side is the other field of the same model.
func (dm datamodel) backRelation(m *dmmfModel, f *dmmfField) *dmmfField {
	target := dm.entity(f.Type)
	if target == nil {
		return nil
	}
	for _, bf := range target.Fields {
		if bf == f {
			continue
		}
		if bf.Kind == "object" && bf.RelationName == f.RelationName {
			return bf
		}
	}
	return nil
}

func (dm datamodel) entity(name string) *dmmfModel {
	for _, m := range dm.Models {
		if m.Name == name {
			return m
		}
	}
	for _, v := range dm.Views {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// validate rejects names appearing under more than one entity kind.
func validate(s *schema.ParsedSchema) error {
	kinds := make(map[string]schema.Kind)
	check := func(name string, kind schema.Kind) error {
		if first, ok := kinds[name]; ok {
			return &DuplicateNameError{Name: name, First: first, Second: kind}
		}
		kinds[name] = kind
		return nil
	}
	for _, m := range s.Models {
		if err := check(m.Name, schema.KindModel); err != nil {
			return err
		}
	}
	for _, v := range s.Views {
		if err := check(v.Name, schema.KindView); err != nil {
			return err
		}
	}
	for _, e := range s.Enums {
		if err := check(e.Name, schema.KindEnum); err != nil {
			return err
		}
	}
	return nil
}
