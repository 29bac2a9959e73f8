package render

import (
	"github.com/erdviz/erdviz/schema"
	"github.com/erdviz/erdviz/traverse"
)

// Graph is the render-shaped view of a traversal result: the included
// entities in traversal order, plus the edges among them. Relations whose
// other endpoint fell outside the traversal are left out.
type Graph struct {
	Models []*schema.Model
	Views  []*schema.View
	Enums  []*schema.Enum

	// Edges are the relation edges between included models/views,
	// one entry per edge, owner side resolved.
	Edges []*Edge
	// EnumEdges are the field-type edges from models/views to enums.
	EnumEdges []*EnumEdge
}

// Edge is a deduplicated relation edge. For one-to-many edges From is the
// "one" side and To the "many" side; for one-to-one From is the owner.
type Edge struct {
	From        string
	To          string
	Cardinality schema.Cardinality
	// Field is the relation field on the owner side (or on the side the
	// edge was discovered from, for ownerless edges).
	Field string
}

// EnumEdge records a model/view field typed by an included enum.
type EnumEdge struct {
	Entity string
	Enum   string
	Field  string
}

// NewGraph shapes a traversal result for rendering. The schema is the same
// snapshot the traversal ran against.
func NewGraph(r *traverse.Result, s *schema.ParsedSchema) *Graph {
	g := &Graph{}
	included := make(map[string]bool, len(r.Entities))
	for _, e := range r.Entities {
		included[e.Name()] = true
		switch e.Kind {
		case schema.KindModel:
			g.Models = append(g.Models, e.Ref.(*schema.Model))
		case schema.KindView:
			g.Views = append(g.Views, e.Ref.(*schema.View))
		case schema.KindEnum:
			g.Enums = append(g.Enums, e.Ref.(*schema.Enum))
		}
	}
	seen := make(map[Edge]bool)
	addEdges := func(name string, m *schema.Model) {
		for _, rel := range m.Relations {
			if !included[rel.Entity] {
				continue
			}
			edge, ok := shapeEdge(s, name, rel)
			if !ok || seen[edge] {
				continue
			}
			seen[edge] = true
			g.Edges = append(g.Edges, &edge)
		}
		for _, f := range m.Fields {
			if e := s.Enum(f.Type); e != nil && included[e.Name] {
				g.EnumEdges = append(g.EnumEdges, &EnumEdge{Entity: name, Enum: e.Name, Field: f.Name})
			}
		}
	}
	for _, e := range r.Entities {
		switch ent := e.Ref.(type) {
		case *schema.Model:
			addEdges(ent.Name, ent)
		case *schema.View:
			addEdges(ent.Name, &ent.Model)
		}
	}
	return g
}

// shapeEdge normalizes one relation side into an Edge. Owned edges are
// emitted from the owner side only, so each edge appears exactly once;
// ownerless edges (both M2M sides, or schemas built without owner flags)
// are emitted from whichever side is seen first and deduplicated by their
// unordered pair.
func shapeEdge(s *schema.ParsedSchema, from string, rel *schema.Relation) (Edge, bool) {
	switch {
	case rel.Owner:
		if rel.Cardinality == schema.O2M {
			// The FK holder is the many side; draw one-to-many.
			return Edge{From: rel.Entity, To: from, Cardinality: schema.O2M, Field: rel.Field}, true
		}
		return Edge{From: from, To: rel.Entity, Cardinality: rel.Cardinality, Field: rel.Field}, true
	case ownedOpposite(s, from, rel):
		// The owner side emits this edge.
		return Edge{}, false
	default:
		// Ownerless one-to-many: the side holding the list field is the
		// "one" side. Both sides derive the same orientation, so the seen
		// map still collapses them to one edge.
		if rel.Cardinality == schema.O2M {
			if list, ok := relationList(s, from, rel); ok {
				if list {
					return Edge{From: from, To: rel.Entity, Cardinality: schema.O2M, Field: ""}, true
				}
				return Edge{From: rel.Entity, To: from, Cardinality: schema.O2M, Field: ""}, true
			}
		}
		a, b := from, rel.Entity
		if b < a {
			a, b = b, a
		}
		return Edge{From: a, To: b, Cardinality: rel.Cardinality, Field: ""}, true
	}
}

// relationList reports whether the relation field on the given entity is a
// list field. The second result is false when the entity or field cannot be
// resolved.
func relationList(s *schema.ParsedSchema, from string, rel *schema.Relation) (bool, bool) {
	ent, _, ok := s.Find(from)
	if !ok {
		return false, false
	}
	var m *schema.Model
	switch e := ent.(type) {
	case *schema.Model:
		m = e
	case *schema.View:
		m = &e.Model
	default:
		return false, false
	}
	if f := m.Field(rel.Field); f != nil && f.IsRelation {
		return f.List, true
	}
	return false, false
}

// ownedOpposite reports whether the opposite side of an ownerless relation
// record holds the foreign key, in which case that side emits the edge.
func ownedOpposite(s *schema.ParsedSchema, from string, rel *schema.Relation) bool {
	ent, _, ok := s.Find(rel.Entity)
	if !ok {
		return false
	}
	var back []*schema.Relation
	switch e := ent.(type) {
	case *schema.Model:
		back = e.Relations
	case *schema.View:
		back = e.Relations
	}
	for _, r := range back {
		if r.Entity == from && r.Cardinality == rel.Cardinality && r.Owner {
			return true
		}
	}
	return false
}
