package schema

// Find resolves a bare entity name against models, then views, then enums,
// in that fixed order, returning the first match. Names are assumed unique
// across kinds; the probe order only matters if that assumption is violated,
// in which case models win.
func (s *ParsedSchema) Find(name string) (Entity, Kind, bool) {
	if m := s.Model(name); m != nil {
		return m, KindModel, true
	}
	if v := s.View(name); v != nil {
		return v, KindView, true
	}
	if e := s.Enum(name); e != nil {
		return e, KindEnum, true
	}
	return nil, 0, false
}

// UsersOfEnum returns every model and view with at least one field whose
// declared type is the given enum name. Qualifying models come first, then
// views, each group in declaration order.
func (s *ParsedSchema) UsersOfEnum(name string) []EntityRef {
	var refs []EntityRef
	for _, m := range s.Models {
		if usesType(m.Fields, name) {
			refs = append(refs, EntityRef{Entity: m, Kind: KindModel})
		}
	}
	for _, v := range s.Views {
		if usesType(v.Fields, name) {
			refs = append(refs, EntityRef{Entity: v, Kind: KindView})
		}
	}
	return refs
}

// ReferencedEnums collects, in field order, every enum referenced by the
// entity's field types. Duplicates are preserved: a model with two fields of
// the same enum type reports that enum twice. Enums have no fields and
// yield nil.
func (s *ParsedSchema) ReferencedEnums(ent Entity) []*Enum {
	var enums []*Enum
	for _, f := range entityFields(ent) {
		if e := s.Enum(f.Type); e != nil {
			enums = append(enums, e)
		}
	}
	return enums
}

// RelatedEntities resolves the entity's relations, in declaration order,
// against models first and views second. A relation naming neither is
// dropped: the schema is assumed internally consistent, and a dangling
// target is a dead end rather than an error.
func (s *ParsedSchema) RelatedEntities(ent Entity) []EntityRef {
	var refs []EntityRef
	for _, rel := range entityRelations(ent) {
		if m := s.Model(rel.Entity); m != nil {
			refs = append(refs, EntityRef{Entity: m, Kind: KindModel})
			continue
		}
		if v := s.View(rel.Entity); v != nil {
			refs = append(refs, EntityRef{Entity: v, Kind: KindView})
		}
	}
	return refs
}

func usesType(fields []*Field, typ string) bool {
	for _, f := range fields {
		if f.Type == typ {
			return true
		}
	}
	return false
}

func entityFields(ent Entity) []*Field {
	switch e := ent.(type) {
	case *Model:
		return e.Fields
	case *View:
		return e.Fields
	}
	return nil
}

func entityRelations(ent Entity) []*Relation {
	switch e := ent.(type) {
	case *Model:
		return e.Relations
	case *View:
		return e.Relations
	}
	return nil
}
