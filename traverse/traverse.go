package traverse

import (
	"github.com/erdviz/erdviz/schema"
)

// DefaultMaxDepth is the expansion bound applied when no WithMaxDepth
// option is given.
const DefaultMaxDepth = 3

// Entity is a single traversal output record: the schema entity, its kind,
// and the BFS depth at which it was first discovered (0 is the start).
type Entity struct {
	Ref   schema.Entity
	Kind  schema.Kind
	Depth int
}

// Name returns the entity name.
func (e Entity) Name() string { return e.Ref.EntityName() }

// Result is the ordered outcome of a traversal. Entities appear in BFS
// order: non-decreasing depth, each distinct entity exactly once.
type Result struct {
	Entities []Entity
}

// Names returns the entity names in traversal order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Entities))
	for i, e := range r.Entities {
		names[i] = e.Name()
	}
	return names
}

// AtDepth returns the entities discovered at the given depth.
func (r *Result) AtDepth(depth int) []Entity {
	var out []Entity
	for _, e := range r.Entities {
		if e.Depth == depth {
			out = append(out, e)
		}
	}
	return out
}

// Option configures a traversal.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth bounds the traversal depth. Depth 0 yields only the start
// entity with no expansion. Negative values are treated as 0.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 0 {
			depth = 0
		}
		o.maxDepth = depth
	}
}

// visitKey is the composite visited-set key. Keying by (kind, name) instead
// of the bare name keeps cycle detection correct even if two kinds were to
// share a name.
type visitKey struct {
	kind schema.Kind
	name string
}

// Traverse walks the schema graph breadth-first from the named start
// entity. It fails only if the start name resolves to no model, view or
// enum, in which case it returns a *EntityNotFoundError and no partial
// result. Every other irregularity (dangling relation targets, entities
// without neighbors) is a dead end, not an error.
func Traverse(s *schema.ParsedSchema, start string, opts ...Option) (*Result, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	ent, kind, ok := s.Find(start)
	if !ok {
		return nil, &EntityNotFoundError{Name: start}
	}
	var (
		result  = &Result{}
		queue   = []Entity{{Ref: ent, Kind: kind, Depth: 0}}
		visited = map[visitKey]struct{}{
			{kind: kind, name: start}: {},
		}
	)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		result.Entities = append(result.Entities, cur)
		// The entity itself is recorded; only its expansion is bounded.
		if cur.Depth >= o.maxDepth {
			continue
		}
		for _, ref := range neighbors(s, cur) {
			key := visitKey{kind: ref.Kind, name: ref.Name()}
			if _, seen := visited[key]; seen {
				// First discovery wins: no re-visit, no depth update.
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, Entity{Ref: ref.Entity, Kind: ref.Kind, Depth: cur.Depth + 1})
		}
	}
	return result, nil
}

// neighbors expands one entity according to its kind. The switch is
// exhaustive over schema.Kind so a new kind is a compile-visible change
// here.
func neighbors(s *schema.ParsedSchema, cur Entity) []schema.EntityRef {
	switch cur.Kind {
	case schema.KindEnum:
		return s.UsersOfEnum(cur.Name())
	case schema.KindModel, schema.KindView:
		refs := s.RelatedEntities(cur.Ref)
		for _, e := range s.ReferencedEnums(cur.Ref) {
			refs = append(refs, schema.EntityRef{Entity: e, Kind: schema.KindEnum})
		}
		return refs
	}
	return nil
}
