package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// blogSchema builds a small schema with models, a view and an enum, with
// relations recorded on both sides.
func blogSchema() *ParsedSchema {
	s := &ParsedSchema{}
	s.AddModel(&Model{
		Name: "User",
		Fields: []*Field{
			{Name: "id", Type: "Int", PrimaryKey: true},
			{Name: "role", Type: "Role"},
			{Name: "posts", Type: "Post", List: true, IsRelation: true},
		},
		Relations: []*Relation{
			{Entity: "Post", Cardinality: O2M, Field: "posts"},
		},
	})
	s.AddModel(&Model{
		Name: "Post",
		Fields: []*Field{
			{Name: "id", Type: "Int", PrimaryKey: true},
			{Name: "author_id", Type: "Int", IsForeignKey: true},
			{Name: "author", Type: "User", IsRelation: true},
		},
		Relations: []*Relation{
			{Entity: "User", Cardinality: O2M, Field: "author", Owner: true},
			{Entity: "Ghost", Cardinality: O2O, Field: "ghost"}, // dangling target
		},
	})
	s.AddView(&View{Model: Model{
		Name: "RoleCount",
		Fields: []*Field{
			{Name: "role", Type: "Role"},
			{Name: "count", Type: "Int"},
		},
	}})
	s.AddEnum(&Enum{Name: "Role", Values: []string{"ADMIN", "MEMBER"}})
	return s
}

func TestFind(t *testing.T) {
	require := require.New(t)
	s := blogSchema()

	ent, kind, ok := s.Find("User")
	require.True(ok)
	require.Equal(KindModel, kind)
	require.Equal("User", ent.EntityName())

	ent, kind, ok = s.Find("RoleCount")
	require.True(ok)
	require.Equal(KindView, kind)
	require.Equal("RoleCount", ent.EntityName())

	ent, kind, ok = s.Find("Role")
	require.True(ok)
	require.Equal(KindEnum, kind)
	require.Equal("Role", ent.EntityName())

	_, _, ok = s.Find("Nope")
	require.False(ok)
}

func TestFindProbesModelsFirst(t *testing.T) {
	require := require.New(t)
	// A hand-built schema violating cross-kind name uniqueness: the fixed
	// probe order makes the model win.
	s := &ParsedSchema{}
	s.AddModel(&Model{Name: "Status"})
	s.AddEnum(&Enum{Name: "Status"})
	_, kind, ok := s.Find("Status")
	require.True(ok)
	require.Equal(KindModel, kind)
}

func TestUsersOfEnum(t *testing.T) {
	require := require.New(t)
	s := blogSchema()

	refs := s.UsersOfEnum("Role")
	require.Len(refs, 2)
	// Qualifying models first, then views, each in declaration order.
	require.Equal("User", refs[0].Name())
	require.Equal(KindModel, refs[0].Kind)
	require.Equal("RoleCount", refs[1].Name())
	require.Equal(KindView, refs[1].Kind)

	require.Empty(s.UsersOfEnum("Unused"))
}

func TestReferencedEnums(t *testing.T) {
	require := require.New(t)
	s := blogSchema()

	enums := s.ReferencedEnums(s.Model("User"))
	require.Len(enums, 1)
	require.Equal("Role", enums[0].Name)

	require.Empty(s.ReferencedEnums(s.Model("Post")))
	require.Empty(s.ReferencedEnums(s.Enum("Role")))

	// Duplicates preserved in field order.
	s.AddModel(&Model{
		Name: "Audit",
		Fields: []*Field{
			{Name: "old_role", Type: "Role"},
			{Name: "new_role", Type: "Role"},
		},
	})
	enums = s.ReferencedEnums(s.Model("Audit"))
	require.Len(enums, 2)
}

func TestRelatedEntities(t *testing.T) {
	require := require.New(t)
	s := blogSchema()

	refs := s.RelatedEntities(s.Model("Post"))
	// The dangling "Ghost" relation is dropped silently.
	require.Len(refs, 1)
	require.Equal("User", refs[0].Name())
	require.Equal(KindModel, refs[0].Kind)

	require.Empty(s.RelatedEntities(s.Enum("Role")))
}
