package load

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erdviz/erdviz/schema"
)

const blogDMMF = `{
  "datamodel": {
    "models": [
      {
        "name": "User",
        "fields": [
          {"name": "id", "kind": "scalar", "type": "Int", "isRequired": true, "isId": true},
          {"name": "email", "kind": "scalar", "type": "String", "isRequired": true, "isUnique": true},
          {"name": "role", "kind": "enum", "type": "Role", "isRequired": true},
          {"name": "posts", "kind": "object", "type": "Post", "isList": true, "isRequired": true, "relationName": "PostToUser"},
          {"name": "profile", "kind": "object", "type": "Profile", "relationName": "ProfileToUser"}
        ]
      },
      {
        "name": "Post",
        "fields": [
          {"name": "id", "kind": "scalar", "type": "Int", "isRequired": true, "isId": true},
          {"name": "authorId", "kind": "scalar", "type": "Int", "isRequired": true},
          {"name": "author", "kind": "object", "type": "User", "isRequired": true, "relationName": "PostToUser", "relationFromFields": ["authorId"]},
          {"name": "tags", "kind": "object", "type": "Tag", "isList": true, "isRequired": true, "relationName": "PostToTag"}
        ]
      },
      {
        "name": "Profile",
        "fields": [
          {"name": "id", "kind": "scalar", "type": "Int", "isRequired": true, "isId": true},
          {"name": "userId", "kind": "scalar", "type": "Int", "isRequired": true, "isUnique": true},
          {"name": "user", "kind": "object", "type": "User", "isRequired": true, "relationName": "ProfileToUser", "relationFromFields": ["userId"]}
        ]
      },
      {
        "name": "Tag",
        "fields": [
          {"name": "id", "kind": "scalar", "type": "Int", "isRequired": true, "isId": true},
          {"name": "posts", "kind": "object", "type": "Post", "isList": true, "isRequired": true, "relationName": "PostToTag"}
        ]
      }
    ],
    "views": [
      {
        "name": "RoleCount",
        "fields": [
          {"name": "role", "kind": "enum", "type": "Role", "isRequired": true},
          {"name": "count", "kind": "scalar", "type": "Int", "isRequired": true}
        ]
      }
    ],
    "enums": [
      {"name": "Role", "values": [{"name": "ADMIN"}, {"name": "MEMBER"}]}
    ]
  }
}`

func TestParseDMMF(t *testing.T) {
	require := require.New(t)
	s, err := Parse([]byte(blogDMMF))
	require.NoError(err)
	require.Len(s.Models, 4)
	require.Len(s.Views, 1)
	require.Len(s.Enums, 1)

	user := s.Model("User")
	require.NotNil(user)
	require.Len(user.Relations, 2)
	posts := user.Relations[0]
	require.Equal("Post", posts.Entity)
	require.Equal(schema.O2M, posts.Cardinality)
	require.Equal("posts", posts.Field)
	require.False(posts.Owner)
	profile := user.Relations[1]
	require.Equal("Profile", profile.Entity)
	require.Equal(schema.O2O, profile.Cardinality)
	require.False(profile.Owner)

	post := s.Model("Post")
	author := post.Relations[0]
	require.Equal("User", author.Entity)
	require.Equal(schema.O2M, author.Cardinality)
	require.True(author.Owner)
	require.True(post.Field("authorId").IsForeignKey)
	require.False(post.Field("author").IsForeignKey)
	require.True(post.Field("author").IsRelation)

	tags := post.Relations[1]
	require.Equal(schema.M2M, tags.Cardinality)

	prof := s.Model("Profile")
	require.True(prof.Relations[0].Owner)
	require.Equal(schema.O2O, prof.Relations[0].Cardinality)

	require.Equal([]string{"ADMIN", "MEMBER"}, s.Enum("Role").Values)
	require.NotNil(s.View("RoleCount"))
}

func TestParseTopLevelDatamodel(t *testing.T) {
	require := require.New(t)
	// Some producers emit the datamodel without the wrapper object.
	s, err := Parse([]byte(`{
	  "models": [{"name": "User", "fields": [{"name": "id", "kind": "scalar", "type": "Int", "isId": true}]}],
	  "enums": [{"name": "Role", "values": [{"name": "ADMIN"}]}]
	}`))
	require.NoError(err)
	require.NotNil(s.Model("User"))
	require.NotNil(s.Enum("Role"))
}

func TestParseSelfRelation(t *testing.T) {
	require := require.New(t)
	s, err := Parse([]byte(`{
	  "datamodel": {
	    "models": [
	      {
	        "name": "Category",
	        "fields": [
	          {"name": "id", "kind": "scalar", "type": "Int", "isId": true},
	          {"name": "parentId", "kind": "scalar", "type": "Int"},
	          {"name": "parent", "kind": "object", "type": "Category", "relationName": "CategoryTree", "relationFromFields": ["parentId"]},
	          {"name": "children", "kind": "object", "type": "Category", "isList": true, "relationName": "CategoryTree"}
	        ]
	      }
	    ]
	  }
	}`))
	require.NoError(err)
	cat := s.Model("Category")
	require.Len(cat.Relations, 2)
	require.Equal(schema.O2M, cat.Relations[0].Cardinality)
	require.True(cat.Relations[0].Owner)
	require.Equal(schema.O2M, cat.Relations[1].Cardinality)
	require.False(cat.Relations[1].Owner)
}

func TestParseDuplicateName(t *testing.T) {
	require := require.New(t)
	_, err := Parse([]byte(`{
	  "datamodel": {
	    "models": [{"name": "Status", "fields": []}],
	    "enums": [{"name": "Status", "values": [{"name": "OPEN"}]}]
	  }
	}`))
	require.Error(err)
	require.ErrorIs(err, ErrDuplicateName)
	var dup *DuplicateNameError
	require.True(errors.As(err, &dup))
	require.Equal("Status", dup.Name)
	require.Equal(schema.KindModel, dup.First)
	require.Equal(schema.KindEnum, dup.Second)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader("datamodel User {"))
	require.Error(t, err)
}
