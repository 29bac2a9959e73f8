package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/erdviz/erdviz/schema"
)

// Supported database dialects.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// pingTimeout bounds the reachability pre-check before inspection.
const pingTimeout = 5 * time.Second

// Inspect connects to the database behind the URL, inspects the current
// schema and maps it into a ParsedSchema: tables become models, views
// become views, foreign keys become symmetric relations and enum column
// types become enums.
func Inspect(ctx context.Context, dburl string) (*schema.ParsedSchema, error) {
	driver, dsn, dialect, err := ParseURL(dburl)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}
	defer db.Close()
	return InspectDB(ctx, db, dialect)
}

// InspectDB inspects the schema of an already-open connection.
func InspectDB(ctx context.Context, db *sql.DB, dialect string) (*schema.ParsedSchema, error) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, &DatabaseError{Op: "ping", Err: err}
	}
	var (
		drv migrate.Driver
		err error
	)
	switch dialect {
	case Postgres:
		drv, err = postgres.Open(db)
	case MySQL:
		drv, err = mysql.Open(db)
	case SQLite:
		drv, err = sqlite.Open(db)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}
	current, err := drv.InspectSchema(ctx, "", nil)
	if err != nil {
		return nil, &DatabaseError{Op: "inspect", Err: err}
	}
	return convertSchema(current)
}

// ParseURL splits a database URL into the database/sql driver name, its
// DSN, and the erdviz dialect.
func ParseURL(dburl string) (driver, dsn, dialect string, err error) {
	scheme, rest, ok := strings.Cut(dburl, "://")
	if !ok {
		return "", "", "", fmt.Errorf("%w: missing scheme in %q", ErrUnsupportedDialect, dburl)
	}
	switch scheme {
	case "postgres", "postgresql":
		// lib/pq accepts the full URL form.
		return "postgres", dburl, Postgres, nil
	case "mysql":
		return "mysql", rest, MySQL, nil
	case "sqlite", "sqlite3", "file":
		return "sqlite", rest, SQLite, nil
	}
	return "", "", "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, scheme)
}

// convertSchema maps an inspected atlas schema into the erdviz shape.
func convertSchema(s *atlas.Schema) (*schema.ParsedSchema, error) {
	out := &schema.ParsedSchema{}
	joins := make(map[string]bool)
	for _, t := range s.Tables {
		if isJoinTable(t) {
			joins[t.Name] = true
		}
	}
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			addEnum(out, c)
		}
		if joins[t.Name] {
			continue
		}
		out.AddModel(convertTable(t))
	}
	for _, v := range s.Views {
		m := schema.Model{Name: v.Name}
		for _, c := range v.Columns {
			addEnum(out, c)
			m.Fields = append(m.Fields, convertColumn(nil, c))
		}
		out.AddView(&schema.View{Model: m})
	}
	// Foreign keys become a relation on each side. Join tables collapse
	// into a single M2M edge between the two referenced tables.
	for _, t := range s.Tables {
		if joins[t.Name] {
			linkJoinTable(out, t)
			continue
		}
		for _, fk := range t.ForeignKeys {
			if joins[fk.RefTable.Name] {
				continue
			}
			card := schema.O2M
			if fkUnique(t, fk) {
				card = schema.O2O
			}
			child := out.Model(t.Name)
			parent := out.Model(fk.RefTable.Name)
			if child == nil || parent == nil {
				continue
			}
			child.Relations = append(child.Relations, &schema.Relation{
				Entity:      parent.Name,
				Cardinality: card,
				Field:       fk.Columns[0].Name,
				Owner:       true,
			})
			parent.Relations = append(parent.Relations, &schema.Relation{
				Entity:      child.Name,
				Cardinality: card,
				Field:       schema.Plural(child.Name),
			})
		}
	}
	if err := validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func convertTable(t *atlas.Table) *schema.Model {
	m := &schema.Model{Name: t.Name}
	for _, c := range t.Columns {
		m.Fields = append(m.Fields, convertColumn(t, c))
	}
	return m
}

func convertColumn(t *atlas.Table, c *atlas.Column) *schema.Field {
	f := &schema.Field{
		Name:     c.Name,
		Type:     columnType(c),
		Required: !c.Type.Null,
	}
	if t != nil {
		if pk := t.PrimaryKey; pk != nil {
			for _, part := range pk.Parts {
				if part.C == c {
					f.PrimaryKey = true
				}
			}
		}
		for _, idx := range t.Indexes {
			if idx.Unique && len(idx.Parts) == 1 && idx.Parts[0].C == c {
				f.Unique = true
			}
		}
		for _, fk := range t.ForeignKeys {
			for _, fc := range fk.Columns {
				if fc == c {
					f.IsForeignKey = true
				}
			}
		}
	}
	return f
}

// columnType returns the enum name for enum-typed columns and the raw
// database type otherwise.
func columnType(c *atlas.Column) string {
	if e, ok := c.Type.Type.(*atlas.EnumType); ok {
		return e.T
	}
	return c.Type.Raw
}

func addEnum(s *schema.ParsedSchema, c *atlas.Column) {
	e, ok := c.Type.Type.(*atlas.EnumType)
	if !ok || s.Enum(e.T) != nil {
		return
	}
	s.AddEnum(&schema.Enum{Name: e.T, Values: e.Values})
}

// isJoinTable reports whether the table is a pure M2M join table: exactly
// two foreign keys, and every column covered by one of them.
func isJoinTable(t *atlas.Table) bool {
	if len(t.ForeignKeys) != 2 {
		return false
	}
	covered := make(map[string]bool)
	for _, fk := range t.ForeignKeys {
		for _, c := range fk.Columns {
			covered[c.Name] = true
		}
	}
	for _, c := range t.Columns {
		if !covered[c.Name] {
			return false
		}
	}
	return true
}

func linkJoinTable(s *schema.ParsedSchema, t *atlas.Table) {
	left := s.Model(t.ForeignKeys[0].RefTable.Name)
	right := s.Model(t.ForeignKeys[1].RefTable.Name)
	if left == nil || right == nil {
		return
	}
	left.Relations = append(left.Relations, &schema.Relation{
		Entity:      right.Name,
		Cardinality: schema.M2M,
		Field:       schema.Plural(right.Name),
	})
	right.Relations = append(right.Relations, &schema.Relation{
		Entity:      left.Name,
		Cardinality: schema.M2M,
		Field:       schema.Plural(left.Name),
	})
}

// fkUnique reports whether the FK columns are covered by a unique index or
// the primary key, which makes the edge one-to-one.
func fkUnique(t *atlas.Table, fk *atlas.ForeignKey) bool {
	if len(fk.Columns) != 1 {
		return false
	}
	c := fk.Columns[0]
	if pk := t.PrimaryKey; pk != nil && len(pk.Parts) == 1 && pk.Parts[0].C == c {
		return true
	}
	for _, idx := range t.Indexes {
		if idx.Unique && len(idx.Parts) == 1 && idx.Parts[0].C == c {
			return true
		}
	}
	return false
}
