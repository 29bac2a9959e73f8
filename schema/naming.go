package schema

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules  = ruleset()
	titler = cases.Title(language.English, cases.NoLower)
	// Acronyms that keep their casing when converted to PascalCase.
	acronyms = map[string]struct{}{
		"id": {}, "ip": {}, "api": {}, "url": {}, "uri": {},
		"sql": {}, "json": {}, "uuid": {}, "http": {}, "acl": {},
	}
)

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for a := range acronyms {
		r.AddAcronym(a)
	}
	return r
}

// Table returns the conventional table name of the model: snake_case plural.
func (m *Model) Table() string {
	return Snake(rules.Pluralize(m.Name))
}

// Label returns the snake_case form of the model name.
func (m *Model) Label() string {
	return Snake(m.Name)
}

// Label returns the snake_case form of the enum name.
func (e *Enum) Label() string {
	return Snake(e.Name)
}

// Plural pluralizes the given name.
func Plural(name string) string {
	return rules.Pluralize(name)
}

// Singular singularizes the given name.
func Singular(name string) string {
	return rules.Singularize(name)
}

// Pascal converts the given name to PascalCase, keeping known acronyms
// upper-cased ("user_id" becomes "UserID").
func Pascal(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		if _, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		// All-caps words (enum values like "ADMIN") title-case to "Admin";
		// the titler alone would pass them through unchanged.
		if w == strings.ToUpper(w) {
			w = strings.ToLower(w)
		}
		words[i] = titler.String(w)
	}
	return strings.Join(words, "")
}

// Snake converts the given name to snake_case.
func Snake(name string) string {
	var (
		b    strings.Builder
		prev rune
	)
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(prev) && prev != '_' {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}
