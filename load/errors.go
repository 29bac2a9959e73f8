package load

import (
	"errors"
	"fmt"

	"github.com/erdviz/erdviz/schema"
)

// Sentinel errors for common failure cases.
var (
	// ErrDuplicateName indicates a name registered under more than one
	// entity kind.
	ErrDuplicateName = errors.New("erdviz: duplicate entity name")
	// ErrUnsupportedDialect indicates a database URL with no matching driver.
	ErrUnsupportedDialect = errors.New("erdviz: unsupported database dialect")
)

// DuplicateNameError reports a schema in which one name appears in more
// than one of the models/views/enums collections. Lookup order would
// silently prefer one kind over the other, so the loaders reject the
// schema instead.
type DuplicateNameError struct {
	Name   string
	First  schema.Kind
	Second schema.Kind
}

// Error returns the error string.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("erdviz: name %q declared as both %s and %s", e.Name, e.First, e.Second)
}

// Is reports whether the target matches the duplicate-name sentinel.
func (e *DuplicateNameError) Is(err error) bool {
	return err == ErrDuplicateName
}

// DatabaseError wraps a failure while talking to a live database.
type DatabaseError struct {
	Op  string // Operation ("ping", "open", "inspect").
	Err error
}

// Error returns the error string.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("erdviz: database %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// IsDatabaseError returns true if the error is a DatabaseError.
func IsDatabaseError(err error) bool {
	if err == nil {
		return false
	}
	var e *DatabaseError
	return errors.As(err, &e)
}
