package traverse

import (
	"errors"
	"fmt"
)

// ErrEntityNotFound is the sentinel matched by every EntityNotFoundError.
var ErrEntityNotFound = errors.New("erdviz: start entity not found")

// EntityNotFoundError reports a start entity name that resolves to no
// model, view or enum in the schema. It is the only error Traverse returns.
type EntityNotFoundError struct {
	Name string
}

// Error returns the error string.
func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("erdviz: start entity %q not found in schema", e.Name)
}

// Is reports whether the target matches the not-found sentinel.
// This allows errors.Is(err, ErrEntityNotFound) to return true.
func (e *EntityNotFoundError) Is(err error) bool {
	return err == ErrEntityNotFound
}

// IsEntityNotFound returns true if the error is an EntityNotFoundError.
func IsEntityNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *EntityNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrEntityNotFound)
}
