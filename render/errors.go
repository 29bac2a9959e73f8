package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is the sentinel matched by every UnknownFormatError.
var ErrUnknownFormat = errors.New("erdviz: unknown output format")

// UnknownFormatError reports a format name with no registered renderer.
type UnknownFormatError struct {
	Format string
	Known  []string
}

// Error returns the error string.
func (e *UnknownFormatError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("erdviz: unknown output format %q", e.Format)
	}
	return fmt.Sprintf("erdviz: unknown output format %q (known: %s)", e.Format, strings.Join(e.Known, ", "))
}

// Is reports whether the target matches the unknown-format sentinel.
func (e *UnknownFormatError) Is(err error) bool {
	return err == ErrUnknownFormat
}
