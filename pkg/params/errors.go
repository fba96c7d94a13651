package params

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnclosedBracket = errors.New("expected a closing square bracket")
	ErrInvalidValue    = errors.New("unable to parse value")
	ErrMissingValue    = errors.New("missing value")
)

// FormatError reports a malformed parameter file or a document that cannot be written.
// Line is set for header errors, Key for value errors.
type FormatError struct {
	Line int
	Key  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s for Imperial model parameter '%s'", e.Err, e.Key)
	}

	return fmt.Sprintf("%s on line %d", e.Err, e.Line)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
