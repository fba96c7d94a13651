package output

import "github.com/pkg/errors"

var (
	ErrEmptyTable    = errors.New("empty severity table")
	ErrMissingColumn = errors.New("missing severity column")
	ErrInvalidNumber = errors.New("invalid number in severity table")
)
