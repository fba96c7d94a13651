package imperial

import (
	"fmt"

	"github.com/askiada/go-covidsim/pkg/params"
	"github.com/pkg/errors"
)

var ErrSubregionNotFound = errors.New("subregion not found")

// NotFoundError is returned when the admin unit table does not hold exactly one row for
// a subregion.
type NotFoundError struct {
	Subregion  string
	Candidates params.Value
}

func (e *NotFoundError) Error() string {
	candidates := "<missing>"
	if e.Candidates != nil {
		candidates = fmt.Sprintf("%q", params.Matrix(rows(e.Candidates)).String())
	}

	return fmt.Sprintf("could not find entry for '%s' in '%s' parameter: %s", e.Subregion, keyAdminUnitCodes, candidates)
}

func (e *NotFoundError) Unwrap() error {
	return ErrSubregionNotFound
}
