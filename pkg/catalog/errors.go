package catalog

import "github.com/pkg/errors"

var (
	ErrUnknownRegion    = errors.New("unknown region")
	ErrUnknownSubregion = errors.New("unknown subregion")
	ErrInvalidCatalog   = errors.New("invalid catalog")
)
