package catalog

import (
	"bytes"
	_ "embed"
)

//go:embed regions.yaml
var defaultCatalog []byte

// Default returns the catalog of the regions the connector ships data files for.
func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}
