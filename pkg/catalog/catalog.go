// Package catalog maps regions to the static CovidSim input files that describe them.
package catalog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Catalog lists the supported regions, keyed by ISO-3166 code.
type Catalog struct {
	Defaults Defaults          `yaml:"defaults"`
	Regions  map[string]Region `yaml:"regions"`
}

// Defaults are used by regions that do not name their own files.
type Defaults struct {
	PopulationDensity string `yaml:"populationDensity"`
	PreParameters     string `yaml:"preParameters"`
}

// Region describes the files of a country.
type Region struct {
	Admin             string               `yaml:"admin"`
	PopulationDensity string               `yaml:"populationDensity,omitempty"`
	PreParameters     string               `yaml:"preParameters,omitempty"`
	Subregions        map[string]Subregion `yaml:"subregions,omitempty"`
}

// Subregion is a level 1 administrative unit, keyed by ISO-3166-2 code.
type Subregion struct {
	// Name is the unit name used in the admin file lookup table.
	Name              string `yaml:"name"`
	Admin             string `yaml:"admin,omitempty"`
	PopulationDensity string `yaml:"populationDensity,omitempty"`
}

// Resolution holds the file names selected for a region and subregion.
type Resolution struct {
	Region            string
	Subregion         string
	SubregionName     string
	Admin             string
	PopulationDensity string
	PreParameters     string
	// OwnAdmin is true when the subregion ships its own admin file, which is then used as is.
	OwnAdmin bool
}

// Decode reads a YAML catalog.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	c := &Catalog{}
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, "unable to decode catalog")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Load reads the YAML catalog at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "unable to open catalog")
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}

	return c, nil
}

// Validate checks that every region can be resolved.
func (c *Catalog) Validate() error {
	if len(c.Regions) == 0 {
		return errors.Wrap(ErrInvalidCatalog, "no region")
	}
	for code, region := range c.Regions {
		if region.Admin == "" {
			return errors.Wrapf(ErrInvalidCatalog, "region %s has no admin file", code)
		}
		if region.PopulationDensity == "" && c.Defaults.PopulationDensity == "" {
			return errors.Wrapf(ErrInvalidCatalog, "region %s has no population density file", code)
		}
		if region.PreParameters == "" && c.Defaults.PreParameters == "" {
			return errors.Wrapf(ErrInvalidCatalog, "region %s has no pre-parameters file", code)
		}
		for subCode, sub := range region.Subregions {
			if sub.Name == "" {
				return errors.Wrapf(ErrInvalidCatalog, "subregion %s has no name", subCode)
			}
		}
	}

	return nil
}

// Resolve selects the files for a region and an optional subregion. Subregion files take
// precedence over region files, which take precedence over the defaults.
func (c *Catalog) Resolve(region, subregion string) (Resolution, error) {
	r, ok := c.Regions[region]
	if !ok {
		return Resolution{}, errors.Wrapf(ErrUnknownRegion, "%q", region)
	}

	res := Resolution{
		Region:            region,
		Subregion:         subregion,
		Admin:             r.Admin,
		PopulationDensity: firstNonEmpty(r.PopulationDensity, c.Defaults.PopulationDensity),
		PreParameters:     firstNonEmpty(r.PreParameters, c.Defaults.PreParameters),
	}
	if subregion == "" {
		return res, nil
	}

	sub, ok := r.Subregions[subregion]
	if !ok {
		return Resolution{}, errors.Wrapf(ErrUnknownSubregion, "%q in region %q", subregion, region)
	}
	res.SubregionName = sub.Name
	if sub.Admin != "" {
		res.Admin = sub.Admin
		res.OwnAdmin = true
	}
	res.PopulationDensity = firstNonEmpty(sub.PopulationDensity, res.PopulationDensity)

	return res, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
