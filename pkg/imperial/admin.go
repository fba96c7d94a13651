package imperial

import "github.com/askiada/go-covidsim/pkg/params"

const subregionNameColumn = 2

// AssignAdminParameters restricts an administrative units document to a single level 1
// unit. The unit name lookup table must hold exactly one row whose third column is
// subregionName.
func (c *Compiler) AssignAdminParameters(doc *params.Document, subregionName string) error {
	doc.Set(keyIncludeHolidays, params.Number(0))
	doc.Set(keyFixPopulationSize, params.Number(0))
	doc.Set(keyCountriesToInclude, params.Number(0))
	doc.Set(keyAdminUnitsToInclude, params.Number(1))
	doc.Set(keyAdminUnitsList, params.Text(subregionName))

	doc.Delete(keyDetectedCasesThreshold)

	table, ok := doc.Get(keyAdminUnitCodes)
	if !ok {
		return &NotFoundError{Subregion: subregionName}
	}

	var matches params.Matrix
	for _, row := range rows(table) {
		if len(row) > subregionNameColumn && row[subregionNameColumn] == params.Text(subregionName) {
			matches = append(matches, row)
		}
	}
	if len(matches) != 1 {
		return &NotFoundError{Subregion: subregionName, Candidates: table}
	}
	doc.Set(keyAdminUnitCodes, matches)

	return nil
}

// rows returns the lines of a table value. A single line table is a Vector.
func rows(v params.Value) []params.Vector {
	switch v := v.(type) {
	case params.Matrix:
		return v
	case params.Vector:
		return []params.Vector{v}
	case params.Scalar:
		return []params.Vector{{v}}
	default:
		return nil
	}
}
