package imperial

import (
	"strings"

	"github.com/askiada/go-covidsim/pkg/params"
)

const overTime = "over time"

// SetParameterFamilyTo0 zeroes every parameter whose name contains family, ignoring case.
//
// Scalars become 0. Vectors and matrices keep their shape, except that the top-level length
// of an "over time" parameter becomes periodCount. Matrix rows keep the length of the first
// original row.
func SetParameterFamilyTo0(doc *params.Document, family string, periodCount int) {
	family = strings.ToLower(family)
	for _, entry := range doc.Entries() {
		name := strings.ToLower(entry.Key)
		if !strings.Contains(name, family) {
			continue
		}

		switch v := entry.Value.(type) {
		case params.Vector:
			doc.Set(entry.Key, zeroes(topLevelLength(name, len(v), periodCount)))
		case params.Matrix:
			rowLen := 0
			if len(v) > 0 {
				rowLen = len(v[0])
			}
			m := make(params.Matrix, topLevelLength(name, len(v), periodCount))
			for i := range m {
				m[i] = zeroes(rowLen)
			}
			doc.Set(entry.Key, m)
		default:
			doc.Set(entry.Key, params.Number(0))
		}
	}
}

func topLevelLength(lowerName string, current, periodCount int) int {
	if strings.Contains(lowerName, overTime) {
		return periodCount
	}

	return current
}

func zeroes(n int) params.Vector {
	return params.Repeat(params.Number(0), n)
}
