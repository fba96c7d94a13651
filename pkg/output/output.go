// Package output converts the severity table written by CovidSim into the generalized
// model output.
package output

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-covidsim/pkg/modelinput"
)

// SeverityFile is the name of the severity table, relative to the simulator output prefix.
const SeverityFile = "result.avNE.severity.xls"

const timeColumn = "t"

// ModelOutput is the generalized output of a model run.
type ModelOutput struct {
	Metadata  modelinput.ModelInput `json:"metadata"`
	Time      Time                  `json:"time"`
	Aggregate Aggregate             `json:"aggregate"`
}

// Time describes the simulated days. Timestamps are days since T0.
type Time struct {
	T0         string     `json:"t0"`
	Timestamps []float64  `json:"timestamps"`
	Extent     [2]float64 `json:"extent"`
}

type Aggregate struct {
	Metrics SeverityMetrics `json:"metrics"`
}

// SeverityMetrics are the daily counts of people per severity level.
type SeverityMetrics struct {
	Mild         []float64 `json:"Mild"`
	ILI          []float64 `json:"ILI"`
	SARI         []float64 `json:"SARI"`
	Critical     []float64 `json:"Critical"`
	CritRecov    []float64 `json:"CritRecov"`
	IncDeath     []float64 `json:"incDeath"`
	CumMild      []float64 `json:"cumMild"`
	CumILI       []float64 `json:"cumILI"`
	CumSARI      []float64 `json:"cumSARI"`
	CumCritical  []float64 `json:"cumCritical"`
	CumCritRecov []float64 `json:"cumCritRecov"`
}

// columns returns the metric series by column name of the severity table.
func (m *SeverityMetrics) columns() []namedSeries {
	return []namedSeries{
		{"Mild", &m.Mild},
		{"ILI", &m.ILI},
		{"SARI", &m.SARI},
		{"Critical", &m.Critical},
		{"CritRecov", &m.CritRecov},
		{"incDeath", &m.IncDeath},
		{"cumMild", &m.CumMild},
		{"cumILI", &m.CumILI},
		{"cumSARI", &m.CumSARI},
		{"cumCritical", &m.CumCritical},
		{"cumCritRecov", &m.CumCritRecov},
	}
}

type namedSeries struct {
	name   string
	series *[]float64
}

// Convert reads a tab-separated severity table. t0 is the day the timestamps are counted
// from.
func Convert(input modelinput.ModelInput, r io.Reader, t0 time.Time) (*ModelOutput, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.FieldsPerRecord = -1
	tsv.LazyQuotes = true

	header, err := tsv.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrEmptyTable, "no header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to read header")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	out := &ModelOutput{
		Metadata: input,
		Time:     Time{T0: t0.UTC().Format(modelinput.DateLayout)},
	}
	timeCol, ok := index[timeColumn]
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, "%q", timeColumn)
	}
	columns := out.Aggregate.Metrics.columns()
	columnIndexes := make([]int, len(columns))
	for i, c := range columns {
		idx, ok := index[c.name]
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "%q", c.name)
		}
		columnIndexes[i] = idx
		*c.series = []float64{}
	}

	for rowNum := 1; ; rowNum++ {
		row, err := tsv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read row %d", rowNum)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		t, err := cell(row, timeCol, rowNum)
		if err != nil {
			return nil, err
		}
		out.Time.Timestamps = append(out.Time.Timestamps, t)
		for i, c := range columns {
			v, err := cell(row, columnIndexes[i], rowNum)
			if err != nil {
				return nil, err
			}
			*c.series = append(*c.series, v)
		}
	}

	n := len(out.Time.Timestamps)
	if n == 0 {
		return nil, errors.Wrap(ErrEmptyTable, "no row")
	}
	out.Time.Extent = [2]float64{out.Time.Timestamps[0], out.Time.Timestamps[n-1]}

	return out, nil
}

func cell(row []string, idx, rowNum int) (float64, error) {
	if idx >= len(row) {
		return 0, errors.Wrapf(ErrInvalidNumber, "row %d: missing column %d", rowNum, idx+1)
	}
	raw := strings.TrimSpace(row[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidNumber, "row %d: %q", rowNum, raw)
	}

	return v, nil
}
