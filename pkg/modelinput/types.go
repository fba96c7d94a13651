package modelinput

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the ISO-8601 calendar date layout used by the API.
const DateLayout = "2006-01-02"

// Intensity is the level of an intervention.
type Intensity string

const (
	Mild       Intensity = "mild"
	Moderate   Intensity = "moderate"
	Aggressive Intensity = "aggressive"
)

// Valid reports whether i is one of the known intensities.
func (i Intensity) Valid() bool {
	switch i {
	case Mild, Moderate, Aggressive:
		return true
	default:
		return false
	}
}

func (i *Intensity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "intensity must be a string")
	}
	v := Intensity(s)
	if !v.Valid() {
		return errors.Wrapf(ErrInvalidIntensity, "%q", s)
	}
	*i = v

	return nil
}

// Ptr returns a pointer to i, handy for building periods.
func (i Intensity) Ptr() *Intensity {
	return &i
}

// Date is a calendar date at midnight UTC.
type Date struct {
	time.Time
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, errors.Wrapf(ErrInvalidDate, "%q", s)
	}

	return Date{t}, nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}

	return d
}

func (d Date) String() string {
	return d.UTC().Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "date must be a string")
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v

	return nil
}

// RunID identifies a run. The API sends it either as a number or as a string.
type RunID string

func (r *RunID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "invalid run id")
		}
		*r = RunID(s)

		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "run id must be a string or a number")
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return errors.Wrap(err, "run id must be a string or a number")
	}
	*r = RunID(n.String())

	return nil
}
