package modelinput

import (
	"github.com/pkg/errors"
)

// Validate checks the structural constraints connectors rely on: a region, non-negative
// counts, a positive r0, reductions in percent, and periods sorted by start date.
func (in ModelInput) Validate() error {
	if in.Region == "" {
		return errors.Wrap(ErrInvalidInput, "region is required")
	}

	return in.Parameters.Validate()
}

func (p ModelParameters) Validate() error {
	if p.CalibrationDate.IsZero() {
		return errors.Wrap(ErrInvalidInput, "calibrationDate is required")
	}
	if p.CalibrationCaseCount < 0 {
		return errors.Wrapf(ErrInvalidInput, "calibrationCaseCount must not be negative, got %d", p.CalibrationCaseCount)
	}
	if p.CalibrationDeathCount < 0 {
		return errors.Wrapf(ErrInvalidInput, "calibrationDeathCount must not be negative, got %d", p.CalibrationDeathCount)
	}
	if p.R0 != nil && *p.R0 <= 0 {
		return errors.Wrapf(ErrInvalidInput, "r0 must be positive, got %v", *p.R0)
	}

	for i, period := range p.InterventionPeriods {
		if period.StartDate.IsZero() {
			return errors.Wrapf(ErrInvalidInput, "interventionPeriods[%d]: startDate is required", i)
		}
		if i > 0 && period.StartDate.Before(p.InterventionPeriods[i-1].StartDate.Time) {
			return errors.Wrapf(ErrInvalidInput, "interventionPeriods[%d]: startDate %s is before the previous period", i, period.StartDate)
		}
		if r := period.ReductionPopulationContact; r != nil && (*r < 0 || *r > 100) {
			return errors.Wrapf(ErrInvalidInput, "interventionPeriods[%d]: reductionPopulationContact must be between 0 and 100, got %v", i, *r)
		}
		for name, intensity := range map[string]*Intensity{
			"socialDistancing":        period.SocialDistancing,
			"schoolClosure":           period.SchoolClosure,
			"caseIsolation":           period.CaseIsolation,
			"voluntaryHomeQuarantine": period.VoluntaryHomeQuarantine,
		} {
			if intensity != nil && !intensity.Valid() {
				return errors.Wrapf(ErrInvalidIntensity, "interventionPeriods[%d]: %s %q", i, name, *intensity)
			}
		}
	}

	return nil
}
