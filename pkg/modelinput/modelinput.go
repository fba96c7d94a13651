// Package modelinput defines the generalized description of an epidemiological model run,
// shared by every simulator connector.
package modelinput

// ModelInput is a generalized description of the input to an epidemiological model.
type ModelInput struct {
	// Region is an ISO-3166 country code.
	Region string `json:"region"`
	// Subregion is an ISO-3166-2 code. Empty means the whole region.
	Subregion  string          `json:"subregion,omitempty"`
	Parameters ModelParameters `json:"parameters"`
}

// ModelParameters holds the calibration data and the intervention schedule.
type ModelParameters struct {
	// CalibrationDate is the date of the most recent case data in the region.
	CalibrationDate Date `json:"calibrationDate"`
	// CalibrationCaseCount is the total number of confirmed cases before the calibration date.
	CalibrationCaseCount int `json:"calibrationCaseCount"`
	// CalibrationDeathCount is the total number of deaths before the calibration date.
	CalibrationDeathCount int `json:"calibrationDeathCount"`
	// R0 is the assumed reproduction number. Nil lets each model use its own default.
	R0 *float64 `json:"r0"`
	// InterventionPeriods are sorted by start date.
	InterventionPeriods []InterventionPeriod `json:"interventionPeriods"`
}

// InterventionPeriod is a time window with a fixed set of interventions.
// A nil intensity means the intervention is not in place during the period.
type InterventionPeriod struct {
	StartDate Date `json:"startDate"`

	SocialDistancing        *Intensity `json:"socialDistancing,omitempty"`
	SchoolClosure           *Intensity `json:"schoolClosure,omitempty"`
	CaseIsolation           *Intensity `json:"caseIsolation,omitempty"`
	VoluntaryHomeQuarantine *Intensity `json:"voluntaryHomeQuarantine,omitempty"`

	// ReductionPopulationContact is the estimated reduction in contact, in percent, resulting
	// from all of the above. Some models use it instead of the individual interventions.
	ReductionPopulationContact *float64 `json:"reductionPopulationContact,omitempty"`
}

// RequestInput is the envelope a model run is submitted with.
type RequestInput struct {
	ID            RunID      `json:"id"`
	CallbackURL   *string    `json:"callbackURL"`
	Configuration ModelInput `json:"configuration"`
}

// R0OrDefault returns R0, or def when it is not set.
func (p ModelParameters) R0OrDefault(def float64) float64 {
	if p.R0 == nil {
		return def
	}

	return *p.R0
}
