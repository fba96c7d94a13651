package imperial

import (
	"github.com/askiada/go-covidsim/pkg/modelinput"
	"github.com/askiada/go-covidsim/pkg/params"
)

// AssignPreParameters sets the trigger parameters of a pre-parameter document.
//
// The alert is triggered on deaths, on the calibration date. Interventions start with the
// first intervention period, or today when there is none. The alert trigger is gated
// behind the interventions only when calibration does not happen before they start.
func (c *Compiler) AssignPreParameters(doc *params.Document, p modelinput.ModelParameters) {
	calibrationDays := c.daysSinceEpoch(p.CalibrationDate)

	var interventionStartDays int
	if len(p.InterventionPeriods) > 0 {
		interventionStartDays = c.daysSinceEpoch(p.InterventionPeriods[0].StartDate)
	} else {
		interventionStartDays = daysBetween(c.epoch, c.now())
	}

	doc.Set(keyTriggerDay, params.Number(calibrationDays))
	doc.Set(keyAccumulateDays, params.Number(accumulateWindowDays))
	doc.Set(keyDeathsBeforeAlert, params.Number(p.CalibrationDeathCount))
	doc.Set(keyTriggerOnDeaths, params.Number(1))

	doc.Set(keyInterventionsStartDay, params.Number(interventionStartDays))
	doc.Set(keyAlertAfterInterventions, flag(calibrationDays >= interventionStartDays))

	doc.Set(keyTreatmentTriggerIncidence, params.Number(0))
}

func flag(b bool) params.Number {
	if b {
		return 1
	}

	return 0
}
