package imperial

import (
	"github.com/askiada/go-covidsim/pkg/modelinput"
	"github.com/askiada/go-covidsim/pkg/params"
)

// AssignParameters encodes the intervention periods as time-varying simulator parameters.
// The document is left untouched when there are no periods.
func (c *Compiler) AssignParameters(doc *params.Document, p modelinput.ModelParameters) {
	periods := p.InterventionPeriods
	periodCount := len(periods)
	if periodCount == 0 {
		return
	}
	doc.Set(keyVaryEfficacies, params.Number(1))

	// Time-varying efficacies that are not overridden below must still have one value
	// per period.
	for _, key := range legacyTimeVaryingKeys {
		if v, ok := doc.Get(key); ok {
			doc.Set(key, resize(v, periodCount))
		}
	}

	for _, family := range unsupportedFamilies {
		SetParameterFamilyTo0(doc, family, periodCount)
	}

	count := params.Number(periodCount)
	doc.Set(keyCaseIsolationChangeCount, count)
	doc.Set(keyHouseholdQuarantineChangeCount, count)
	doc.Set(keySocialDistancingChangeCount, count)
	doc.Set(keyPlaceClosureChangeCount, count)

	start := periods[0].StartDate.Time
	changeTimes := make([]float64, periodCount)
	for i, period := range periods {
		changeTimes[i] = float64(daysBetween(start, period.StartDate.Time))
	}
	doc.Set(keyCaseIsolationChangeTimes, params.Numbers(changeTimes...))
	doc.Set(keyHouseholdQuarantineChangeTimes, params.Numbers(changeTimes...))
	doc.Set(keySocialDistancingChangeTimes, params.Numbers(changeTimes...))
	doc.Set(keyPlaceClosureChangeTimes, params.Numbers(changeTimes...))

	doc.Set(keyCaseIsolationStart, params.Number(0))
	doc.Set(keyCaseIsolationDuration, params.Number(policyDuration))
	doc.Set(keyCaseIsolationProportion, perPeriod(periods, func(period modelinput.InterventionPeriod) float64 {
		return proportionForIntensity(period.CaseIsolation)
	}))

	doc.Set(keyHouseholdQuarantineStart, params.Number(0))
	doc.Set(keyHouseholdQuarantineDuration, params.Number(policyDuration))
	doc.Set(keyHouseholdQuarantineCompliance, perPeriod(periods, func(period modelinput.InterventionPeriod) float64 {
		return proportionForIntensity(period.VoluntaryHomeQuarantine)
	}))

	doc.Set(keySocialDistancingStart, params.Number(0))
	doc.Set(keySocialDistancingDuration, params.Number(policyDuration))
	doc.Set(keySocialDistancingContacts, perPeriod(periods, func(period modelinput.InterventionPeriod) float64 {
		return invertProportion(proportionForIntensity(period.SocialDistancing))
	}))

	doc.Set(keyPlaceClosureStart, params.Number(0))
	doc.Set(keyPlaceClosureDuration, params.Number(policyDuration))
	doc.Set(keyPlaceClosureDurationOverTime, params.Repeat(params.Number(policyDuration), periodCount))

	// Primary school, secondary school and university close; workplaces stay open.
	openPlaces := make(params.Matrix, periodCount)
	for i, period := range periods {
		open := invertProportion(proportionForIntensity(period.SchoolClosure))
		openPlaces[i] = params.Numbers(open, open, open, 1)
	}
	doc.Set(keyPlacesOpenAfterClosure, openPlaces)
}

func perPeriod(periods []modelinput.InterventionPeriod, fn func(modelinput.InterventionPeriod) float64) params.Vector {
	values := make(params.Vector, len(periods))
	for i, period := range periods {
		values[i] = params.Number(fn(period))
	}

	return values
}

// resize truncates v to n values, or pads it by repeating its first value. Matrices are
// resized row-wise and a scalar is repeated n times.
func resize(v params.Value, n int) params.Value {
	switch v := v.(type) {
	case params.Vector:
		var pad params.Scalar = params.Number(0)
		if len(v) > 0 {
			pad = v[0]
		}
		out := make(params.Vector, n)
		for i := range out {
			if i < len(v) {
				out[i] = v[i]
			} else {
				out[i] = pad
			}
		}

		return out
	case params.Matrix:
		out := make(params.Matrix, n)
		for i := range out {
			switch {
			case i < len(v):
				out[i] = v[i]
			case len(v) > 0:
				out[i] = params.Clone(v[0]).(params.Vector)
			default:
				out[i] = params.Vector{params.Number(0)}
			}
		}

		return out
	case params.Scalar:
		return params.Repeat(v, n)
	default:
		return v
	}
}
