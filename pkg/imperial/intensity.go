package imperial

import "github.com/askiada/go-covidsim/pkg/modelinput"

// proportionForIntensity maps an intensity to a compliance proportion. A missing
// intervention has no effect.
func proportionForIntensity(i *modelinput.Intensity) float64 {
	if i == nil {
		return 0
	}

	switch *i {
	case modelinput.Mild:
		return 0.5
	case modelinput.Moderate:
		return 0.75
	case modelinput.Aggressive:
		return 0.9
	default:
		return 0
	}
}

// invertProportion turns a compliance proportion into a residual contact rate.
// The arithmetic is done in percent so that 0.9 gives exactly 0.1.
func invertProportion(p float64) float64 {
	return (100 - p*100) / 100
}
