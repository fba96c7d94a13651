package drawer

import (
	"time"

	"github.com/askiada/go-covidsim/pkg/pipeline/measure"
)

// Drawer renders the graph of a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// SetTotalTime sets the time elapsed since startTime as the label of the step.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure adds the step durations and colours the links by transport time.
	AddMeasure(measure measure.Measure) error
	// Draw writes the graph.
	Draw() error
}
