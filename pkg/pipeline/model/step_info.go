package model

// StepType is the role of a step in the pipeline.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

var (
	// StartStep is the parent of every root step.
	StartStep = &StepInfo{Name: "start"}
	// EndStep follows every sink.
	EndStep = &StepInfo{Name: "end"}
)
