package model

import "time"

// PipelineOption defines the interface for pipeline options.
//
// Prepare hooks run while the pipeline is built, in the order steps are added. Output hooks
// may run concurrently from the workers of a step.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStep runs before a root step or a step starts.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time something is pushed to the output of the step.
	OnStepOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error

	// PrepareSink runs before the sink starts.
	PrepareSink(parentStep, step *StepInfo) error
	// OnSinkOutput runs every time the sink consumes an element.
	OnSinkOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
	// AfterSink runs once the sink has consumed its input.
	AfterSink(step *StepInfo, totalDuration time.Duration) error

	// Finish runs after the pipeline is finished.
	Finish() error
}
