// Package pipeline runs a series of named stages connected by channels.
//
// A root step emits elements, steps transform them one at a time, optionally with several
// workers, and a sink consumes them. Every stage runs in its own goroutine. The pipeline
// stops on the first error, which is reported with the name of the failing stage, and
// cancels the other stages.
//
// Options implementing model.PipelineOption are notified when stages are added and every
// time an element moves forward. The measure and drawer packages provide such options.
package pipeline
