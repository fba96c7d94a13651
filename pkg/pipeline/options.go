package pipeline

// StepOption configures a step.
type StepOption[O any] func(s *Step[O])

// StepConcurrency sets the number of workers of a step.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *Step[O]) {
		s.details.Concurrent = concurrent
	}
}

// StepBufferSize sets the capacity of the output channel of a step.
func StepBufferSize[O any](size int) StepOption[O] {
	return func(s *Step[O]) {
		s.bufferSize = size
	}
}
