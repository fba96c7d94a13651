package pipeline

import (
	"context"

	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// AddRootStep adds a step that feeds the pipeline. stepFn must stop sending when ctx is
// done.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	err := p.register(name)
	if err != nil {
		return nil, err
	}

	step := newStep(model.RootStepType, name, opts...)
	err = p.prepareStep(model.StartStep, step.details)
	if err != nil {
		return nil, err
	}

	errC := make(chan error, 1)
	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()
		err := stepFn(p.ctx, step.Output)
		if err != nil {
			errC <- err
		}
	}()
	p.errcList.add(newErrorChan(name, errC))

	return step, nil
}

// SendTo sends v to c unless ctx is done first.
func SendTo[O any](ctx context.Context, c chan<- O, v O) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c <- v:
		return nil
	}
}
