package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// Step is a stage of the pipeline. Output is closed once the step is done.
type Step[O any] struct {
	Output     chan O
	details    *model.StepInfo
	bufferSize int
}

// Name returns the name of the step.
func (s *Step[O]) Name() string {
	return s.details.Name
}

func newStep[O any](stepType model.StepType, name string, opts ...StepOption[O]) *Step[O] {
	step := &Step[O]{
		details: &model.StepInfo{
			Type:       stepType,
			Name:       name,
			Concurrent: 1,
		},
	}
	for _, opt := range opts {
		opt(step)
	}
	if step.details.Concurrent < 1 {
		step.details.Concurrent = 1
	}
	step.Output = make(chan O, step.bufferSize)

	return step
}

func (p *Pipeline) prepareStep(parent, step *model.StepInfo) error {
	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare step function")
		}
	}

	return nil
}

func (p *Pipeline) onStepOutput(parent, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range p.opts {
		err := opt.OnStepOutput(parent, step, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run step output function")
		}
	}

	return nil
}

func sequentialOneToOneFn[I any, O any](ctx context.Context, p *Pipeline, goIdx int, input *Step[I], output *Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			endFn := time.Since(startFn)

			// check the context again so that no worker keeps feeding a cancelled pipeline
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- out:
				err := p.onStepOutput(input.details, output.details, time.Since(start), endFn)
				if err != nil {
					return err
				}
			}
		}
	}
}

func oneToOne[I any, O any](ctx context.Context, p *Pipeline, input *Step[I], output *Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	if output.details.Concurrent == 1 {
		return sequentialOneToOneFn(ctx, p, 0, input, output, oneToOneFn)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.details.Concurrent)
	for goIdx := 0; goIdx < output.details.Concurrent; goIdx++ {
		localGoIdx := goIdx
		errGrp.Go(func() error {
			return sequentialOneToOneFn(dCtx, p, localGoIdx, input, output, oneToOneFn)
		})
	}

	return errGrp.Wait()
}

// AddStepOneToOne adds a step that maps every element of input to one output element.
func AddStepOneToOne[I any, O any](p *Pipeline, name string, input *Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}
	err := p.register(name)
	if err != nil {
		return nil, err
	}

	step := newStep(model.NormalStepType, name, opts...)
	err = p.prepareStep(input.details, step.details)
	if err != nil {
		return nil, err
	}

	errC := make(chan error, 1)
	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()
		err := oneToOne(p.ctx, p, input, step, oneToOneFn)
		if err != nil {
			errC <- err
		}
	}()
	p.errcList.add(newErrorChan(name, errC))

	return step, nil
}
