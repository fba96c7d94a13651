package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// AddSink adds the last stage of the pipeline. sinkFn is called for every element of input.
func AddSink[I any](p *Pipeline, name string, input *Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if p == nil {
		return ErrPipelineMustBeSet
	}
	if input == nil {
		return ErrInputMustBeSet
	}
	err := p.register(name)
	if err != nil {
		return err
	}

	details := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}
	for _, opt := range p.opts {
		err := opt.PrepareSink(input.details, details)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare sink function")
		}
	}

	errC := make(chan error, 1)
	go func() {
		defer close(errC)
		err := consume(p, input, details, sinkFn)
		if err != nil {
			errC <- err

			return
		}
		for _, opt := range p.opts {
			err := opt.AfterSink(details, time.Since(p.startTime))
			if err != nil {
				errC <- errors.Wrap(err, "unable to run after sink function")

				return
			}
		}
	}()
	p.errcList.add(newErrorChan(name, errC))

	return nil
}

func consume[I any](p *Pipeline, input *Step[I], details *model.StepInfo, sinkFn func(ctx context.Context, input I) error) error {
	for {
		start := time.Now()
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			err := sinkFn(p.ctx, in)
			if err != nil {
				return err
			}
			endFn := time.Since(startFn)
			for _, opt := range p.opts {
				err := opt.OnSinkOutput(input.details, details, time.Since(start), endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run sink output function")
				}
			}
		}
	}
}
