package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context
	cancel    context.CancelFunc
	errcList  *errorChans
	names     map[string]struct{}
	opts      []model.PipelineOption
	startTime time.Time
}

// New creates a new pipeline. Steps start as soon as they are added and stop when ctx is
// done.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	dCtx, cancel := context.WithCancel(ctx)
	pipe := &Pipeline{
		ctx:       dCtx,
		cancel:    cancel,
		errcList:  &errorChans{},
		names:     make(map[string]struct{}),
		startTime: time.Now(),
		opts:      opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// register reserves a step name.
func (p *Pipeline) register(name string) error {
	if name == "" {
		return ErrStepNameMustBeSet
	}
	if _, ok := p.names[name]; ok {
		return errors.Wrapf(ErrDuplicateStep, "%q", name)
	}
	p.names[name] = struct{}{}

	return nil
}

// Run waits for every step to finish. On the first error the other steps are cancelled,
// and Run returns once they have all stopped.
func (p *Pipeline) Run() error {
	defer p.cancel()

	var firstErr error
	for err := range mergeErrors(p.errcList.list...) {
		if err != nil && firstErr == nil {
			firstErr = err
			p.cancel()
		}
	}
	if firstErr != nil {
		return firstErr
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
