package pipeline_test

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-covidsim/pkg/pipeline"
	"github.com/askiada/go-covidsim/pkg/pipeline/drawer"
	"github.com/askiada/go-covidsim/pkg/pipeline/measure"
	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

func emit(total int) func(ctx context.Context, rootChan chan<- int) error {
	return func(ctx context.Context, rootChan chan<- int) error {
		for i := 0; i < total; i++ {
			err := pipeline.SendTo(ctx, rootChan, i)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) sink(_ context.Context, s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, s)

	return nil
}

func TestAddStepOneToOneNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddStepOneToOne(nil, "step", &pipeline.Step[int]{}, func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddStepOneToOneNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	_, err = pipeline.AddStepOneToOne(pipe, "step", (*pipeline.Step[int])(nil), func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestAddRootStepNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddRootStep(nil, "root", emit(10))
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddSinkNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", (*pipeline.Step[string])(nil), (&collector{}).sink)
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestStepNames(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "root", emit(0))
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name())

	_, err = pipeline.AddRootStep(pipe, "root", emit(0))
	assert.ErrorIs(t, err, pipeline.ErrDuplicateStep)

	_, err = pipeline.AddStepOneToOne(pipe, "", root, func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrStepNameMustBeSet)

	err = pipeline.AddSink(pipe, "sink", root, func(ctx context.Context, input int) error { return nil })
	require.NoError(t, err)
	require.NoError(t, pipe.Run())
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
		bufferSize int
	}{
		"sequential":           {concurrent: 1},
		"concurrent":           {concurrent: 3},
		"buffered concurrent":  {concurrent: 4, bufferSize: 2},
		"concurrency below 1":  {concurrent: 0},
		"more workers than in": {concurrent: 20},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(context.Background())
			require.NoError(t, err)

			root, err := pipeline.AddRootStep(pipe, "root", emit(10))
			require.NoError(t, err)

			double, err := pipeline.AddStepOneToOne(pipe, "double", root, func(ctx context.Context, input int) (int, error) {
				return input * 2, nil
			}, pipeline.StepConcurrency[int](tc.concurrent), pipeline.StepBufferSize[int](tc.bufferSize))
			require.NoError(t, err)

			format, err := pipeline.AddStepOneToOne(pipe, "format", double, func(ctx context.Context, input int) (string, error) {
				return strconv.Itoa(input), nil
			})
			require.NoError(t, err)

			c := &collector{}
			err = pipeline.AddSink(pipe, "sink", format, c.sink)
			require.NoError(t, err)

			require.NoError(t, pipe.Run())
			assert.ElementsMatch(t, []string{"0", "2", "4", "6", "8", "10", "12", "14", "16", "18"}, c.got)
		})
	}
}

func TestPipelineErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rootErr bool
		stepErr bool
		sinkErr bool
		wantMsg string
	}{
		"root step": {rootErr: true, wantMsg: "root: "},
		"step":      {stepErr: true, wantMsg: "double: go routine"},
		"sink":      {sinkErr: true, wantMsg: "sink: "},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(context.Background())
			require.NoError(t, err)

			root, err := pipeline.AddRootStep(pipe, "root", func(ctx context.Context, rootChan chan<- int) error {
				for i := 0; i < 100; i++ {
					if tc.rootErr && i == 5 {
						return assert.AnError
					}
					err := pipeline.SendTo(ctx, rootChan, i)
					if err != nil {
						return err
					}
				}

				return nil
			})
			require.NoError(t, err)

			double, err := pipeline.AddStepOneToOne(pipe, "double", root, func(ctx context.Context, input int) (int, error) {
				if tc.stepErr && input == 5 {
					return 0, assert.AnError
				}

				return input * 2, nil
			}, pipeline.StepConcurrency[int](2))
			require.NoError(t, err)

			err = pipeline.AddSink(pipe, "sink", double, func(ctx context.Context, input int) error {
				if tc.sinkErr && input == 10 {
					return assert.AnError
				}

				return nil
			})
			require.NoError(t, err)

			err = pipe.Run()
			require.ErrorIs(t, err, assert.AnError)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestPipelineCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "root", func(ctx context.Context, rootChan chan<- int) error {
		for i := 0; ; i++ {
			if i == 5 {
				cancel()
			}
			err := pipeline.SendTo(ctx, rootChan, i)
			if err != nil {
				return err
			}
		}
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", root, func(ctx context.Context, input int) error {
		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	assert.ErrorIs(t, err, context.Canceled)
}

type failingOption struct {
	newErr    error
	finishErr error
}

func (o *failingOption) New() error { return o.newErr }

func (o *failingOption) PrepareStep(_, _ *model.StepInfo) error { return nil }

func (o *failingOption) OnStepOutput(_, _ *model.StepInfo, _, _ time.Duration) error { return nil }

func (o *failingOption) PrepareSink(_, _ *model.StepInfo) error { return nil }

func (o *failingOption) OnSinkOutput(_, _ *model.StepInfo, _, _ time.Duration) error { return nil }

func (o *failingOption) AfterSink(_ *model.StepInfo, _ time.Duration) error { return nil }

func (o *failingOption) Finish() error { return o.finishErr }

func TestPipelineOptionErrors(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(context.Background(), &failingOption{newErr: assert.AnError})
	assert.ErrorIs(t, err, assert.AnError)

	pipe, err := pipeline.New(context.Background(), &failingOption{finishErr: assert.AnError})
	require.NoError(t, err)
	root, err := pipeline.AddRootStep(pipe, "root", emit(3))
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "sink", root, func(ctx context.Context, input int) error { return nil }))

	err = pipe.Run()
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "unable to finish pipeline option")
}

func TestPipelineMeasureAndDrawer(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	buf := &bytes.Buffer{}
	pipe, err := pipeline.New(context.Background(),
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), msr),
	)
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "read", emit(6))
	require.NoError(t, err)
	parsed, err := pipeline.AddStepOneToOne(pipe, "parse", root, func(ctx context.Context, input int) (int, error) {
		time.Sleep(time.Millisecond)

		return input, nil
	}, pipeline.StepConcurrency[int](2))
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "write", parsed, func(ctx context.Context, input int) error {
		return nil
	}))

	require.NoError(t, pipe.Run())

	assert.Equal(t, []string{"end", "parse", "read", "start", "write"}, msr.StepNames())
	assert.EqualValues(t, 6, msr.GetMetric("parse").Count())
	assert.EqualValues(t, 6, msr.GetMetric("write").Count())
	assert.GreaterOrEqual(t, msr.GetMetric("parse").AVGDuration(), time.Millisecond)
	assert.Contains(t, msr.GetMetric("parse").AVGTransportDuration(), "read")
	assert.Greater(t, msr.GetMetric("end").GetTotalDuration(), time.Duration(0))

	dot := buf.String()
	assert.Contains(t, dot, "strict digraph {")
	assert.Contains(t, dot, `"start" -> "read"`)
	assert.Contains(t, dot, `"read" -> "parse" [color=`)
	assert.Contains(t, dot, `"parse" -> "write" [color=`)
	assert.Contains(t, dot, `"write" -> "end"`)
}

func TestRunReportsFirstErrorOnly(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("first")
	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	root, err := pipeline.AddRootStep(pipe, "root", func(ctx context.Context, rootChan chan<- int) error {
		return errFirst
	})
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "sink", root, func(ctx context.Context, input int) error {
		return nil
	}))

	err = pipe.Run()
	require.ErrorIs(t, err, errFirst)
	assert.Equal(t, "root: first", err.Error())
}
