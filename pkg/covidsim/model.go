// Package covidsim connects the generalized model input to the Imperial College CovidSim
// simulator. It generates the simulator input files, builds its command line and converts
// its output.
package covidsim

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/pkg/catalog"
	"github.com/askiada/go-covidsim/pkg/imperial"
	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// Dirs are the directories the connector works with.
type Dirs struct {
	// Bin holds the CovidSim binary.
	Bin string
	// Log receives the simulator log.
	Log string
	// Data holds the admin_units, populations and param_files directories.
	Data string
	// Input receives the generated input files.
	Input string
	// Output receives the simulator results.
	Output string
}

// Model is the CovidSim connector.
type Model struct {
	dirs         Dirs
	threadCount  int
	concurrency  int
	catalog      *catalog.Catalog
	compiler     *imperial.Compiler
	logger       *zap.Logger
	pipelineOpts []model.PipelineOption
}

// Option configures a Model.
type Option func(m *Model)

// WithThreadCount sets the number of threads of the simulator.
func WithThreadCount(n int) Option {
	return func(m *Model) {
		m.threadCount = n
	}
}

// WithCatalog replaces the default region catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(m *Model) {
		m.catalog = c
	}
}

// WithCompiler replaces the default intervention compiler.
func WithCompiler(c *imperial.Compiler) Option {
	return func(m *Model) {
		m.compiler = c
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithPipelineOptions adds options to the input generation pipeline.
func WithPipelineOptions(opts ...model.PipelineOption) Option {
	return func(m *Model) {
		m.pipelineOpts = append(m.pipelineOpts, opts...)
	}
}

// WithConcurrency sets the number of input files generated at the same time.
func WithConcurrency(n int) Option {
	return func(m *Model) {
		m.concurrency = n
	}
}

// New creates a connector. Without WithCatalog it uses the catalog of the supported regions.
func New(dirs Dirs, opts ...Option) (*Model, error) {
	m := &Model{
		dirs:        dirs,
		threadCount: 1,
		concurrency: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.threadCount < 1 {
		return nil, errors.Wrapf(ErrInvalidModel, "thread count %d", m.threadCount)
	}
	if m.concurrency < 1 {
		m.concurrency = 1
	}
	if m.compiler == nil {
		m.compiler = imperial.New()
	}
	if m.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, errors.Wrap(err, "unable to load default catalog")
		}
		m.catalog = c
	}

	return m, nil
}

// Epoch is the day the simulator counts days from.
func (m *Model) Epoch() time.Time {
	return m.compiler.Epoch()
}
