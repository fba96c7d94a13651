package covidsim

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/pkg/catalog"
	"github.com/askiada/go-covidsim/pkg/modelinput"
	"github.com/askiada/go-covidsim/pkg/params"
	"github.com/askiada/go-covidsim/pkg/pipeline"
)

const (
	binaryName             = "CovidSim"
	parametersTemplateName = "p_NoInt.txt"
	preParametersFileName  = "pre-params.txt"
	parametersFileName     = "input-params.txt"
	adminFileName          = "admin-params.txt"

	adminUnitsDir    = "admin_units"
	populationsDir   = "populations"
	parameterDir     = "param_files"
	generatedPerm    = 0o644
	generatedDirPerm = 0o755
)

// RunInput is everything a simulator run needs.
type RunInput struct {
	ModelInput                modelinput.ModelInput `json:"modelInput"`
	BinaryPath                string                `json:"binaryPath"`
	AdminFilePath             string                `json:"adminFilePath"`
	PopulationDensityFilePath string                `json:"populationDensityFilePath"`
	PreParametersFilePath     string                `json:"preParametersFilePath"`
	ParametersFilePath        string                `json:"parametersFilePath"`
	SubregionName             string                `json:"subregionName,omitempty"`
	// InputFiles lists the files the run depends on, for storage alongside the results.
	InputFiles []string `json:"inputFiles"`
}

// inputJob generates one simulator input file from a template.
type inputJob struct {
	name         string
	templatePath string
	outputPath   string
	// transform edits the parsed template. A nil transform copies the template verbatim.
	transform func(doc *params.Document) error
	text      string
}

// Inputs generates the simulator input files for in and returns the paths of every file
// of the run.
func (m *Model) Inputs(ctx context.Context, in modelinput.ModelInput) (*RunInput, error) {
	err := in.Validate()
	if err != nil {
		return nil, err
	}
	res, err := m.catalog.Resolve(in.Region, in.Subregion)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(m.dirs.Input, generatedDirPerm)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create input directory")
	}

	ri := &RunInput{
		ModelInput:                in,
		BinaryPath:                filepath.Join(m.dirs.Bin, binaryName),
		PopulationDensityFilePath: filepath.Join(m.dirs.Data, populationsDir, res.PopulationDensity),
		PreParametersFilePath:     filepath.Join(m.dirs.Input, preParametersFileName),
		ParametersFilePath:        filepath.Join(m.dirs.Input, parametersFileName),
		SubregionName:             res.SubregionName,
	}
	jobs := m.inputJobs(in, res, ri)

	err = m.generate(ctx, jobs)
	if err != nil {
		return nil, err
	}

	ri.InputFiles = append(ri.InputFiles, jobs[0].templatePath, jobs[1].templatePath)
	if jobs[2].transform != nil {
		ri.InputFiles = append(ri.InputFiles, jobs[2].templatePath)
	}
	ri.InputFiles = append(ri.InputFiles,
		ri.AdminFilePath,
		ri.PopulationDensityFilePath,
		ri.PreParametersFilePath,
		ri.ParametersFilePath,
	)

	return ri, nil
}

// inputJobs lists the pre-parameters, parameters and admin jobs, in this order. The admin
// file is filtered down to the subregion, unless the subregion has its own admin file or
// there is no subregion: it is then copied as is.
func (m *Model) inputJobs(in modelinput.ModelInput, res catalog.Resolution, ri *RunInput) []*inputJob {
	p := in.Parameters
	adminTemplate := filepath.Join(m.dirs.Data, adminUnitsDir, res.Admin)

	admin := &inputJob{
		name:         "admin",
		templatePath: adminTemplate,
		outputPath:   filepath.Join(m.dirs.Input, filepath.Base(adminTemplate)),
	}
	if res.SubregionName != "" && !res.OwnAdmin {
		admin.outputPath = filepath.Join(m.dirs.Input, adminFileName)
		admin.transform = func(doc *params.Document) error {
			return m.compiler.AssignAdminParameters(doc, res.SubregionName)
		}
	}
	ri.AdminFilePath = admin.outputPath

	return []*inputJob{
		{
			name:         "pre-parameters",
			templatePath: filepath.Join(m.dirs.Data, parameterDir, res.PreParameters),
			outputPath:   ri.PreParametersFilePath,
			transform: func(doc *params.Document) error {
				m.compiler.AssignPreParameters(doc, p)

				return nil
			},
		},
		{
			name:         "parameters",
			templatePath: filepath.Join(m.dirs.Data, parameterDir, parametersTemplateName),
			outputPath:   ri.ParametersFilePath,
			transform: func(doc *params.Document) error {
				m.compiler.AssignParameters(doc, p)

				return nil
			},
		},
		admin,
	}
}

// generate runs the jobs through a read, compile and write pipeline.
func (m *Model) generate(ctx context.Context, jobs []*inputJob) error {
	pipe, err := pipeline.New(ctx, m.pipelineOpts...)
	if err != nil {
		return errors.Wrap(err, "unable to create pipeline")
	}

	root, err := pipeline.AddRootStep(pipe, "jobs", func(ctx context.Context, rootChan chan<- *inputJob) error {
		for _, job := range jobs {
			err := pipeline.SendTo(ctx, rootChan, job)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unable to add jobs step")
	}

	read, err := pipeline.AddStepOneToOne(pipe, "read", root, m.readTemplate,
		pipeline.StepConcurrency[*inputJob](m.concurrency))
	if err != nil {
		return errors.Wrap(err, "unable to add read step")
	}

	compiled, err := pipeline.AddStepOneToOne(pipe, "compile", read, m.compile,
		pipeline.StepConcurrency[*inputJob](m.concurrency))
	if err != nil {
		return errors.Wrap(err, "unable to add compile step")
	}

	err = pipeline.AddSink(pipe, "write", compiled, m.write)
	if err != nil {
		return errors.Wrap(err, "unable to add write step")
	}

	return pipe.Run()
}

func (m *Model) readTemplate(_ context.Context, job *inputJob) (*inputJob, error) {
	b, err := os.ReadFile(job.templatePath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s template", job.name)
	}
	job.text = string(b)

	return job, nil
}

func (m *Model) compile(_ context.Context, job *inputJob) (*inputJob, error) {
	if job.transform == nil {
		return job, nil
	}

	doc, err := params.Parse(job.text)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", job.templatePath)
	}
	err = job.transform(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to assign %s", job.name)
	}
	job.text, err = params.Serialize(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to serialize %s", job.name)
	}

	return job, nil
}

func (m *Model) write(_ context.Context, job *inputJob) error {
	err := os.WriteFile(job.outputPath, []byte(job.text), generatedPerm)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", job.name)
	}
	m.logger.Info("Generated input file",
		zap.String("job", job.name),
		zap.String("template", job.templatePath),
		zap.String("path", job.outputPath),
		zap.Bool("copy", job.transform == nil))

	return nil
}
