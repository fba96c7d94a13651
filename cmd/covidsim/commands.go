package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/pkg/covidsim"
	"github.com/askiada/go-covidsim/pkg/modelinput"
	"github.com/askiada/go-covidsim/pkg/output"
	"github.com/askiada/go-covidsim/pkg/pipeline/drawer"
	"github.com/askiada/go-covidsim/pkg/pipeline/measure"
	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// outputFileName is written to the output directory by the run command.
const outputFileName = "data.json"

var (
	graphPath string

	// launcher starts the simulator for the run command.
	launcher covidsim.Launcher = covidsim.ExecLauncher{}
)

var inputsCmd = &cobra.Command{
	Use:   "inputs <request.json>",
	Short: "Generate the simulator input files",
	Long: `Generates the pre-parameters, parameters and admin files of a run in the input
directory, then prints the paths of the run files and the simulator arguments as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runInputs,
}

var runCmd = &cobra.Command{
	Use:   "run <request.json>",
	Short: "Generate the input files, run the simulator and convert its results",
	Long: `Generates the input files of a run, launches the CovidSim binary and writes the
generalized model output to data.json in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runModel,
}

var convertOutputCmd = &cobra.Command{
	Use:   "convert-output <request.json> <severity.xls>",
	Short: "Convert a simulator severity table to the generalized model output",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvertOutput,
}

type inputsResult struct {
	RunInput *covidsim.RunInput `json:"runInput"`
	Args     []string           `json:"args"`
}

func runInputs(cmd *cobra.Command, args []string) error {
	req, err := modelinput.LoadRequest(args[0])
	if err != nil {
		return err
	}

	var pipelineOpts []model.PipelineOption
	var msr *measure.DefaultMeasure
	if graphPath != "" {
		f, err := os.Create(graphPath)
		if err != nil {
			return errors.Wrap(err, "unable to create graph file")
		}
		defer f.Close()

		msr = measure.NewDefaultMeasure()
		pipelineOpts = append(pipelineOpts,
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(f), msr),
		)
	}

	m, err := newModel(pipelineOpts...)
	if err != nil {
		return err
	}
	ri, err := m.Inputs(cmd.Context(), req.Configuration)
	if err != nil {
		return err
	}

	if msr != nil {
		for _, name := range msr.StepNames() {
			mt := msr.GetMetric(name)
			logger.Info("Step timing",
				zap.String("step", name),
				zap.Int64("count", mt.Count()),
				zap.Duration("average", mt.AVGDuration()),
				zap.Duration("total", mt.GetTotalDuration()))
		}
	}

	return writeJSON(cmd.OutOrStdout(), inputsResult{RunInput: ri, Args: m.Args(ri)})
}

func runModel(cmd *cobra.Command, args []string) error {
	req, err := modelinput.LoadRequest(args[0])
	if err != nil {
		return err
	}

	m, err := newModel()
	if err != nil {
		return err
	}
	ri, err := m.Inputs(cmd.Context(), req.Configuration)
	if err != nil {
		return err
	}
	out, err := m.Run(cmd.Context(), launcher, ri)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, outputFileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create model output file")
	}
	defer f.Close()

	err = writeJSON(f, out)
	if err != nil {
		return err
	}
	logger.Info("Wrote model output", zap.String("path", path))

	return nil
}

func runConvertOutput(cmd *cobra.Command, args []string) error {
	req, err := modelinput.LoadRequest(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return errors.Wrap(err, "unable to open severity table")
	}
	defer f.Close()

	m, err := newModel()
	if err != nil {
		return err
	}
	out, err := output.Convert(req.Configuration, f, m.Epoch())
	if err != nil {
		return errors.Wrapf(err, "unable to convert %s", args[1])
	}

	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	if err != nil {
		return errors.Wrap(err, "unable to encode JSON")
	}

	return nil
}
