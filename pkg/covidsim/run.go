package covidsim

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/pkg/output"
)

// DefaultR0 is used when the input does not set a reproduction number.
const DefaultR0 = 3.0

const (
	resultPrefix = "result"
	logFileName  = "covid-sim.log"
)

// seeds are the random number generator seeds of the simulator regression test.
var seeds = []string{"98798150", "729101", "17389101", "4797132"}

// Launcher runs the simulator binary and waits for it to exit. The simulator output is
// appended to the file at logPath.
type Launcher interface {
	Launch(ctx context.Context, binary string, args []string, logPath string) error
}

// Args returns the command line arguments of the simulator.
func (m *Model) Args(ri *RunInput) []string {
	r0 := ri.ModelInput.Parameters.R0OrDefault(DefaultR0)

	args := []string{
		fmt.Sprintf("/c:%d", m.threadCount),
		"/A:" + ri.AdminFilePath,
		"/D:" + ri.PopulationDensityFilePath,
		"/PP:" + ri.PreParametersFilePath,
		"/P:" + ri.ParametersFilePath,
		"/O:" + filepath.Join(m.dirs.Output, resultPrefix),
		"/R:" + strconv.FormatFloat(r0/2, 'f', -1, 64),
		"/S:" + filepath.Join(m.dirs.Output, networkFileName(ri)),
	}

	return append(args, seeds...)
}

// networkFileName names the file the simulator saves the generated network to.
func networkFileName(ri *RunInput) string {
	if ri.SubregionName == "" {
		return ri.ModelInput.Region + "-network.bin"
	}

	return ri.ModelInput.Region + "-" + ri.SubregionName + "-network.bin"
}

// Run launches the simulator and converts its severity table.
func (m *Model) Run(ctx context.Context, launcher Launcher, ri *RunInput) (*output.ModelOutput, error) {
	err := os.MkdirAll(m.dirs.Output, generatedDirPerm)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create output directory")
	}
	err = os.MkdirAll(m.dirs.Log, generatedDirPerm)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create log directory")
	}

	args := m.Args(ri)
	m.logger.Info("CovidSim args", zap.String("binary", ri.BinaryPath), zap.Strings("args", args))

	err = launcher.Launch(ctx, ri.BinaryPath, args, filepath.Join(m.dirs.Log, logFileName))
	if err != nil {
		return nil, errors.Wrapf(ErrModelFailed, "model '%s': %v", ri.BinaryPath, err)
	}

	// Keep the population density file with the other inputs of the run.
	err = copyFile(ri.PopulationDensityFilePath, filepath.Join(m.dirs.Input, filepath.Base(ri.PopulationDensityFilePath)))
	if err != nil {
		return nil, err
	}

	severityPath := filepath.Join(m.dirs.Output, output.SeverityFile)
	f, err := os.Open(severityPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open severity table")
	}
	defer f.Close()

	out, err := output.Convert(ri.ModelInput, f, m.compiler.Epoch())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to convert %s", severityPath)
	}
	m.logger.Info("Converted model output", zap.Int("timestamps", len(out.Time.Timestamps)))

	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "unable to open file to copy")
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, generatedPerm)
	if err != nil {
		return errors.Wrap(err, "unable to create copy")
	}
	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()

		return errors.Wrapf(err, "unable to copy %s", src)
	}

	return errors.Wrap(out.Close(), "unable to close copy")
}

// ExecLauncher runs the simulator as a local process.
type ExecLauncher struct{}

func (ExecLauncher) Launch(ctx context.Context, binary string, args []string, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, generatedPerm)
	if err != nil {
		return errors.Wrap(err, "unable to open log file")
	}
	defer logFile.Close()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	return errors.Wrap(cmd.Run(), "unable to run model")
}

var _ Launcher = ExecLauncher{}
