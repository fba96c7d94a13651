// Command covidsim generates the input files of the Imperial College CovidSim simulator from
// a generalized model input, runs the simulator and converts its results.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/internal/config"
	"github.com/askiada/go-covidsim/pkg/catalog"
	"github.com/askiada/go-covidsim/pkg/covidsim"
	"github.com/askiada/go-covidsim/pkg/pipeline/model"
)

// inputConcurrency is the number of input files generated at the same time.
const inputConcurrency = 3

var (
	// Global flags
	binDir      string
	logDir      string
	dataDir     string
	inputDir    string
	outputDir   string
	threadCount int
	logLevel    string
	catalogPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "covidsim",
	Short: "Run the Imperial College CovidSim model from a generalized model input",
	Long: `covidsim compiles a generalized model input into CovidSim parameter files,
runs the simulator and converts its severity table to the generalized model output.

Directories and settings are read from the MODEL_* environment variables.
Flags take precedence over the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "unable to get working directory")
		}
		cfg, err = config.FromEnv(os.Getenv, cwd)
		if err != nil {
			return err
		}
		err = applyFlags(cmd.Flags(), cfg)
		if err != nil {
			return err
		}

		logger, err = cfg.Logger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// applyFlags overrides c with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, c *config.Config) error {
	for name, v := range map[string]struct {
		dst *string
		src string
	}{
		"bin-dir":    {&c.BinDir, binDir},
		"log-dir":    {&c.LogDir, logDir},
		"data-dir":   {&c.DataDir, dataDir},
		"input-dir":  {&c.InputDir, inputDir},
		"output-dir": {&c.OutputDir, outputDir},
		"log-level":  {&c.LogLevel, logLevel},
		"catalog":    {&c.CatalogPath, catalogPath},
	} {
		if flags.Changed(name) {
			*v.dst = v.src
		}
	}
	if flags.Changed("threads") {
		c.ThreadCount = threadCount
	}

	return c.Validate()
}

// newModel builds the connector from the global config.
func newModel(pipelineOpts ...model.PipelineOption) (*covidsim.Model, error) {
	opts := []covidsim.Option{
		covidsim.WithThreadCount(cfg.ThreadCount),
		covidsim.WithLogger(logger),
		covidsim.WithConcurrency(inputConcurrency),
		covidsim.WithPipelineOptions(pipelineOpts...),
	}
	if cfg.CatalogPath != "" {
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, covidsim.WithCatalog(c))
	}

	return covidsim.New(cfg.Dirs(), opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&binDir, "bin-dir", "", "Directory holding the CovidSim binary (or set "+config.EnvBinDir+")")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory receiving the simulator log (or set "+config.EnvLogDir+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding admin_units, populations and param_files (or set "+config.EnvDataDir+")")
	rootCmd.PersistentFlags().StringVar(&inputDir, "input-dir", "", "Directory receiving the generated input files (or set "+config.EnvInputDir+")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory receiving the simulator results (or set "+config.EnvOutputDir+")")
	rootCmd.PersistentFlags().IntVarP(&threadCount, "threads", "c", config.DefaultThreadCount, "Number of simulator threads (or set "+config.EnvThreadCount+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (or set "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Region catalog replacing the built-in one (or set "+config.EnvCatalog+")")

	inputsCmd.Flags().StringVar(&graphPath, "graph", "", "Write the input generation pipeline as a DOT graph to this file")

	rootCmd.AddCommand(inputsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertOutputCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
