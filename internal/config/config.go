// Package config reads the connector settings from the environment.
package config

import (
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/pkg/covidsim"
)

// Environment variables.
const (
	EnvBinDir      = "MODEL_RUNNER_BIN_DIR"
	EnvLogDir      = "MODEL_RUNNER_LOG_DIR"
	EnvDataDir     = "MODEL_DATA_DIR"
	EnvInputDir    = "MODEL_INPUT_DIR"
	EnvOutputDir   = "MODEL_OUTPUT_DIR"
	EnvThreadCount = "MODEL_THREAD_COUNT"
	EnvLogLevel    = "MODEL_LOG_LEVEL"
	EnvCatalog     = "MODEL_REGION_CATALOG"
)

const (
	DefaultThreadCount = 8
	DefaultLogLevel    = "info"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	BinDir      string
	LogDir      string
	DataDir     string
	InputDir    string
	OutputDir   string
	ThreadCount int
	LogLevel    string
	// CatalogPath is a region catalog file replacing the built-in one. Empty keeps the
	// built-in catalog.
	CatalogPath string
}

// Defaults returns the settings used when no variable is set. Directories are relative to cwd.
func Defaults(cwd string) *Config {
	return &Config{
		BinDir:      filepath.Join(cwd, ".local", "bin"),
		LogDir:      filepath.Join(cwd, "log"),
		DataDir:     filepath.Join(cwd, "data"),
		InputDir:    filepath.Join(cwd, "input"),
		OutputDir:   filepath.Join(cwd, "output"),
		ThreadCount: DefaultThreadCount,
		LogLevel:    DefaultLogLevel,
	}
}

// FromEnv overrides the defaults with the variables getenv returns.
func FromEnv(getenv func(string) string, cwd string) (*Config, error) {
	cfg := Defaults(cwd)

	for env, dst := range map[string]*string{
		EnvBinDir:    &cfg.BinDir,
		EnvLogDir:    &cfg.LogDir,
		EnvDataDir:   &cfg.DataDir,
		EnvInputDir:  &cfg.InputDir,
		EnvOutputDir: &cfg.OutputDir,
		EnvLogLevel:  &cfg.LogLevel,
		EnvCatalog:   &cfg.CatalogPath,
	} {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvThreadCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "%s %q: %v", EnvThreadCount, v, err)
		}
		cfg.ThreadCount = n
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ThreadCount < 1 {
		return errors.Wrapf(ErrInvalidConfig, "thread count must be positive, got %d", c.ThreadCount)
	}
	_, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}

	return nil
}

func (c *Config) Dirs() covidsim.Dirs {
	return covidsim.Dirs{
		Bin:    c.BinDir,
		Log:    c.LogDir,
		Data:   c.DataDir,
		Input:  c.InputDir,
		Output: c.OutputDir,
	}
}

// Logger builds a production logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "unable to build logger")
	}

	return logger, nil
}
