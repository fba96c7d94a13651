package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/askiada/go-covidsim/internal/config"
	"github.com/askiada/go-covidsim/pkg/covidsim"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestFromEnv(t *testing.T) {
	cwd := filepath.Join("/", "srv", "covidsim")

	tcs := map[string]struct {
		vars map[string]string
		want *config.Config
	}{
		"defaults": {
			want: &config.Config{
				BinDir:      filepath.Join(cwd, ".local", "bin"),
				LogDir:      filepath.Join(cwd, "log"),
				DataDir:     filepath.Join(cwd, "data"),
				InputDir:    filepath.Join(cwd, "input"),
				OutputDir:   filepath.Join(cwd, "output"),
				ThreadCount: 8,
				LogLevel:    "info",
			},
		},
		"overrides": {
			vars: map[string]string{
				"MODEL_RUNNER_BIN_DIR": "/opt/covidsim/bin",
				"MODEL_RUNNER_LOG_DIR": "/var/log/covidsim",
				"MODEL_DATA_DIR":       "/data",
				"MODEL_INPUT_DIR":      "/tmp/input",
				"MODEL_OUTPUT_DIR":     "/tmp/output",
				"MODEL_THREAD_COUNT":   "32",
				"MODEL_LOG_LEVEL":      "debug",
				"MODEL_REGION_CATALOG": "/etc/covidsim/regions.yaml",
			},
			want: &config.Config{
				BinDir:      "/opt/covidsim/bin",
				LogDir:      "/var/log/covidsim",
				DataDir:     "/data",
				InputDir:    "/tmp/input",
				OutputDir:   "/tmp/output",
				ThreadCount: 32,
				LogLevel:    "debug",
				CatalogPath: "/etc/covidsim/regions.yaml",
			},
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got, err := config.FromEnv(env(tc.vars), cwd)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromEnvErrors(t *testing.T) {
	tcs := map[string]map[string]string{
		"thread count not a number": {"MODEL_THREAD_COUNT": "many"},
		"thread count zero":         {"MODEL_THREAD_COUNT": "0"},
		"unknown log level":         {"MODEL_LOG_LEVEL": "chatty"},
	}

	for name, vars := range tcs {
		vars := vars
		t.Run(name, func(t *testing.T) {
			_, err := config.FromEnv(env(vars), "/")
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestDirs(t *testing.T) {
	cfg := config.Defaults("/work")
	assert.Equal(t, covidsim.Dirs{
		Bin:    "/work/.local/bin",
		Log:    "/work/log",
		Data:   "/work/data",
		Input:  "/work/input",
		Output: "/work/output",
	}, cfg.Dirs())
}

func TestLogger(t *testing.T) {
	cfg := config.Defaults("/work")
	cfg.LogLevel = "warn"

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "chatty"
	_, err = cfg.Logger()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
