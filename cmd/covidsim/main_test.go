package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askiada/go-covidsim/internal/config"
	"github.com/askiada/go-covidsim/pkg/covidsim"
	"github.com/askiada/go-covidsim/pkg/output"
)

const request = `{
  "id": 42,
  "callbackURL": null,
  "configuration": {
    "region": "GB",
    "subregion": "GB-LND",
    "parameters": {
      "calibrationDate": "2020-03-20",
      "calibrationCaseCount": 500,
      "calibrationDeathCount": 120,
      "r0": null,
      "interventionPeriods": [
        {"startDate": "2020-03-16", "socialDistancing": "moderate", "schoolClosure": "aggressive"}
      ]
    }
  }
}`

const regions = `
defaults:
  populationDensity: wpop_eur.txt
  preParameters: preUK_R0=2.0.txt
regions:
  GB:
    admin: United_Kingdom_admin.txt
    subregions:
      GB-LND:
        name: London
`

const severity = "t\tMild\tILI\tSARI\tCritical\tCritRecov\tincDeath\tcumMild\tcumILI\tcumSARI\tcumCritical\tcumCritRecov\n" +
	"0\t1\t2\t3\t4\t5\t6\t7\t8\t9\t10\t11\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupCommand points the global config to a temporary workspace and returns the path of
// the request file.
func setupCommand(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	cfg = config.Defaults(root)
	cfg.CatalogPath = filepath.Join(root, "regions.yaml")
	logger = zap.NewNop()
	graphPath = ""
	t.Cleanup(func() {
		cfg, logger, graphPath = nil, nil, ""
		launcher = covidsim.ExecLauncher{}
	})

	writeFile(t, cfg.CatalogPath, regions)
	writeFile(t, filepath.Join(cfg.DataDir, "admin_units", "United_Kingdom_admin.txt"),
		"[Include holidays]\n1\n\n[Codes and country/province names for admin units]\n1001\tUnited_Kingdom\tLondon\n1002\tUnited_Kingdom\tWales\n")
	writeFile(t, filepath.Join(cfg.DataDir, "populations", "wpop_eur.txt"), "population")
	writeFile(t, filepath.Join(cfg.DataDir, "param_files", "preUK_R0=2.0.txt"), "[Trigger alert on deaths]\n0\n")
	writeFile(t, filepath.Join(cfg.DataDir, "param_files", "p_NoInt.txt"), "[Vary efficacies over time]\n0\n")

	requestPath := filepath.Join(root, "request.json")
	writeFile(t, requestPath, request)

	return requestPath
}

func newCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())

	return cmd, buf
}

func TestInputsCmd(t *testing.T) {
	requestPath := setupCommand(t)
	cmd, buf := newCommand()

	require.NoError(t, runInputs(cmd, []string{requestPath}))

	var got inputsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "London", got.RunInput.SubregionName)
	assert.Equal(t, filepath.Join(cfg.InputDir, "admin-params.txt"), got.RunInput.AdminFilePath)
	assert.Equal(t, "/c:8", got.Args[0])
	assert.Contains(t, got.Args, "/R:1.5")
	assert.Contains(t, got.Args, "/S:"+filepath.Join(cfg.OutputDir, "GB-London-network.bin"))

	_, err := os.Stat(got.RunInput.ParametersFilePath)
	assert.NoError(t, err)
}

func TestInputsCmdGraph(t *testing.T) {
	requestPath := setupCommand(t)
	graphPath = filepath.Join(t.TempDir(), "pipeline.dot")
	cmd, _ := newCommand()

	require.NoError(t, runInputs(cmd, []string{requestPath}))

	b, err := os.ReadFile(graphPath)
	require.NoError(t, err)
	dot := string(b)
	assert.True(t, strings.HasPrefix(dot, "strict digraph {"))
	for _, link := range []string{`"start" -> "jobs"`, `"jobs" -> "read"`, `"read" -> "compile"`, `"compile" -> "write"`, `"write" -> "end"`} {
		assert.Contains(t, dot, link)
	}
}

func TestInputsCmdErrors(t *testing.T) {
	requestPath := setupCommand(t)
	cmd, _ := newCommand()

	err := runInputs(cmd, []string{filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, cfg.CatalogPath, "regions: {}\n")
	err = runInputs(cmd, []string{requestPath})
	assert.Error(t, err)
}

type fakeLauncher struct{}

func (fakeLauncher) Launch(_ context.Context, _ string, _ []string, _ string) error {
	return os.WriteFile(filepath.Join(cfg.OutputDir, output.SeverityFile), []byte(severity), 0o644)
}

func TestRunCmd(t *testing.T) {
	requestPath := setupCommand(t)
	launcher = fakeLauncher{}
	cmd, _ := newCommand()

	require.NoError(t, runModel(cmd, []string{requestPath}))

	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "data.json"))
	require.NoError(t, err)

	var got output.ModelOutput
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "GB", got.Metadata.Region)
	assert.Equal(t, []float64{0}, got.Time.Timestamps)
	assert.Equal(t, []float64{1}, got.Aggregate.Metrics.Mild)
}

func TestConvertOutputCmd(t *testing.T) {
	requestPath := setupCommand(t)
	severityPath := filepath.Join(t.TempDir(), output.SeverityFile)
	writeFile(t, severityPath, severity)
	cmd, buf := newCommand()

	require.NoError(t, runConvertOutput(cmd, []string{requestPath, severityPath}))

	var got output.ModelOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2020-01-01", got.Time.T0)
	assert.Equal(t, []float64{11}, got.Aggregate.Metrics.CumCritRecov)
}

func TestApplyFlags(t *testing.T) {
	c := config.Defaults("/work")
	flags := rootCmd.PersistentFlags()
	require.NoError(t, flags.Set("data-dir", "/data"))
	require.NoError(t, flags.Set("threads", "2"))
	t.Cleanup(func() {
		dataDir, threadCount = "", config.DefaultThreadCount
		flags.Lookup("data-dir").Changed = false
		flags.Lookup("threads").Changed = false
	})

	require.NoError(t, applyFlags(flags, c))
	assert.Equal(t, "/data", c.DataDir)
	assert.Equal(t, 2, c.ThreadCount)
	assert.Equal(t, "/work/input", c.InputDir)
}
