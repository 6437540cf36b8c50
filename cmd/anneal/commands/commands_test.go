package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/annealing-core/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand("test", "none", "unknown")
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestTSPCommandText(t *testing.T) {
	out, _, err := execute(t, "", "tsp", "--seed", "7", "--max-temps", "20", "--iters-per-temp", "50")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Tour length: "))
	assert.True(t, strings.HasPrefix(lines[1], "Computed tour: 0 "))
	assert.True(t, strings.HasSuffix(lines[1], " 0"))
	assert.Len(t, strings.Fields(strings.TrimPrefix(lines[1], "Computed tour: ")), 42)
}

func TestTSPCommandSeedIsReproducible(t *testing.T) {
	args := []string{"tsp", "--seed", "11", "--max-temps", "15", "--iters-per-temp", "40"}
	first, _, err := execute(t, "", args...)
	require.NoError(t, err)
	second, _, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTSPCommandJSONWithTrace(t *testing.T) {
	out, _, err := execute(t, "", "tsp", "--seed", "3", "--max-temps", "5", "--iters-per-temp", "10", "--json", "--trace")
	require.NoError(t, err)

	var got struct {
		Tour          []int  `json:"tour"`
		Length        uint64 `json:"length"`
		FunctionEvals int    `json:"function_evals"`
		Status        string `json:"status"`
		Seed          int64  `json:"seed"`
		Trace         []struct {
			Outer    int `json:"outer"`
			Steps    int `json:"steps"`
			Accepted int `json:"accepted"`
		} `json:"trace"`
		AcceptanceRate *float64 `json:"acceptance_rate"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Tour, 42)
	assert.Equal(t, 50, got.FunctionEvals)
	assert.Equal(t, "exhausted", got.Status)
	assert.Equal(t, int64(3), got.Seed)
	require.Len(t, got.Trace, 5)
	accepted := 0
	for i, p := range got.Trace {
		assert.Equal(t, i, p.Outer)
		assert.Equal(t, 10, p.Steps)
		accepted += p.Accepted
	}
	require.NotNil(t, got.AcceptanceRate)
	assert.InDelta(t, float64(accepted)/50, *got.AcceptanceRate, 1e-12)
}

func TestTSPCommandTextWithTrace(t *testing.T) {
	out, _, err := execute(t, "", "tsp", "--seed", "3", "--max-temps", "4", "--iters-per-temp", "10", "--trace")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+4+1)
	assert.True(t, strings.HasPrefix(lines[2], "stage    0"))
	assert.True(t, strings.HasPrefix(lines[6], "Acceptance rate: "))
}

func TestTSPCommandInteractive(t *testing.T) {
	out, _, err := execute(t, "10\n20\n0.8\n", "tsp", "--interactive", "--seed", "5", "--tol", "0.5", "--verbose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Enter max temps: Enter iterations per temperature: Enter alpha: Tour length: "))
	assert.Contains(t, out, "Computed tour: 0 ")
}

func TestTSPCommandInteractiveRejectsGarbage(t *testing.T) {
	_, _, err := execute(t, "ten\n", "tsp", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an integer")

	_, _, err = execute(t, "10\n", "tsp", "--interactive")
	require.Error(t, err)
}

func TestTSPCommandRejectsInvalidParameters(t *testing.T) {
	_, _, err := execute(t, "", "tsp", "--alpha", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annealing.alpha")

	_, _, err = execute(t, "", "tsp", "--max-temps", "0")
	require.Error(t, err)
}

func TestTSPCommandUsesConfigCities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 9
annealing:
  max_temps: 10
  iters_per_temp: 20
  alpha: 0.9
cities:
  - {x: 0, y: 0}
  - {x: 0, y: 3}
  - {x: 4, y: 3}
  - {x: 4, y: 0}
`), 0o600))

	out, _, err := execute(t, "", "tsp", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Tour length: 14\n")
}

func TestConfigCommandPrintsDefaults(t *testing.T) {
	out, _, err := execute(t, "", "config")
	require.NoError(t, err)

	cfg, err := config.ParseRunConfigYAMLString(out)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRunConfig(), cfg)
}

func TestConfigCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "config", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "anneal test\ncommit: none\nbuilt: unknown\n", out)
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	cfg := config.DefaultRunConfig()
	cfg.Server.GRPCAddr = "127.0.0.1:0"
	cfg.Server.HTTPAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, serve(ctx, cfg))
}

func TestServeRejectsBadAddress(t *testing.T) {
	cfg := config.DefaultRunConfig()
	cfg.Server.GRPCAddr = "not-an-address"
	assert.Error(t, serve(context.Background(), cfg))
}
