package tuning

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"robogrid/internal/domain/robotics"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
ticks: 25
energy_per_tick: 200
costs:
  move: 5
  destroy: 120
  sense: 1
world:
  generator: flat
  rows: 8
  cols: 9
robot:
  name: idle
`)
	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 25, got.Ticks)
	require.Equal(t, 200, got.EnergyPerTick)
	require.Equal(t, Costs{Move: 5, Destroy: 120, Sense: 1}, got.Costs)
	require.Equal(t, "flat", got.World.Generator)
	require.Equal(t, 8, got.World.Rows)
	require.Equal(t, "idle", got.Robot.Name)
	require.Equal(t, robotics.DefaultIssuanceBudget, got.InterfaceBudget)
	require.Equal(t, 3, got.Robot.MaxSteps)

	cfg := got.RunnerConfig()
	require.Equal(t, uint64(25), cfg.Ticks)
	require.Equal(t, 120, cfg.World.Costs.Destroy)
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"energy above cap":  "energy_per_tick: 5000\n",
		"negative cost":     "costs:\n  move: -1\n",
		"unknown generator": "world:\n  generator: maze\n",
		"wrong type":        "ticks: many\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.ErrorIs(t, err, ErrInvalidTuning)
		})
	}
}

func TestLoad_MapGeneratorNeedsName(t *testing.T) {
	_, err := Load(writeFile(t, "world:\n  generator: map\n"))
	require.ErrorIs(t, err, ErrInvalidTuning)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	got, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestSchema_IsValidJSON(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, string(raw), "energy_per_tick")
}

func TestLoad_RejectsNegativeLimitsAndCosts(t *testing.T) {
	cases := map[string]string{
		"negative destroy cost": "costs:\n  destroy: -10\n",
		"negative sense limit":  "limits:\n  sense: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			require.ErrorIs(t, err, ErrInvalidTuning)
		})
	}
}

func TestLoad_AcceptsZeroCosts(t *testing.T) {
	got, err := Load(writeFile(t, "costs:\n  move: 0\n  destroy: 0\n  sense: 0\n"))
	require.NoError(t, err)
	require.Equal(t, Costs{}, got.Costs)
	require.Equal(t, robotics.Costs{}, *got.RunnerConfig().World.Costs)
}

func TestValidate_Ranges(t *testing.T) {
	require.NoError(t, Default().Validate())

	over := Default()
	over.EnergyPerTick = robotics.MaxEnergyLevel + 1
	require.ErrorIs(t, over.Validate(), ErrInvalidTuning)

	noTicks := Default()
	noTicks.Ticks = 0
	require.ErrorIs(t, noTicks.Validate(), ErrInvalidTuning)
}
