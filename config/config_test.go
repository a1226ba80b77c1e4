package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chokepoint/config"
	"github.com/katalvlaran/chokepoint/shipping"
)

const sample = `
table:
  path: data/ICIO.csv
  countries: 2
  industries: 3
  final_use: 1
  value_added: 2
network:
  ports: data/ports.csv
  edges: data/edges.csv
  key: export
  workers: 4
canal:
  name: suez
  edges: data/suez_edges.csv
exposure:
  disruption_days: 10
output:
  dir: results
  metrics_file: results/run.prom
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chokepoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	require.NoError(t, err)

	require.Equal(t, 3, cfg.Table.Industries)
	require.Equal(t, 1, cfg.Table.TaxRows, "default kept")
	require.Equal(t, "_", cfg.Table.Separator)
	require.Equal(t, shipping.KeyExport, cfg.Network.ThroughputKey())
	require.Equal(t, "maritime2927", cfg.Network.Chokepoint)
	require.True(t, cfg.Network.MergeDuplicates)
	require.Equal(t, 10.0, cfg.Exposure.Params().DisruptionDays)
	require.Equal(t, 365.0, cfg.Exposure.Params().YearDays)
	require.Equal(t, 359.0, cfg.Route.SegmentLimit)
	require.Equal(t, "results/run.prom", cfg.Output.MetricsFile)

	d := cfg.Table.Dims()
	require.Equal(t, 6, d.Sectors())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing table path": "table: {countries: 1, industries: 1, final_use: 1, value_added: 1}\nnetwork: {ports: p, edges: e}\n",
		"bad key":            "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 2}\nnetwork: {ports: p, edges: e, key: tonnes}\n",
		"tax rows too large": "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 1, tax_rows: 1}\nnetwork: {ports: p, edges: e}\n",
		"canal without name": "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 2}\nnetwork: {ports: p, edges: e}\ncanal: {edges: c.csv}\n",
		"negative tolerance": "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 2}\nnetwork: {ports: p, edges: e}\nvalidation: {consistency_tolerance: -1}\n",
		"bad level":          "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 2}\nnetwork: {ports: p, edges: e}\nlogging: {level: loud}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_ExactConsistency(t *testing.T) {
	body := "table: {path: t, countries: 1, industries: 1, final_use: 1, value_added: 2}\nnetwork: {ports: p, edges: e}\nvalidation: {consistency_tolerance: 0}\n"
	cfg, err := config.Load(writeConfig(t, body))
	require.NoError(t, err)
	require.Zero(t, cfg.Validation.ConsistencyTolerance)
	require.Equal(t, 1e-3, cfg.Validation.IdentityTolerance, "default kept")
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "table: ["))
	require.Error(t, err)
	require.NotErrorIs(t, err, config.ErrInvalid)
}

func TestDefaultNeedsInputs(t *testing.T) {
	require.ErrorIs(t, config.Default().Validate(), config.ErrInvalid)
}
