package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chokepoint/metrics"
)

func TestNewRegistry(t *testing.T) {
	r := metrics.NewRegistry()
	require.NotNil(t, r.StageDuration)
	require.NotNil(t, r.TreesTotal)
	require.NotNil(t, r.PortsSkippedTotal)

	// Independent registries do not collide.
	require.NotPanics(t, func() { metrics.NewRegistry() })
}

func TestRecord(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordTree()
	r.RecordTree()
	r.RecordSkippedPort(metrics.SkipNotInGraph)
	r.RecordStage("reliance", 1500*time.Millisecond)
	r.SetUndefinedCountries(3)

	require.Equal(t, 2.0, testutil.ToFloat64(r.TreesTotal))
	require.Equal(t, 1.0, testutil.ToFloat64(r.PortsSkippedTotal.WithLabelValues(metrics.SkipNotInGraph)))
	require.Equal(t, 1.5, testutil.ToFloat64(r.StageDuration.WithLabelValues("reliance")))
	require.Equal(t, 3.0, testutil.ToFloat64(r.UndefinedCountries))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *metrics.Registry
	require.NotPanics(t, func() {
		r.RecordTree()
		r.RecordSkippedPort(metrics.SkipNoMetric)
		r.RecordStage("x", time.Second)
		r.SetUndefinedCountries(1)
	})
}

func TestWriteToTextfile(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordTree()
	path := filepath.Join(t.TempDir(), "run.prom")

	require.NoError(t, r.WriteToTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "chokepoint_shortest_path_trees_total 1"))
}
