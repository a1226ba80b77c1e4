// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/katalvlaran/chokepoint/tabular"
)

// Output file names inside Output.Dir.
const (
	FileValueChain       = "value_chain.csv"
	FileCountryStats     = "country_stats.csv"
	FileCountryStatsJSON = "country_stats.json"
)

// RelianceFile names the reliance matrix output for a chokepoint.
func RelianceFile(node string) string { return "reliance_" + node + ".csv" }

// RoutesFile names the route projection output for an origin.
func RoutesFile(origin string) string { return "routes_from_" + origin + ".csv" }

// CanalFile names the canal flow-share edge list.
func CanalFile(canal string) string { return "edges_" + canal + ".csv" }

type outputFile struct {
	name  string
	write func(io.Writer) error
}

func (r *Runner) write(res *Result) error {
	dir := r.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []outputFile{
		{FileValueChain, func(w io.Writer) error { return tabular.WriteCountryMatrix(w, res.ValueChain) }},
		{RelianceFile(r.cfg.Network.Chokepoint), func(w io.Writer) error { return tabular.WriteReliance(w, res.Reliance) }},
		{FileCountryStats, func(w io.Writer) error { return tabular.WriteCountryStats(w, res.Stats) }},
		{FileCountryStatsJSON, func(w io.Writer) error { return tabular.WriteCountryStatsJSON(w, res.Stats) }},
	}
	if res.Routes != nil {
		files = append(files, outputFile{RoutesFile(r.cfg.Route.Origin), func(w io.Writer) error { return tabular.WriteProjections(w, res.Routes) }})
	}
	if res.CanalEdges != nil {
		files = append(files, outputFile{CanalFile(r.cfg.Canal.Name), func(w io.Writer) error { return tabular.WriteRecords(w, res.CanalEdges) }})
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := tabular.WriteFile(path, f.write); err != nil {
			return err
		}
		r.log.Debug("output written", zap.String("path", path))
	}

	if mf := r.cfg.Output.MetricsFile; mf != "" {
		if err := r.metrics.WriteToTextfile(mf); err != nil {
			return err
		}
	}

	return nil
}
