// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/chokepoint/pipeline"
	"github.com/katalvlaran/chokepoint/tabular"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full computation and write every output table",
	Long: `Reads the structural table, the port registry and the edge list named in the
configuration, then writes to the output directory:
  value_chain.csv            value added by origin (rows) and destination (columns)
  reliance_<node>.csv        chokepoint reliance per country pair
  country_stats.csv          exposure per destination country
  country_stats.json         the same, undefined values as null
  routes_from_<origin>.csv   when route.origin is set
  edges_<canal>.csv          when canal.edges is set`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		r := pipeline.New(cfg, logger)
		res, err := r.Run(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("run complete",
			zap.String("run_id", res.RunID),
			zap.Int("countries", len(res.ValueChain.Countries)),
			zap.String("output", cfg.Output.Dir),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d countries written to %s\n", res.RunID, len(res.Stats), cfg.Output.Dir)

		return nil
	},
}

var routeOrigin string

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print the shortest route from one node to every port as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if routeOrigin != "" {
			cfg.Route.Origin = routeOrigin
		}
		if cfg.Route.Origin == "" {
			return fmt.Errorf("no origin: set route.origin or pass --origin")
		}
		routes, err := pipeline.New(cfg, logger).Route(cmd.Context())
		if err != nil {
			return err
		}

		return tabular.WriteProjections(cmd.OutOrStdout(), routes)
	},
}

var validateTableCmd = &cobra.Command{
	Use:   "validate-table",
	Short: "Check the structural table against its declared layout and accounting identities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		m, vc, err := pipeline.New(cfg, logger).Economy()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sectors, %d countries, identities hold within %g\n",
			len(m.Sectors), len(vc.Countries), cfg.Validation.IdentityTolerance)

		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeOrigin, "origin", "", "Origin node (overrides route.origin)")
}
