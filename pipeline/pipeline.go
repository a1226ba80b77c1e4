// SPDX-License-Identifier: MIT

// Package pipeline runs the batch computation end to end:
//
//	structural table → matrices → value chain ┐
//	ports + edges → network → reliance ───────┴→ country exposure
//
// plus the optional route projection and canal flow-share reports.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/chokepoint/config"
	"github.com/katalvlaran/chokepoint/exposure"
	"github.com/katalvlaran/chokepoint/metrics"
	"github.com/katalvlaran/chokepoint/mrio"
	"github.com/katalvlaran/chokepoint/reliance"
	"github.com/katalvlaran/chokepoint/route"
	"github.com/katalvlaran/chokepoint/shipping"
)

// Stage names, used for logging and the stage duration metric.
const (
	StageEconomy  = "economy"
	StageNetwork  = "network"
	StageReliance = "reliance"
	StageExposure = "exposure"
	StageRoute    = "route"
	StageCanal    = "canal"
	StageOutput   = "output"
)

// Result collects everything a run produced.
type Result struct {
	RunID      string
	Matrices   *mrio.Matrices
	ValueChain *mrio.CountryMatrix
	Reliance   *reliance.Matrix
	Stats      []exposure.CountryStats
	Routes     []route.Projection
	CanalEdges []shipping.Record
}

// Runner executes one configured run. A Runner is not reusable across
// goroutines.
type Runner struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Registry
	runID   string
}

// New returns a Runner with a fresh run ID. A nil logger is replaced by a
// no-op logger.
func New(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()

	return &Runner{
		cfg:     cfg,
		log:     log.With(zap.String("run_id", id)),
		metrics: metrics.NewRegistry(),
		runID:   id,
	}
}

// RunID identifies this run in logs and outputs.
func (r *Runner) RunID() string { return r.runID }

// Metrics returns the run's metric registry.
func (r *Runner) Metrics() *metrics.Registry { return r.metrics }

// stage times fn and records the result.
func (r *Runner) stage(name string, fn func() error) error {
	start := time.Now()
	r.log.Debug("stage started", zap.String("stage", name))
	err := fn()
	elapsed := time.Since(start)
	r.metrics.RecordStage(name, elapsed)
	if err != nil {
		r.log.Error("stage failed", zap.String("stage", name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	r.log.Info("stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))

	return nil
}

// Run executes every configured stage and writes the outputs.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: r.runID}

	var err error
	if err = r.stage(StageEconomy, func() (err error) {
		res.Matrices, res.ValueChain, err = r.Economy()
		return err
	}); err != nil {
		return nil, err
	}

	var (
		reg *shipping.Registry
		net *shipping.Network
	)
	if err = r.stage(StageNetwork, func() (err error) {
		reg, net, err = r.Network()
		return err
	}); err != nil {
		return nil, err
	}

	if err = r.stage(StageReliance, func() (err error) {
		res.Reliance, err = reliance.NodeReliance(ctx, res.ValueChain.Countries, reg, net,
			r.cfg.Network.Chokepoint, r.cfg.Network.ThroughputKey(),
			reliance.WithWorkers(r.workers()),
			reliance.WithLogger(r.log),
			reliance.WithMetrics(r.metrics),
		)
		return err
	}); err != nil {
		return nil, err
	}

	if err = r.stage(StageExposure, func() (err error) {
		res.Stats, err = exposure.Compute(res.ValueChain, res.Reliance, r.cfg.Exposure.Params())
		return err
	}); err != nil {
		return nil, err
	}

	if r.cfg.Route.Origin != "" {
		if err = r.stage(StageRoute, func() (err error) {
			res.Routes, err = r.routes(ctx, reg, net)
			return err
		}); err != nil {
			return nil, err
		}
	}

	if r.cfg.Canal.Edges != "" {
		if err = r.stage(StageCanal, func() (err error) {
			res.CanalEdges, err = r.CanalShare()
			return err
		}); err != nil {
			return nil, err
		}
	}

	if err = r.stage(StageOutput, func() error { return r.write(res) }); err != nil {
		return nil, err
	}

	return res, nil
}

// Route projects routes from the configured origin without the value and
// reliance stages.
func (r *Runner) Route(ctx context.Context) ([]route.Projection, error) {
	var out []route.Projection
	err := r.stage(StageRoute, func() error {
		reg, net, err := r.Network()
		if err != nil {
			return err
		}
		out, err = r.routes(ctx, reg, net)
		return err
	})

	return out, err
}

func (r *Runner) routes(ctx context.Context, reg *shipping.Registry, net *shipping.Network) ([]route.Projection, error) {
	return route.From(ctx, r.cfg.Route.Origin, net, reg.Ports(), r.cfg.Route.Options()...)
}

func (r *Runner) workers() int {
	if r.cfg.Network.Workers > 0 {
		return r.cfg.Network.Workers
	}

	return reliance.DefaultOptions().Workers
}
