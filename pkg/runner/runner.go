// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/measurement"
	"github.com/NVIDIA/node-checker/pkg/metrics"
	"github.com/NVIDIA/node-checker/pkg/node"
)

// BlockingRunner checks targets against one baseline. It is immutable after
// New and safe for concurrent use.
type BlockingRunner struct {
	metricsFetchDelay time.Duration
	baselineInfo      node.Information
	baselineSource    collector.MetricCollector
	identity          evaluator.DirectEvaluator
	evaluators        []evaluator.Type
	parser            metrics.Parser
	clock             clock.Clock
}

// Option configures a BlockingRunner.
type Option func(*BlockingRunner)

// WithMetricsFetchDelay sets the time between the two metrics snapshots.
func WithMetricsFetchDelay(d time.Duration) Option {
	return func(r *BlockingRunner) {
		r.metricsFetchDelay = d
	}
}

// WithBaseline sets the baseline identity and the source its data is read
// from.
func WithBaseline(info node.Information, source collector.MetricCollector) Option {
	return func(r *BlockingRunner) {
		r.baselineInfo = info
		r.baselineSource = source
	}
}

// WithNodeIdentityEvaluator sets the evaluator gating every run.
func WithNodeIdentityEvaluator(e evaluator.DirectEvaluator) Option {
	return func(r *BlockingRunner) {
		r.identity = e
	}
}

// WithEvaluators appends evaluators, run in the given order.
func WithEvaluators(types ...evaluator.Type) Option {
	return func(r *BlockingRunner) {
		r.evaluators = append(r.evaluators, types...)
	}
}

// WithParser sets the metrics parser.
func WithParser(p metrics.Parser) Option {
	return func(r *BlockingRunner) {
		r.parser = p
	}
}

// WithClock sets the clock used for the metrics wait.
func WithClock(c clock.Clock) Option {
	return func(r *BlockingRunner) {
		r.clock = c
	}
}

// New returns a BlockingRunner. A baseline source and an identity evaluator
// are required.
func New(opts ...Option) (*BlockingRunner, error) {
	r := &BlockingRunner{
		metricsFetchDelay: defaults.MetricsFetchDelay,
		parser:            metrics.NewTextParser(),
		clock:             clock.RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.baselineSource == nil {
		return nil, fmt.Errorf("baseline source is required")
	}
	if r.identity == nil {
		return nil, fmt.Errorf("node identity evaluator is required")
	}
	if r.metricsFetchDelay < 0 {
		return nil, fmt.Errorf("metrics fetch delay must not be negative, got %s", r.metricsFetchDelay)
	}
	for i, t := range r.evaluators {
		if !hasEvaluator(t) {
			return nil, fmt.Errorf("evaluator %d (%T) has no implementation", i, t)
		}
	}
	r.evaluators = append([]evaluator.Type(nil), r.evaluators...)
	return r, nil
}

func hasEvaluator(t evaluator.Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case evaluator.MetricsType:
		return v.Evaluator != nil
	case evaluator.SystemInformationType:
		return v.Evaluator != nil
	case evaluator.TpsType:
		return v.Evaluator != nil
	case evaluator.LatencyType:
		return v.Evaluator != nil
	default:
		return true
	}
}

// Baseline returns the baseline node identity.
func (r *BlockingRunner) Baseline() node.Information {
	return r.baselineInfo
}

// EvaluatorNames returns the configured evaluator names in run order.
func (r *BlockingRunner) EvaluatorNames() []string {
	names := make([]string, len(r.evaluators))
	for i, t := range r.evaluators {
		names[i] = t.Name()
	}
	return names
}

// MetricsFetchDelay returns the delay between metrics snapshots.
func (r *BlockingRunner) MetricsFetchDelay() time.Duration {
	return r.metricsFetchDelay
}

// Run checks the target at addr, reading its data from source.
//
// The identity evaluator runs first. If any of its results scores below
// evaluator.MaxScore the run stops there and returns a summary of those
// results with a nil error. Otherwise system information and a first
// metrics snapshot are read from both sides, the TPS evaluator (if any)
// runs, and a second snapshot is taken once the fetch delay has elapsed
// since the first. The remaining evaluators then run in configured order.
//
// Every error is an *Error naming the failed stage. No partial summary is
// returned on error.
func (r *BlockingRunner) Run(ctx context.Context, addr node.Address, source collector.MetricCollector) (summary *evaluator.Summary, err error) {
	start := time.Now()
	outcome := outcomeError
	defer func() {
		runsTotal.WithLabelValues(outcome).Inc()
		runDuration.Observe(time.Since(start).Seconds())
		if stage, ok := StageOf(err); ok {
			stageFailures.WithLabelValues(string(stage)).Inc()
			slog.Debug("check run failed", "target", addr.URL, "stage", stage, "error", err)
		}
	}()

	if source == nil {
		return nil, &Error{Stage: StageCollectSystemInformation, Err: fmt.Errorf("target source is nil")}
	}

	direct := &evaluator.DirectInput{
		BaselineNodeInformation: r.baselineInfo,
		TargetNodeAddress:       addr,
	}

	identity, err := evaluate(ctx, StageNodeIdentity, r.identity, direct)
	if err != nil {
		return nil, err
	}
	for _, res := range identity {
		if res.Score < evaluator.MaxScore {
			slog.Debug("target identity does not match baseline", "target", addr.URL, "headline", res.Headline)
			outcome = outcomeIdentityMismatch
			return evaluator.NewSummary(identity), nil
		}
	}

	baseInfo, targetInfo, err := r.collectSystemInformation(ctx, source)
	if err != nil {
		return nil, err
	}

	prevBase, prevTarget, err := r.collectMetrics(ctx, source)
	if err != nil {
		return nil, err
	}

	deadline := r.clock.Now().Add(r.metricsFetchDelay)

	var results []evaluator.Result
	if tps, ok := evaluator.FindTps(r.evaluators); ok {
		res, err := evaluate(ctx, StageTpsEvaluator, tps.Evaluator, direct)
		if err != nil {
			return nil, err
		}
		results = append(results, res...)
	}

	if err := r.waitUntil(ctx, deadline); err != nil {
		return nil, &Error{Stage: StageCollectMetrics, Err: err}
	}

	latestBase, latestTarget, err := r.collectMetrics(ctx, source)
	if err != nil {
		return nil, err
	}

	metricsInput := &evaluator.MetricsInput{
		PreviousBaselineMetrics: prevBase,
		PreviousTargetMetrics:   prevTarget,
		LatestBaselineMetrics:   latestBase,
		LatestTargetMetrics:     latestTarget,
	}
	sysInput := &evaluator.SystemInformationInput{
		BaselineSystemInformation: baseInfo,
		TargetSystemInformation:   targetInfo,
	}

	for _, t := range r.evaluators {
		var res []evaluator.Result
		var err error

		switch v := t.(type) {
		case evaluator.MetricsType:
			res, err = evaluate(ctx, StageMetricsEvaluator, v.Evaluator, metricsInput)
		case evaluator.SystemInformationType:
			res, err = evaluate(ctx, StageSystemInformationEvaluator, v.Evaluator, sysInput)
		case evaluator.TpsType:
			// already ran inside the metrics window
			continue
		case evaluator.LatencyType:
			res, err = evaluate(ctx, StageLatencyEvaluator, v.Evaluator, direct)
		default:
			err = &Error{Stage: StageUnknownEvaluator, Err: fmt.Errorf("unrecognized evaluator type %T", t)}
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res...)
	}

	outcome = outcomeSuccess
	summary = evaluator.NewSummary(results)
	slog.Debug("check run complete", "target", addr.URL, "results", len(results), "score", summary.SummaryScore)
	return summary, nil
}

func evaluate[I any](ctx context.Context, stage Stage, e evaluator.Evaluator[I], in *I) ([]evaluator.Result, error) {
	start := time.Now()
	res, err := e.Evaluate(ctx, in)
	evaluatorDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &Error{Stage: stage, Err: fmt.Errorf("evaluator %s failed: %w", e.Name(), err)}
	}
	slog.Debug("evaluator complete", "evaluator", e.Name(), "results", len(res))
	return res, nil
}

func (r *BlockingRunner) collectSystemInformation(ctx context.Context, target collector.MetricCollector) (base, tgt *measurement.Measurement, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := r.baselineSource.CollectSystemInformation(gctx)
		if err != nil {
			return stageError(StageCollectSystemInformation, fmt.Errorf("baseline: %w", err))
		}
		base = m
		return nil
	})
	g.Go(func() error {
		m, err := target.CollectSystemInformation(gctx)
		if err != nil {
			return stageError(StageCollectSystemInformation, fmt.Errorf("target: %w", err))
		}
		tgt = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, tgt, nil
}

// collectMetrics reads and parses one snapshot from each side.
func (r *BlockingRunner) collectMetrics(ctx context.Context, target collector.MetricCollector) (base, tgt *metrics.Snapshot, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := r.snapshot(gctx, "baseline", r.baselineSource)
		base = s
		return err
	})
	g.Go(func() error {
		s, err := r.snapshot(gctx, "target", target)
		tgt = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, tgt, nil
}

func (r *BlockingRunner) snapshot(ctx context.Context, side string, source collector.MetricCollector) (*metrics.Snapshot, error) {
	lines, err := source.CollectMetrics(ctx)
	if err != nil {
		return nil, &Error{Stage: StageCollectMetrics, Err: fmt.Errorf("%s: %w", side, err)}
	}
	s, err := r.parser.Parse(lines)
	if err != nil {
		return nil, &Error{Stage: StageParseMetrics, Err: fmt.Errorf("%s: %w", side, err)}
	}
	return s, nil
}

// waitUntil blocks until the clock reaches deadline or ctx is done.
func (r *BlockingRunner) waitUntil(ctx context.Context, deadline time.Time) error {
	d := deadline.Sub(r.clock.Now())
	if d <= 0 {
		return nil
	}
	t := r.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
