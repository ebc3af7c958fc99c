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

package direct

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator"
)

// LatencyConfig configures the LatencyEvaluator.
type LatencyConfig struct {
	NumSamples            int `json:"num_samples" yaml:"num_samples"`
	DelayBetweenSamplesMs int `json:"delay_between_samples_ms" yaml:"delay_between_samples_ms"`
	NumAllowedErrors      int `json:"num_allowed_errors" yaml:"num_allowed_errors"`
	MaxAPILatencyMs       int `json:"max_api_latency_ms" yaml:"max_api_latency_ms"`
}

// DefaultLatencyConfig returns the default latency settings.
func DefaultLatencyConfig() LatencyConfig {
	return LatencyConfig{
		NumSamples:            5,
		DelayBetweenSamplesMs: int(defaults.LatencySampleDelay / time.Millisecond),
		NumAllowedErrors:      1,
		MaxAPILatencyMs:       int(defaults.LatencyMaxAPILatency / time.Millisecond),
	}
}

// Validate checks the configuration.
func (c LatencyConfig) Validate() error {
	if c.NumSamples < 1 {
		return fmt.Errorf("num_samples must be at least 1, got %d", c.NumSamples)
	}
	if c.NumAllowedErrors < 0 || c.NumAllowedErrors >= c.NumSamples {
		return fmt.Errorf("num_allowed_errors must be between 0 and %d, got %d", c.NumSamples-1, c.NumAllowedErrors)
	}
	if c.DelayBetweenSamplesMs < 0 || c.MaxAPILatencyMs <= 0 {
		return fmt.Errorf("latency durations must be positive")
	}
	return nil
}

// LatencyEvaluator probes the target API several times and scores the
// average round-trip time.
type LatencyEvaluator struct {
	api NodeAPI
	cfg LatencyConfig
	rb  evaluator.ResultBuilder
}

// NewLatencyEvaluator returns a LatencyEvaluator.
func NewLatencyEvaluator(api NodeAPI, cfg LatencyConfig) (*LatencyEvaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", LatencyName, err)
	}
	return &LatencyEvaluator{
		api: api,
		cfg: cfg,
		rb:  evaluator.NewResultBuilder(LatencyName, categoryAPI),
	}, nil
}

// Name implements evaluator.Evaluator.
func (e *LatencyEvaluator) Name() string { return LatencyName }

// Evaluate implements evaluator.Evaluator.
func (e *LatencyEvaluator) Evaluate(ctx context.Context, in *evaluator.DirectInput) ([]evaluator.Result, error) {
	delay := time.Duration(e.cfg.DelayBetweenSamplesMs) * time.Millisecond
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var (
		total   time.Duration
		ok      int
		errs    int
		lastErr error
	)
	for i := 0; i < e.cfg.NumSamples; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("latency sampling interrupted: %w", err)
		}
		d, err := e.api.Probe(ctx, in.TargetNodeAddress)
		if err != nil {
			errs++
			lastErr = err
			slog.Debug("latency probe failed", "sample", i, "error", err)
			continue
		}
		total += d
		ok++
	}

	if errs > e.cfg.NumAllowedErrors {
		return []evaluator.Result{e.rb.Resultf("Node API is unreliable", 0,
			"%d of %d requests to the API failed, more than the %d allowed. Last error: %v",
			errs, e.cfg.NumSamples, e.cfg.NumAllowedErrors, lastErr)}, nil
	}

	avg := total / time.Duration(ok)
	maxLatency := time.Duration(e.cfg.MaxAPILatencyMs) * time.Millisecond
	if avg > maxLatency {
		return []evaluator.Result{e.rb.Resultf("Average API latency too high", 0,
			"The average latency over %d requests was %dms, above the maximum of %dms.",
			ok, avg.Milliseconds(), maxLatency.Milliseconds())}, nil
	}

	return []evaluator.Result{e.rb.Resultf("Average API latency is good", evaluator.MaxScore,
		"The average latency over %d requests was %dms, within the maximum of %dms.",
		ok, avg.Milliseconds(), maxLatency.Milliseconds())}, nil
}
