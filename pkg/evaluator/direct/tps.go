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
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator"
)

// TpsConfig configures the TpsEvaluator.
type TpsConfig struct {
	DurationSecs int     `json:"duration_secs" yaml:"duration_secs"`
	MinimumTPS   float64 `json:"minimum_tps" yaml:"minimum_tps"`
}

// DefaultTpsConfig returns the default throughput settings.
func DefaultTpsConfig() TpsConfig {
	return TpsConfig{
		DurationSecs: int(defaults.TpsMeasurementDuration / time.Second),
		MinimumTPS:   1,
	}
}

// Validate checks the configuration.
func (c TpsConfig) Validate() error {
	if c.DurationSecs < 1 {
		return fmt.Errorf("duration_secs must be at least 1, got %d", c.DurationSecs)
	}
	if c.MinimumTPS < 0 {
		return fmt.Errorf("minimum_tps must not be negative, got %v", c.MinimumTPS)
	}
	return nil
}

// TpsEvaluator measures how fast the target's ledger version advances.
type TpsEvaluator struct {
	api   NodeAPI
	cfg   TpsConfig
	clock clock.Clock
	rb    evaluator.ResultBuilder
}

// NewTpsEvaluator returns a TpsEvaluator. A nil clock means the real clock.
func NewTpsEvaluator(api NodeAPI, cfg TpsConfig, clk clock.Clock) (*TpsEvaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", TpsName, err)
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &TpsEvaluator{
		api:   api,
		cfg:   cfg,
		clock: clk,
		rb:    evaluator.NewResultBuilder(TpsName, "performance"),
	}, nil
}

// Name implements evaluator.Evaluator.
func (e *TpsEvaluator) Name() string { return TpsName }

// Evaluate implements evaluator.Evaluator.
func (e *TpsEvaluator) Evaluate(ctx context.Context, in *evaluator.DirectInput) ([]evaluator.Result, error) {
	first, err := e.api.LedgerInfo(ctx, in.TargetNodeAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to read starting ledger version: %w", err)
	}
	start := e.clock.Now()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("tps measurement interrupted: %w", ctx.Err())
	case <-e.clock.After(time.Duration(e.cfg.DurationSecs) * time.Second):
	}

	second, err := e.api.LedgerInfo(ctx, in.TargetNodeAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to read ending ledger version: %w", err)
	}
	elapsed := e.clock.Since(start)

	if second.LedgerVersion <= first.LedgerVersion {
		return []evaluator.Result{e.rb.Resultf("Ledger version did not advance", 0,
			"The ledger version went from %d to %d over %s. The node is not processing transactions.",
			first.LedgerVersion, second.LedgerVersion, elapsed)}, nil
	}

	tps := float64(second.LedgerVersion-first.LedgerVersion) / elapsed.Seconds()
	if tps < e.cfg.MinimumTPS {
		return []evaluator.Result{e.rb.Resultf("Transaction throughput too low", 0,
			"The node processed %.2f transactions per second, below the minimum of %.2f.",
			tps, e.cfg.MinimumTPS)}, nil
	}
	return []evaluator.Result{e.rb.Resultf("Transaction throughput is good", evaluator.MaxScore,
		"The node processed %.2f transactions per second, above the minimum of %.2f.",
		tps, e.cfg.MinimumTPS)}, nil
}
