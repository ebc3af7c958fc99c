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

package metrics

import (
	"context"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
)

var syncedLabels = map[string]string{"type": "synced"}

// StateSyncVersionConfig configures the StateSyncVersionEvaluator.
type StateSyncVersionConfig struct {
	VersionDeltaTolerance uint64 `json:"version_delta_tolerance" yaml:"version_delta_tolerance"`
}

// DefaultStateSyncVersionConfig returns the default tolerance.
func DefaultStateSyncVersionConfig() StateSyncVersionConfig {
	return StateSyncVersionConfig{VersionDeltaTolerance: 5000}
}

// StateSyncVersionEvaluator checks that the target is syncing and is not
// too far behind the baseline.
type StateSyncVersionEvaluator struct {
	cfg StateSyncVersionConfig
	rb  evaluator.ResultBuilder
}

// NewStateSyncVersionEvaluator returns a StateSyncVersionEvaluator.
func NewStateSyncVersionEvaluator(cfg StateSyncVersionConfig) *StateSyncVersionEvaluator {
	return &StateSyncVersionEvaluator{
		cfg: cfg,
		rb:  evaluator.NewResultBuilder(StateSyncVersionName, categoryMetrics),
	}
}

// Name implements evaluator.Evaluator.
func (e *StateSyncVersionEvaluator) Name() string { return StateSyncVersionName }

// Evaluate implements evaluator.Evaluator.
func (e *StateSyncVersionEvaluator) Evaluate(_ context.Context, in *evaluator.MetricsInput) ([]evaluator.Result, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	latestBaseline, err := baselineValue(in.LatestBaselineMetrics, MetricStateSyncVersion, syncedLabels)
	if err != nil {
		return nil, err
	}

	previousTarget, ok := in.PreviousTargetMetrics.Value(MetricStateSyncVersion, syncedLabels)
	if !ok {
		return []evaluator.Result{missingMetric(e.rb, MetricStateSyncVersion, "first")}, nil
	}
	latestTarget, ok := in.LatestTargetMetrics.Value(MetricStateSyncVersion, syncedLabels)
	if !ok {
		return []evaluator.Result{missingMetric(e.rb, MetricStateSyncVersion, "second")}, nil
	}

	prev, latest, base := uint64(previousTarget), uint64(latestTarget), uint64(latestBaseline)

	if latest <= prev {
		return []evaluator.Result{e.rb.Resultf("State sync version is not increasing", 0,
			"Successive samples of the synced version from the target were %d then %d. "+
				"The node is not making progress.", prev, latest)}, nil
	}

	var behind uint64
	if base > latest {
		behind = base - latest
	}
	if behind > e.cfg.VersionDeltaTolerance {
		return []evaluator.Result{e.rb.Resultf("State sync version is lagging", 50,
			"The target is syncing (%d then %d) but is %d versions behind the baseline at %d, "+
				"more than the allowed %d.", prev, latest, behind, base, e.cfg.VersionDeltaTolerance)}, nil
	}

	return []evaluator.Result{e.rb.Resultf("State sync version is within tolerance", evaluator.MaxScore,
		"The target is syncing (%d then %d) and is within %d versions of the baseline at %d.",
		prev, latest, e.cfg.VersionDeltaTolerance, base)}, nil
}
