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

// Package runner checks a target node against a baseline node.
//
// A BlockingRunner is built once per baseline configuration and then used
// for any number of targets, concurrently if needed:
//
//	r, err := runner.New(
//	    runner.WithBaseline(info, baselineCollector),
//	    runner.WithNodeIdentityEvaluator(direct.NewNodeIdentityEvaluator(client)),
//	    runner.WithEvaluators(
//	        evaluator.Metrics(metrics.NewStateSyncVersionEvaluator(metrics.DefaultStateSyncVersionConfig())),
//	        evaluator.Tps(tps),
//	    ),
//	)
//	summary, err := r.Run(ctx, target, targetCollector)
//
// # Run Sequence
//
//  1. Identity: the identity evaluator runs before anything is fetched. Any
//     result below the maximum score ends the run with a summary of those
//     results and no error.
//  2. System information is read from both sides.
//  3. A first metrics snapshot is read and parsed from both sides.
//  4. The TPS evaluator, if configured, runs.
//  5. The runner waits until the fetch delay has elapsed since step 3. Time
//     spent in step 4 counts toward the delay.
//  6. A second metrics snapshot is read from both sides.
//  7. The remaining evaluators run in configured order.
//
// Reads from the two sides run concurrently.
//
// # Errors
//
// Run fails fast and never returns a partial summary. Every error is an
// *Error carrying the Stage that failed:
//
//	if stage, ok := runner.StageOf(err); ok && stage == runner.StageCollectMetrics {
//	    // target or baseline unreachable
//	}
//
// A target whose identity differs from the baseline is not an error.
//
// # Metrics
//
//   - nodecheck_runs_total{outcome}
//   - nodecheck_run_duration_seconds
//   - nodecheck_run_stage_failures_total{stage}
//   - nodecheck_evaluator_duration_seconds{evaluator}
package runner
