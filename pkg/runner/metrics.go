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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess          = "success"
	outcomeIdentityMismatch = "identity_mismatch"
	outcomeError            = "error"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodecheck_runs_total",
			Help: "Total number of check runs by outcome",
		},
		[]string{"outcome"}, // success, identity_mismatch, error
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nodecheck_run_duration_seconds",
			Help:    "Time taken by a complete check run",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 120},
		},
	)

	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodecheck_run_stage_failures_total",
			Help: "Total number of failed runs by stage",
		},
		[]string{"stage"},
	)

	evaluatorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodecheck_evaluator_duration_seconds",
			Help:    "Time taken by individual evaluators",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"evaluator"},
	)
)
