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

package evaluator

import (
	"context"

	"github.com/NVIDIA/node-checker/pkg/measurement"
	"github.com/NVIDIA/node-checker/pkg/metrics"
	"github.com/NVIDIA/node-checker/pkg/node"
)

// Evaluator turns an input of type I into findings. Evaluate returns an
// error only when it could not evaluate at all; a failing check is a
// low-scoring Result.
type Evaluator[I any] interface {
	Name() string
	Evaluate(ctx context.Context, input *I) ([]Result, error)
}

// DirectInput is given to evaluators that query the target themselves.
type DirectInput struct {
	BaselineNodeInformation node.Information
	TargetNodeAddress       node.Address
}

// MetricsInput carries two snapshots per side, taken a delay apart.
type MetricsInput struct {
	PreviousBaselineMetrics *metrics.Snapshot
	PreviousTargetMetrics   *metrics.Snapshot
	LatestBaselineMetrics   *metrics.Snapshot
	LatestTargetMetrics     *metrics.Snapshot
}

// SystemInformationInput carries system information from both sides.
type SystemInformationInput struct {
	BaselineSystemInformation *measurement.Measurement
	TargetSystemInformation   *measurement.Measurement
}

type (
	// DirectEvaluator evaluates a DirectInput.
	DirectEvaluator = Evaluator[DirectInput]

	// MetricsEvaluator evaluates a MetricsInput.
	MetricsEvaluator = Evaluator[MetricsInput]

	// SystemInformationEvaluator evaluates a SystemInformationInput.
	SystemInformationEvaluator = Evaluator[SystemInformationInput]
)
