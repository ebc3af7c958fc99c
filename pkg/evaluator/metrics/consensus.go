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

// ConsensusProposalsEvaluator checks that a validator keeps producing
// consensus proposals.
type ConsensusProposalsEvaluator struct {
	rb evaluator.ResultBuilder
}

// NewConsensusProposalsEvaluator returns a ConsensusProposalsEvaluator.
func NewConsensusProposalsEvaluator() *ConsensusProposalsEvaluator {
	return &ConsensusProposalsEvaluator{
		rb: evaluator.NewResultBuilder(ConsensusProposalsName, categoryMetrics),
	}
}

// Name implements evaluator.Evaluator.
func (e *ConsensusProposalsEvaluator) Name() string { return ConsensusProposalsName }

// Evaluate implements evaluator.Evaluator.
func (e *ConsensusProposalsEvaluator) Evaluate(_ context.Context, in *evaluator.MetricsInput) ([]evaluator.Result, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	prev, ok := in.PreviousTargetMetrics.Value(MetricConsensusProposals, nil)
	if !ok {
		return []evaluator.Result{missingMetric(e.rb, MetricConsensusProposals, "first")}, nil
	}
	latest, ok := in.LatestTargetMetrics.Value(MetricConsensusProposals, nil)
	if !ok {
		return []evaluator.Result{missingMetric(e.rb, MetricConsensusProposals, "second")}, nil
	}

	if latest <= prev {
		return []evaluator.Result{e.rb.Resultf("Consensus proposals are not progressing", 0,
			"The proposal count went from %.0f to %.0f. The validator is not participating in consensus.",
			prev, latest)}, nil
	}
	return []evaluator.Result{e.rb.Resultf("Consensus proposals are progressing", evaluator.MaxScore,
		"The proposal count went from %.0f to %.0f.", prev, latest)}, nil
}
