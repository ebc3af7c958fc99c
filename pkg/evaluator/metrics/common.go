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
	"fmt"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/metrics"
)

// Evaluator names.
const (
	StateSyncVersionName   = "state_sync_version"
	ConsensusProposalsName = "consensus_proposals"
	NetworkPeersName       = "network_peers"
)

const categoryMetrics = "metrics"

// Metric names read by the evaluators.
const (
	MetricStateSyncVersion   = "state_sync_version"
	MetricConsensusProposals = "consensus_proposals_count"
	MetricNetworkConnections = "network_connections"
)

// missingMetric returns the finding for a metric the target does not export.
func missingMetric(rb evaluator.ResultBuilder, metric string, when string) evaluator.Result {
	return rb.Resultf(fmt.Sprintf("Metric %s missing", metric), 0,
		"The %s metrics from the target did not include %s. Make sure the node is running "+
			"and exporting metrics on the configured port.", when, metric)
}

func checkInput(in *evaluator.MetricsInput) error {
	if in == nil || in.PreviousBaselineMetrics == nil || in.PreviousTargetMetrics == nil ||
		in.LatestBaselineMetrics == nil || in.LatestTargetMetrics == nil {
		return fmt.Errorf("metrics input is incomplete")
	}
	return nil
}

func baselineValue(s *metrics.Snapshot, name string, labels map[string]string) (float64, error) {
	v, ok := s.Value(name, labels)
	if !ok {
		return 0, fmt.Errorf("baseline metrics did not include %s %v", name, labels)
	}
	return v, nil
}
