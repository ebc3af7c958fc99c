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

// NetworkPeersConfig configures the NetworkPeersEvaluator.
type NetworkPeersConfig struct {
	MinimumPeersInbound  uint64 `json:"minimum_peers_inbound" yaml:"minimum_peers_inbound"`
	MinimumPeersOutbound uint64 `json:"minimum_peers_outbound" yaml:"minimum_peers_outbound"`
}

// DefaultNetworkPeersConfig returns the default peer minimums.
func DefaultNetworkPeersConfig() NetworkPeersConfig {
	return NetworkPeersConfig{MinimumPeersInbound: 0, MinimumPeersOutbound: 1}
}

// NetworkPeersEvaluator checks the number of inbound and outbound
// connections the target holds.
type NetworkPeersEvaluator struct {
	cfg NetworkPeersConfig
	rb  evaluator.ResultBuilder
}

// NewNetworkPeersEvaluator returns a NetworkPeersEvaluator.
func NewNetworkPeersEvaluator(cfg NetworkPeersConfig) *NetworkPeersEvaluator {
	return &NetworkPeersEvaluator{
		cfg: cfg,
		rb:  evaluator.NewResultBuilder(NetworkPeersName, "network"),
	}
}

// Name implements evaluator.Evaluator.
func (e *NetworkPeersEvaluator) Name() string { return NetworkPeersName }

// Evaluate implements evaluator.Evaluator.
func (e *NetworkPeersEvaluator) Evaluate(_ context.Context, in *evaluator.MetricsInput) ([]evaluator.Result, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	results := make([]evaluator.Result, 0, 2)
	for _, dir := range []struct {
		name string
		min  uint64
	}{
		{"inbound", e.cfg.MinimumPeersInbound},
		{"outbound", e.cfg.MinimumPeersOutbound},
	} {
		n, _ := in.LatestTargetMetrics.Sum(MetricNetworkConnections, map[string]string{"direction": dir.name})
		count := uint64(n)
		if count < dir.min {
			results = append(results, e.rb.Resultf("Not enough "+dir.name+" peers", 0,
				"The target has %d %s connections, fewer than the minimum of %d.", count, dir.name, dir.min))
			continue
		}
		results = append(results, e.rb.Resultf("Enough "+dir.name+" peers", evaluator.MaxScore,
			"The target has %d %s connections, at least the minimum of %d.", count, dir.name, dir.min))
	}
	return results, nil
}
