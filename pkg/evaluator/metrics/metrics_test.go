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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/metrics"
)

func snap(t *testing.T, lines ...string) *metrics.Snapshot {
	t.Helper()
	s, err := metrics.ParseLines(lines)
	require.NoError(t, err)
	return s
}

func synced(v int) string {
	return fmt.Sprintf(`state_sync_version{type="synced"} %d`, v)
}

func input(t *testing.T, prevBase, prevTarget, latestBase, latestTarget []string) *evaluator.MetricsInput {
	return &evaluator.MetricsInput{
		PreviousBaselineMetrics: snap(t, prevBase...),
		PreviousTargetMetrics:   snap(t, prevTarget...),
		LatestBaselineMetrics:   snap(t, latestBase...),
		LatestTargetMetrics:     snap(t, latestTarget...),
	}
}

func TestStateSyncVersionEvaluator(t *testing.T) {
	tests := []struct {
		name       string
		baseline   int
		prevTarget []string
		target     []string
		wantScore  uint8
	}{
		{"in sync", 10000, []string{synced(9000)}, []string{synced(9500)}, 100},
		{"target ahead", 10000, []string{synced(10000)}, []string{synced(10100)}, 100},
		{"lagging", 100000, []string{synced(1000)}, []string{synced(2000)}, 50},
		{"stalled", 10000, []string{synced(9000)}, []string{synced(9000)}, 0},
		{"missing first", 10000, nil, []string{synced(9000)}, 0},
		{"missing second", 10000, []string{synced(9000)}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewStateSyncVersionEvaluator(DefaultStateSyncVersionConfig())
			in := input(t, []string{synced(tt.baseline - 100)}, tt.prevTarget, []string{synced(tt.baseline)}, tt.target)

			results, err := e.Evaluate(context.Background(), in)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantScore, results[0].Score)
			assert.Equal(t, StateSyncVersionName, results[0].EvaluatorName)
		})
	}
}

func TestStateSyncVersionEvaluatorBaselineMissing(t *testing.T) {
	e := NewStateSyncVersionEvaluator(DefaultStateSyncVersionConfig())
	_, err := e.Evaluate(context.Background(), input(t, nil, []string{synced(1)}, nil, []string{synced(2)}))
	assert.ErrorContains(t, err, "baseline")
}

func TestIncompleteInput(t *testing.T) {
	evaluators := []evaluator.MetricsEvaluator{
		NewStateSyncVersionEvaluator(DefaultStateSyncVersionConfig()),
		NewConsensusProposalsEvaluator(),
		NewNetworkPeersEvaluator(DefaultNetworkPeersConfig()),
	}
	for _, e := range evaluators {
		t.Run(e.Name(), func(t *testing.T) {
			_, err := e.Evaluate(context.Background(), &evaluator.MetricsInput{})
			assert.Error(t, err)
		})
	}
}

func TestConsensusProposalsEvaluator(t *testing.T) {
	tests := []struct {
		name      string
		prev      []string
		latest    []string
		wantScore uint8
	}{
		{"progressing", []string{"consensus_proposals_count 10"}, []string{"consensus_proposals_count 12"}, 100},
		{"stuck", []string{"consensus_proposals_count 10"}, []string{"consensus_proposals_count 10"}, 0},
		{"missing", nil, []string{"consensus_proposals_count 10"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewConsensusProposalsEvaluator()
			results, err := e.Evaluate(context.Background(), input(t, nil, tt.prev, nil, tt.latest))
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantScore, results[0].Score)
		})
	}
}

func TestNetworkPeersEvaluator(t *testing.T) {
	latest := []string{
		`network_connections{direction="inbound",network_id="Public"} 2`,
		`network_connections{direction="inbound",network_id="Validator"} 1`,
		`network_connections{direction="outbound",network_id="Public"} 0`,
	}

	e := NewNetworkPeersEvaluator(NetworkPeersConfig{MinimumPeersInbound: 3, MinimumPeersOutbound: 1})
	results, err := e.Evaluate(context.Background(), input(t, nil, nil, nil, latest))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.EqualValues(t, 100, results[0].Score)
	assert.EqualValues(t, 0, results[1].Score)
	assert.Contains(t, results[1].Explanation, "0 outbound")
}
