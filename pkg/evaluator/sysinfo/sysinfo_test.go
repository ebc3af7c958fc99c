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

package sysinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

func info(subtypes ...measurement.Subtype) *measurement.Measurement {
	return measurement.NewMeasurement(measurement.TypeSystemInformation).
		WithSubtypes(subtypes...).
		Build()
}

func nodeInfo(kv map[string]string) measurement.Subtype {
	return measurement.FromStrings(measurement.SubtypeNode, kv)
}

func TestBuildVersionEvaluator(t *testing.T) {
	base := info(nodeInfo(map[string]string{
		measurement.KeyBuildCommitHash: "aaa",
		measurement.KeyBuildPkgVersion: "1.8.3",
	}))

	tests := []struct {
		name      string
		target    *measurement.Measurement
		wantScore uint8
	}{
		{"same commit", info(nodeInfo(map[string]string{
			measurement.KeyBuildCommitHash: "aaa",
		})), 100},
		{"same minor", info(nodeInfo(map[string]string{
			measurement.KeyBuildCommitHash: "bbb",
			measurement.KeyBuildPkgVersion: "aptos-node-v1.8.0",
		})), 75},
		{"different minor", info(nodeInfo(map[string]string{
			measurement.KeyBuildCommitHash: "bbb",
			measurement.KeyBuildPkgVersion: "1.9.0",
		})), 0},
		{"no version", info(nodeInfo(map[string]string{
			measurement.KeyBuildCommitHash: "bbb",
		})), 0},
		{"missing hash", info(nodeInfo(map[string]string{"cpu_count": "8"})), 0},
		{"no node subtype", info(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewBuildVersionEvaluator()
			results, err := e.Evaluate(context.Background(), &evaluator.SystemInformationInput{
				BaselineSystemInformation: base,
				TargetSystemInformation:   tt.target,
			})
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantScore, results[0].Score)
			assert.Equal(t, BuildVersionName, results[0].EvaluatorName)
		})
	}
}

func TestBuildVersionEvaluatorBadBaseline(t *testing.T) {
	e := NewBuildVersionEvaluator()
	_, err := e.Evaluate(context.Background(), &evaluator.SystemInformationInput{
		BaselineSystemInformation: info(),
		TargetSystemInformation:   info(),
	})
	assert.Error(t, err)

	_, err = e.Evaluate(context.Background(), &evaluator.SystemInformationInput{})
	assert.Error(t, err)
}

func TestHardwareEvaluator(t *testing.T) {
	base := info(nodeInfo(map[string]string{"cpu_count": "1"}))

	tests := []struct {
		name   string
		target map[string]string
		want   []uint8
	}{
		{"enough", map[string]string{"cpu_count": "16", "memory_total": "64000000"}, []uint8{100, 100}},
		{"small", map[string]string{"cpu_count": "4", "memory_total": "16000000"}, []uint8{0, 0}},
		{"exact minimums", map[string]string{"cpu_count": "8", "memory_total": "31000000"}, []uint8{100, 100}},
		{"missing", map[string]string{}, []uint8{0, 0}},
		{"garbage", map[string]string{"cpu_count": "many", "memory_total": "lots"}, []uint8{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHardwareEvaluator(DefaultHardwareConfig())
			results, err := e.Evaluate(context.Background(), &evaluator.SystemInformationInput{
				BaselineSystemInformation: base,
				TargetSystemInformation:   info(nodeInfo(tt.target)),
			})
			require.NoError(t, err)
			require.Len(t, results, 2)
			assert.Equal(t, tt.want[0], results[0].Score)
			assert.Equal(t, tt.want[1], results[1].Score)
			assert.NotEmpty(t, results[0].Links)
		})
	}
}

func TestConsistencyEvaluator(t *testing.T) {
	release := func(id, ver string) measurement.Subtype {
		return measurement.FromStrings(measurement.SubtypeRelease, map[string]string{"ID": id, "VERSION_ID": ver})
	}
	k8s := func(node, kubelet string) measurement.Subtype {
		return measurement.FromStrings(measurement.SubtypeK8s, map[string]string{
			measurement.KeyK8sNodeName:       node,
			measurement.KeyK8sKubeletVersion: kubelet,
		})
	}

	base := info(release("ubuntu", "22.04"), k8s("node-a", "v1.30.1"),
		measurement.FromStrings(measurement.SubtypeKernel, map[string]string{"osrelease": "6.8"}))
	target := info(release("ubuntu", "24.04"), k8s("node-b", "v1.30.1"))

	e := NewConsistencyEvaluator(DefaultConsistencyConfig())
	results, err := e.Evaluate(context.Background(), &evaluator.SystemInformationInput{
		BaselineSystemInformation: base,
		TargetSystemInformation:   target,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.EqualValues(t, 70, results[0].Score)
	assert.Contains(t, results[0].Explanation, "release.VERSION_ID: 22.04 -> 24.04")

	assert.EqualValues(t, 70, results[1].Score)
	assert.Contains(t, results[1].Explanation, "kernel.osrelease: 6.8 -> <missing>")

	// node_name is ignored by default
	assert.EqualValues(t, 100, results[2].Score)
}

func TestConsistencyEvaluatorSkipsAbsentSubtypes(t *testing.T) {
	e := NewConsistencyEvaluator(ConsistencyConfig{Subtypes: []string{measurement.SubtypeSystemd}, DriftScore: 50})
	results, err := e.Evaluate(context.Background(), &evaluator.SystemInformationInput{
		BaselineSystemInformation: info(nodeInfo(map[string]string{"a": "b"})),
		TargetSystemInformation: info(nodeInfo(map[string]string{"a": "c"}),
			measurement.FromStrings(measurement.SubtypeSystemd, map[string]string{"kubelet.service.active_state": "active"})),
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
