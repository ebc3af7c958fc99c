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

package report

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/evaluator/direct"
	"github.com/NVIDIA/node-checker/pkg/header"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/runner"
)

var (
	started  = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished = started.Add(12 * time.Second)
	target   = node.Address{URL: "http://target", APIPort: 8080, MetricsPort: 9101}
	cfg      = Configuration{Name: "devnet_fullnode", Evaluators: []string{"api_latency"}}
)

func result(name string, score uint8) evaluator.Result {
	return evaluator.Result{EvaluatorName: name, Score: score, Headline: name}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		summary    *evaluator.Summary
		err        error
		wantStatus Status
		wantCounts Counts
		wantStage  string
	}{
		{
			name:       "pass",
			summary:    evaluator.NewSummary([]evaluator.Result{result("api_latency", 100), result("tps", 100)}),
			wantStatus: StatusPass,
			wantCounts: Counts{Passed: 2, Total: 2},
		},
		{
			name:       "fail",
			summary:    evaluator.NewSummary([]evaluator.Result{result("api_latency", 100), result("tps", 0)}),
			wantStatus: StatusFail,
			wantCounts: Counts{Passed: 1, Failed: 1, Total: 2},
		},
		{
			name: "identity mismatch",
			summary: evaluator.NewSummary([]evaluator.Result{
				result(direct.NodeIdentityName, 100), result(direct.NodeIdentityName, 0),
			}),
			wantStatus: StatusIdentityMismatch,
			wantCounts: Counts{Passed: 1, Failed: 1, Total: 2},
		},
		{
			name:       "stage error",
			err:        &runner.Error{Stage: runner.StageCollectMetrics, Err: errors.New("connection refused")},
			wantStatus: StatusError,
			wantStage:  string(runner.StageCollectMetrics),
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(cfg, target, tt.summary, tt.err, "v1.0.0", started, finished)

			assert.Equal(t, header.KindCheckReport, r.Kind)
			assert.Equal(t, APIVersion, r.APIVersion)
			assert.Equal(t, finished, r.Timestamp())
			assert.Equal(t, "v1.0.0", r.Metadata[header.MetadataVersion])
			_, err := uuid.Parse(r.RunID)
			require.NoError(t, err)
			assert.Equal(t, 12*time.Second, r.Duration)

			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantCounts, r.Counts)
			assert.Equal(t, tt.wantStatus == StatusPass, r.Passed())

			if tt.err != nil {
				require.NotNil(t, r.Error)
				assert.Nil(t, r.Summary)
				assert.Equal(t, tt.wantStage, r.Error.Stage)
				assert.Equal(t, tt.err.Error(), r.Error.Message)
			} else {
				assert.Nil(t, r.Error)
				assert.Same(t, tt.summary, r.Summary)
			}
		})
	}
}

func TestNewRunIDsDiffer(t *testing.T) {
	s := evaluator.NewSummary(nil)
	a := New(cfg, target, s, nil, "", started, finished)
	b := New(cfg, target, s, nil, "", started, finished)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.NotContains(t, a.Metadata, header.MetadataVersion)
}
