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
	"testing"

	"github.com/stretchr/testify/assert"
)

func scores(s ...uint8) []Result {
	out := make([]Result, len(s))
	for i, v := range s {
		out[i] = Result{Headline: "r", Score: v}
	}
	return out
}

func TestNewSummary(t *testing.T) {
	tests := []struct {
		name        string
		results     []Result
		wantScore   uint8
		wantExplain string
		wantPassed  bool
	}{
		{"empty", nil, 100, "Awesome!", true},
		{"all pass", scores(100, 100), 100, "Awesome!", true},
		{"mean floors", scores(100, 100, 99), 99, "Awesome!", false},
		{"band 95 is good", scores(95), 95, "Good!", false},
		{"good", scores(100, 70), 85, "Good!", false},
		{"band 80 is getting there", scores(80), 80, "Getting there!", false},
		{"getting there", scores(100, 0, 100), 66, "Getting there!", false},
		{"band 50", scores(50), 50, "Improvement necessary", false},
		{"zero", scores(0, 0), 0, "Improvement necessary", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummary(tt.results)
			assert.Equal(t, tt.wantScore, s.SummaryScore)
			assert.Equal(t, tt.wantExplain, s.SummaryExplanation)
			assert.Equal(t, tt.wantPassed, s.Passed())
			assert.Len(t, s.EvaluationResults, len(tt.results))
		})
	}
}

func TestNewSummaryCopiesResults(t *testing.T) {
	results := scores(100, 0)
	s := NewSummary(results)
	results[1].Score = 100

	assert.EqualValues(t, 0, s.EvaluationResults[1].Score)
	assert.Len(t, s.Failed(), 1)
}

func TestResultBuilder(t *testing.T) {
	b := NewResultBuilder("latency", "api", "https://docs.example.com/latency")

	r := b.Resultf("API latency is good", 120, "average %dms", 12)
	assert.Equal(t, MaxScore, r.Score)
	assert.Equal(t, "latency", r.EvaluatorName)
	assert.Equal(t, "api", r.Category)
	assert.Equal(t, "average 12ms", r.Explanation)
	assert.Equal(t, []string{"https://docs.example.com/latency"}, r.Links)
	assert.True(t, r.Passed())
	assert.Equal(t, "[100] API latency is good: average 12ms", r.String())

	r.Links[0] = "changed"
	assert.Equal(t, "https://docs.example.com/latency", b.Result("x", 0, "").Links[0])

	assert.Nil(t, NewResultBuilder("n", "c").Result("x", 0, "").Links)
}

type namedDirect struct{ name string }

func (n namedDirect) Name() string { return n.name }
func (namedDirect) Evaluate(context.Context, *DirectInput) ([]Result, error) {
	return nil, nil
}

func TestFindTps(t *testing.T) {
	types := []Type{
		Latency(namedDirect{"latency"}),
		Tps(namedDirect{"tps_first"}),
		Tps(namedDirect{"tps_second"}),
	}

	tps, ok := FindTps(types)
	assert.True(t, ok)
	assert.Equal(t, "tps_first", tps.Name())

	_, ok = FindTps(types[:1])
	assert.False(t, ok)
	assert.Equal(t, "latency", types[0].Name())
}
