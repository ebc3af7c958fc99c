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

// Summary is the outcome of one run: every result in execution order plus
// an aggregate score.
type Summary struct {
	EvaluationResults  []Result `json:"evaluation_results" yaml:"evaluation_results"`
	SummaryScore       uint8    `json:"summary_score" yaml:"summary_score"`
	SummaryExplanation string   `json:"summary_explanation" yaml:"summary_explanation"`
}

// NewSummary builds a Summary from results. The slice is copied. The score
// is the integer mean of all result scores, or MaxScore for no results.
func NewSummary(results []Result) *Summary {
	copied := make([]Result, len(results))
	copy(copied, results)

	score := MaxScore
	if len(copied) > 0 {
		var total uint64
		for _, r := range copied {
			total += uint64(r.Score)
		}
		score = uint8(total / uint64(len(copied)))
	}

	return &Summary{
		EvaluationResults:  copied,
		SummaryScore:       score,
		SummaryExplanation: explain(score),
	}
}

func explain(score uint8) string {
	switch {
	case score > 95:
		return "Awesome!"
	case score > 80:
		return "Good!"
	case score > 50:
		return "Getting there!"
	default:
		return "Improvement necessary"
	}
}

// Passed reports whether every result has the maximum score.
func (s *Summary) Passed() bool {
	for _, r := range s.EvaluationResults {
		if !r.Passed() {
			return false
		}
	}
	return true
}

// Failed returns the results that did not reach the maximum score.
func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.EvaluationResults {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}
