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

import "fmt"

// MaxScore is the score of a fully passing result.
const MaxScore uint8 = 100

// Result is a single finding produced by an evaluator.
type Result struct {
	// Headline is a short title for the finding.
	Headline string `json:"headline" yaml:"headline"`

	// Score is between 0 and MaxScore.
	Score uint8 `json:"score" yaml:"score"`

	// Explanation describes what was measured and why it scored as it did.
	Explanation string `json:"explanation" yaml:"explanation"`

	// Category groups results in reports, e.g. "metrics" or "api".
	Category string `json:"category" yaml:"category"`

	// EvaluatorName identifies the producing evaluator.
	EvaluatorName string `json:"evaluator_name" yaml:"evaluator_name"`

	// Links points at documentation that helps fix the finding.
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`
}

// Passed reports whether the result has the maximum score.
func (r Result) Passed() bool {
	return r.Score >= MaxScore
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("[%d] %s: %s", r.Score, r.Headline, r.Explanation)
}

// ResultBuilder creates results with the evaluator name and category preset.
type ResultBuilder struct {
	name     string
	category string
	links    []string
}

// NewResultBuilder returns a builder for the named evaluator.
func NewResultBuilder(name, category string, links ...string) ResultBuilder {
	return ResultBuilder{name: name, category: category, links: links}
}

// Result returns a finding. Scores above MaxScore are clamped.
func (b ResultBuilder) Result(headline string, score uint8, explanation string) Result {
	if score > MaxScore {
		score = MaxScore
	}
	var links []string
	if len(b.links) > 0 {
		links = append([]string(nil), b.links...)
	}
	return Result{
		Headline:      headline,
		Score:         score,
		Explanation:   explanation,
		Category:      b.category,
		EvaluatorName: b.name,
		Links:         links,
	}
}

// Resultf is Result with a formatted explanation.
func (b ResultBuilder) Resultf(headline string, score uint8, format string, args ...any) Result {
	return b.Result(headline, score, fmt.Sprintf(format, args...))
}
