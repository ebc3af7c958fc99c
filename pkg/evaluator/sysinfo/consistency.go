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
	"fmt"
	"sort"
	"strings"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// ConsistencyConfig configures the ConsistencyEvaluator.
type ConsistencyConfig struct {
	// Subtypes to compare. Subtypes the baseline does not report are
	// skipped.
	Subtypes []string `json:"subtypes" yaml:"subtypes"`

	// Ignore lists key patterns left out of the comparison.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// DriftScore is the score given to a subtype that differs.
	DriftScore uint8 `json:"drift_score" yaml:"drift_score"`
}

// DefaultConsistencyConfig compares the host release, kernel and
// Kubernetes node information.
func DefaultConsistencyConfig() ConsistencyConfig {
	return ConsistencyConfig{
		Subtypes:   []string{measurement.SubtypeRelease, measurement.SubtypeKernel, measurement.SubtypeK8s},
		Ignore:     []string{measurement.KeyK8sNodeName, "*_timestamp"},
		DriftScore: 70,
	}
}

// ConsistencyEvaluator reports drift between the baseline and the target
// for each configured subtype.
type ConsistencyEvaluator struct {
	cfg ConsistencyConfig
	rb  evaluator.ResultBuilder
}

// NewConsistencyEvaluator returns a ConsistencyEvaluator.
func NewConsistencyEvaluator(cfg ConsistencyConfig) *ConsistencyEvaluator {
	return &ConsistencyEvaluator{
		cfg: cfg,
		rb:  evaluator.NewResultBuilder(ConsistencyName, categorySystem),
	}
}

// Name implements evaluator.Evaluator.
func (e *ConsistencyEvaluator) Name() string { return ConsistencyName }

// Evaluate implements evaluator.Evaluator.
func (e *ConsistencyEvaluator) Evaluate(_ context.Context, in *evaluator.SystemInformationInput) ([]evaluator.Result, error) {
	if in == nil || in.BaselineSystemInformation == nil || in.TargetSystemInformation == nil {
		return nil, fmt.Errorf("system information input is incomplete")
	}

	var results []evaluator.Result
	for _, name := range e.cfg.Subtypes {
		base := in.BaselineSystemInformation.GetSubtype(name)
		target := in.TargetSystemInformation.GetSubtype(name)
		if base == nil {
			continue
		}
		fb := measurement.FilterSubtype(*base, nil, e.cfg.Ignore)
		base = &fb
		if target != nil {
			f := measurement.FilterSubtype(*target, nil, e.cfg.Ignore)
			target = &f
		}

		drifts := measurement.CompareSubtype(base, target)
		if len(drifts) == 0 {
			results = append(results, e.rb.Resultf(fmt.Sprintf("%s matches baseline", name), evaluator.MaxScore,
				"The target's %s information is identical to the baseline.", name))
			continue
		}

		lines := make([]string, len(drifts))
		for i, d := range drifts {
			lines[i] = d.String()
		}
		sort.Strings(lines)
		results = append(results, e.rb.Resultf(fmt.Sprintf("%s differs from baseline", name), e.cfg.DriftScore,
			"The target's %s information differs from the baseline in %d place(s): %s.",
			name, len(drifts), strings.Join(lines, "; ")))
	}
	return results, nil
}
