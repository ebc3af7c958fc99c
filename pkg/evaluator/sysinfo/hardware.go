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

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// HardwareConfig configures the HardwareEvaluator.
type HardwareConfig struct {
	MinCPUCores int64 `json:"min_cpu_cores" yaml:"min_cpu_cores"`
	MinRAMGB    int64 `json:"min_ram_gb" yaml:"min_ram_gb"`
}

// DefaultHardwareConfig returns the default hardware minimums.
func DefaultHardwareConfig() HardwareConfig {
	return HardwareConfig{MinCPUCores: 8, MinRAMGB: 31}
}

// HardwareEvaluator checks the target's CPU count and memory against fixed
// minimums. The baseline is not consulted.
type HardwareEvaluator struct {
	cfg HardwareConfig
	rb  evaluator.ResultBuilder
}

// NewHardwareEvaluator returns a HardwareEvaluator.
func NewHardwareEvaluator(cfg HardwareConfig) *HardwareEvaluator {
	return &HardwareEvaluator{
		cfg: cfg,
		rb: evaluator.NewResultBuilder(HardwareName, categorySystem,
			"https://aptos.dev/nodes/validator-node/operator/node-requirements"),
	}
}

// Name implements evaluator.Evaluator.
func (e *HardwareEvaluator) Name() string { return HardwareName }

// Evaluate implements evaluator.Evaluator.
func (e *HardwareEvaluator) Evaluate(_ context.Context, in *evaluator.SystemInformationInput) ([]evaluator.Result, error) {
	_, target, err := nodeSubtypes(in)
	if err != nil {
		return nil, err
	}
	if target == nil {
		target = &measurement.Subtype{}
	}

	results := make([]evaluator.Result, 0, 2)

	cores, err := target.GetInt64(measurement.KeyCPUCount)
	switch {
	case err != nil:
		results = append(results, missingKey(e.rb, measurement.KeyCPUCount))
	case cores < e.cfg.MinCPUCores:
		results = append(results, e.rb.Resultf("Not enough CPU cores", 0,
			"The target has %d CPU cores, fewer than the minimum of %d.", cores, e.cfg.MinCPUCores))
	default:
		results = append(results, e.rb.Resultf("Enough CPU cores", evaluator.MaxScore,
			"The target has %d CPU cores, at least the minimum of %d.", cores, e.cfg.MinCPUCores))
	}

	// memory_total is reported in KB.
	memKB, err := target.GetInt64(measurement.KeyMemoryTotal)
	switch {
	case err != nil:
		results = append(results, missingKey(e.rb, measurement.KeyMemoryTotal))
	case memKB/(1000*1000) < e.cfg.MinRAMGB:
		results = append(results, e.rb.Resultf("Not enough memory", 0,
			"The target has %dGB of RAM, less than the minimum of %dGB.", memKB/(1000*1000), e.cfg.MinRAMGB))
	default:
		results = append(results, e.rb.Resultf("Enough memory", evaluator.MaxScore,
			"The target has %dGB of RAM, at least the minimum of %dGB.", memKB/(1000*1000), e.cfg.MinRAMGB))
	}

	return results, nil
}
