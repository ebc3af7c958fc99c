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
	"fmt"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// Evaluator names.
const (
	BuildVersionName = "build_version"
	HardwareName     = "hardware"
	ConsistencyName  = "system_consistency"
)

const categorySystem = "system_information"

// nodeSubtypes returns the "node" subtype of both sides. The baseline must
// have one; a missing target subtype is returned as nil.
func nodeSubtypes(in *evaluator.SystemInformationInput) (*measurement.Subtype, *measurement.Subtype, error) {
	if in == nil || in.BaselineSystemInformation == nil || in.TargetSystemInformation == nil {
		return nil, nil, fmt.Errorf("system information input is incomplete")
	}
	base := in.BaselineSystemInformation.GetSubtype(measurement.SubtypeNode)
	if base == nil {
		return nil, nil, fmt.Errorf("baseline system information has no %q subtype", measurement.SubtypeNode)
	}
	return base, in.TargetSystemInformation.GetSubtype(measurement.SubtypeNode), nil
}

func missingKey(rb evaluator.ResultBuilder, key string) evaluator.Result {
	return rb.Resultf(fmt.Sprintf("System information %s missing", key), 0,
		"The target did not report %s in its system information.", key)
}
