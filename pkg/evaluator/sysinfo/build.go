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
	"github.com/NVIDIA/node-checker/pkg/version"
)

// BuildVersionEvaluator compares the build of the target with the baseline.
// The same commit scores 100, the same major.minor release scores 75.
type BuildVersionEvaluator struct {
	rb evaluator.ResultBuilder
}

// NewBuildVersionEvaluator returns a BuildVersionEvaluator.
func NewBuildVersionEvaluator() *BuildVersionEvaluator {
	return &BuildVersionEvaluator{rb: evaluator.NewResultBuilder(BuildVersionName, categorySystem)}
}

// Name implements evaluator.Evaluator.
func (e *BuildVersionEvaluator) Name() string { return BuildVersionName }

// Evaluate implements evaluator.Evaluator.
func (e *BuildVersionEvaluator) Evaluate(_ context.Context, in *evaluator.SystemInformationInput) ([]evaluator.Result, error) {
	base, target, err := nodeSubtypes(in)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.Has(measurement.KeyBuildCommitHash) {
		return []evaluator.Result{missingKey(e.rb, measurement.KeyBuildCommitHash)}, nil
	}

	baseHash, err := base.GetString(measurement.KeyBuildCommitHash)
	if err != nil {
		return nil, err
	}
	targetHash, _ := target.GetString(measurement.KeyBuildCommitHash)
	if baseHash == targetHash {
		return []evaluator.Result{e.rb.Resultf("Build commit hash matches", evaluator.MaxScore,
			"The target runs commit %s, the same as the baseline.", targetHash)}, nil
	}

	baseVer, berr := parseBuildVersion(base)
	targetVer, terr := parseBuildVersion(target)
	if berr == nil && terr == nil && baseVer.SameMinor(targetVer) {
		return []evaluator.Result{e.rb.Resultf("Build is on the same release", 75,
			"The target runs commit %s of release %s while the baseline runs commit %s of release %s. "+
				"Both are on the same minor release; consider upgrading to the baseline build.",
			targetHash, targetVer, baseHash, baseVer)}, nil
	}

	return []evaluator.Result{e.rb.Resultf("Build commit hash mismatch", 0,
		"The target runs commit %s but the baseline runs %s. Update the node to the baseline build.",
		targetHash, baseHash)}, nil
}

func parseBuildVersion(st *measurement.Subtype) (version.Version, error) {
	s, err := st.GetString(measurement.KeyBuildPkgVersion)
	if err != nil {
		return version.Version{}, err
	}
	return version.ParseVersion(s)
}
