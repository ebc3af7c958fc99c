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

package runner

import (
	"errors"
	"fmt"
)

// Stage identifies the step of a run that failed.
type Stage string

const (
	StageNodeIdentity               Stage = "node_identity"
	StageCollectMetrics             Stage = "collect_metrics"
	StageCollectSystemInformation   Stage = "collect_system_information"
	StageParseMetrics               Stage = "parse_metrics"
	StageTpsEvaluator               Stage = "tps_evaluator"
	StageMetricsEvaluator           Stage = "metrics_evaluator"
	StageSystemInformationEvaluator Stage = "system_information_evaluator"
	StageLatencyEvaluator           Stage = "latency_evaluator"
	StageUnknownEvaluator           Stage = "unknown_evaluator"
)

// Error is returned by Run for every failure. Err carries the cause.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of the first *Error in err's chain.
func StageOf(err error) (Stage, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Stage, true
	}
	return "", false
}

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{Stage: stage, Err: err}
}
