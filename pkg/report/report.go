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
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/evaluator/direct"
	"github.com/NVIDIA/node-checker/pkg/header"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/runner"
)

// APIVersion is the apiVersion of CheckReport documents.
const APIVersion = "nodecheck.nvidia.com/v1"

// Status is the overall outcome of a check.
type Status string

const (
	// StatusPass indicates every result reached the maximum score.
	StatusPass Status = "pass"

	// StatusFail indicates one or more results scored below the maximum.
	StatusFail Status = "fail"

	// StatusIdentityMismatch indicates the target is not the kind of node
	// the baseline is; nothing else was evaluated.
	StatusIdentityMismatch Status = "identity_mismatch"

	// StatusError indicates the run failed before producing a summary.
	StatusError Status = "error"
)

// Report is the document written for one check of a target against a
// baseline configuration.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID uniquely identifies this check.
	RunID string `json:"run_id" yaml:"run_id"`

	// Configuration is the baseline the target was checked against.
	Configuration Configuration `json:"configuration" yaml:"configuration"`

	// Target is the node that was checked.
	Target node.Address `json:"target" yaml:"target"`

	// Status is the overall outcome.
	Status Status `json:"status" yaml:"status"`

	// Counts tallies the results.
	Counts Counts `json:"counts" yaml:"counts"`

	// Summary holds the results. It is nil when Status is StatusError.
	Summary *evaluator.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Error describes why the run failed.
	Error *RunError `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Configuration identifies a baseline configuration.
type Configuration struct {
	Name       string           `json:"name" yaml:"name"`
	PrettyName string           `json:"pretty_name,omitempty" yaml:"pretty_name,omitempty"`
	Baseline   node.Information `json:"baseline" yaml:"baseline"`
	Evaluators []string         `json:"evaluators" yaml:"evaluators"`
}

// Counts tallies results by outcome.
type Counts struct {
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
	Total  int `json:"total" yaml:"total"`
}

// RunError is a failed run: the stage that failed and why.
type RunError struct {
	Stage   string `json:"stage,omitempty" yaml:"stage,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// New returns a Report for a finished run. Exactly one of summary and
// runErr is expected to be set; runErr wins when both are.
func New(cfg Configuration, target node.Address, summary *evaluator.Summary, runErr error, version string, started, finished time.Time) *Report {
	r := &Report{
		RunID:         uuid.NewString(),
		Configuration: cfg,
		Target:        target,
		Duration:      finished.Sub(started),
	}
	r.InitAt(header.KindCheckReport, APIVersion, version, finished)

	if runErr != nil {
		r.Status = StatusError
		r.Error = &RunError{Message: runErr.Error()}
		if stage, ok := runner.StageOf(runErr); ok {
			r.Error.Stage = string(stage)
		}
		return r
	}

	r.Summary = summary
	r.Status = statusOf(summary)
	if summary != nil {
		r.Counts.Total = len(summary.EvaluationResults)
		r.Counts.Failed = len(summary.Failed())
		r.Counts.Passed = r.Counts.Total - r.Counts.Failed
	}
	return r
}

// statusOf classifies a summary. A summary made only of node identity
// results with one below the maximum is an identity mismatch.
func statusOf(s *evaluator.Summary) Status {
	if s == nil {
		return StatusError
	}
	if s.Passed() {
		return StatusPass
	}
	for _, r := range s.EvaluationResults {
		if r.EvaluatorName != direct.NodeIdentityName {
			return StatusFail
		}
	}
	return StatusIdentityMismatch
}

// Passed reports whether the check passed.
func (r *Report) Passed() bool {
	return r.Status == StatusPass
}
