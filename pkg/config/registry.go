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

package config

import (
	"sort"

	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/evaluator/direct"
	"github.com/NVIDIA/node-checker/pkg/evaluator/metrics"
	"github.com/NVIDIA/node-checker/pkg/evaluator/sysinfo"
)

type evaluatorBuilder func(args EvaluatorArgs, deps Dependencies) (evaluator.Type, error)

var registry = map[string]evaluatorBuilder{
	metrics.StateSyncVersionName: func(args EvaluatorArgs, _ Dependencies) (evaluator.Type, error) {
		return evaluator.Metrics(metrics.NewStateSyncVersionEvaluator(args.StateSyncVersion)), nil
	},
	metrics.ConsensusProposalsName: func(EvaluatorArgs, Dependencies) (evaluator.Type, error) {
		return evaluator.Metrics(metrics.NewConsensusProposalsEvaluator()), nil
	},
	metrics.NetworkPeersName: func(args EvaluatorArgs, _ Dependencies) (evaluator.Type, error) {
		return evaluator.Metrics(metrics.NewNetworkPeersEvaluator(args.NetworkPeers)), nil
	},
	sysinfo.BuildVersionName: func(EvaluatorArgs, Dependencies) (evaluator.Type, error) {
		return evaluator.SystemInformation(sysinfo.NewBuildVersionEvaluator()), nil
	},
	sysinfo.HardwareName: func(args EvaluatorArgs, _ Dependencies) (evaluator.Type, error) {
		return evaluator.SystemInformation(sysinfo.NewHardwareEvaluator(args.Hardware)), nil
	},
	sysinfo.ConsistencyName: func(args EvaluatorArgs, _ Dependencies) (evaluator.Type, error) {
		return evaluator.SystemInformation(sysinfo.NewConsistencyEvaluator(args.Consistency)), nil
	},
	direct.LatencyName: func(args EvaluatorArgs, deps Dependencies) (evaluator.Type, error) {
		e, err := direct.NewLatencyEvaluator(deps.API, args.Latency)
		if err != nil {
			return nil, err
		}
		return evaluator.Latency(e), nil
	},
	direct.TpsName: func(args EvaluatorArgs, deps Dependencies) (evaluator.Type, error) {
		e, err := direct.NewTpsEvaluator(deps.API, args.Tps, deps.Clock)
		if err != nil {
			return nil, err
		}
		return evaluator.Tps(e), nil
	},
}

// EvaluatorNames returns the names accepted in a configuration's
// evaluators list, sorted.
func EvaluatorNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownEvaluator reports whether name can be used in a configuration.
func IsKnownEvaluator(name string) bool {
	_, ok := registry[name]
	return ok
}
