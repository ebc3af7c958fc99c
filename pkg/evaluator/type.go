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

// Type is one configured evaluator together with the kind of input it
// needs. The set of variants is closed: MetricsType, SystemInformationType,
// TpsType and LatencyType.
type Type interface {
	// Name returns the wrapped evaluator's name.
	Name() string

	isType()
}

// MetricsType wraps an evaluator of metrics snapshots.
type MetricsType struct {
	Evaluator MetricsEvaluator
}

// SystemInformationType wraps an evaluator of system information.
type SystemInformationType struct {
	Evaluator SystemInformationEvaluator
}

// TpsType wraps the throughput evaluator. It runs inside the metrics
// sampling window.
type TpsType struct {
	Evaluator DirectEvaluator
}

// LatencyType wraps the API latency evaluator.
type LatencyType struct {
	Evaluator DirectEvaluator
}

func (MetricsType) isType()           {}
func (SystemInformationType) isType() {}
func (TpsType) isType()               {}
func (LatencyType) isType()           {}

func (t MetricsType) Name() string           { return t.Evaluator.Name() }
func (t SystemInformationType) Name() string { return t.Evaluator.Name() }
func (t TpsType) Name() string               { return t.Evaluator.Name() }
func (t LatencyType) Name() string           { return t.Evaluator.Name() }

// Metrics wraps e as a MetricsType.
func Metrics(e MetricsEvaluator) Type { return MetricsType{Evaluator: e} }

// SystemInformation wraps e as a SystemInformationType.
func SystemInformation(e SystemInformationEvaluator) Type {
	return SystemInformationType{Evaluator: e}
}

// Tps wraps e as a TpsType.
func Tps(e DirectEvaluator) Type { return TpsType{Evaluator: e} }

// Latency wraps e as a LatencyType.
func Latency(e DirectEvaluator) Type { return LatencyType{Evaluator: e} }

// FindTps returns the first TpsType in types.
func FindTps(types []Type) (TpsType, bool) {
	for _, t := range types {
		if tps, ok := t.(TpsType); ok {
			return tps, true
		}
	}
	return TpsType{}, false
}
