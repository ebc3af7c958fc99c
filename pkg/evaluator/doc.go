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

// Package evaluator defines what an evaluator is, the inputs evaluators are
// given and the findings they produce.
//
// # Findings
//
// Every evaluator returns zero or more Result values. A Result carries a
// headline, a score between 0 and MaxScore, an explanation and the name of
// the evaluator that produced it. A Summary aggregates the results of a run:
//
//	summary := evaluator.NewSummary(results)
//	fmt.Println(summary.SummaryScore, summary.SummaryExplanation)
//
// # Inputs
//
// Evaluators are grouped by the input they need:
//
//   - DirectInput: the baseline identity and the target address, for
//     evaluators that talk to the target themselves (identity, TPS, latency)
//   - MetricsInput: two metrics snapshots from each side
//   - SystemInformationInput: system information from each side
//
// # Variants
//
// Type is a closed set of evaluator variants, one per input shape plus the
// two direct variants that have special scheduling (TPS runs inside the
// metrics sampling window). Build them with the constructors:
//
//	evaluators := []evaluator.Type{
//	    evaluator.Metrics(stateSync),
//	    evaluator.SystemInformation(build),
//	    evaluator.Tps(tps),
//	    evaluator.Latency(latency),
//	}
package evaluator
