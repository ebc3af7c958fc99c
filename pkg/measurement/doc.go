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

// Package measurement provides the typed key/value model used for node
// system information, plus comparison and filtering helpers.
//
// # Core Types
//
//   - Type: measurement category (SystemInformation)
//   - Measurement: a Type and a list of named Subtypes
//   - Subtype: named readings, e.g. "node" as reported by the node itself,
//     "k8s" from the Kubernetes Node object, "release" and "kernel" from the
//     host, "systemd" for unit state
//   - Reading: type-safe scalar value (int, float64, string, bool)
//
// # Creating Measurements
//
//	m := NewMeasurement(TypeSystemInformation).
//	    WithSubtype(FromStrings(SubtypeNode, map[string]string{
//	        KeyCPUCount:    "16",
//	        KeyMemoryTotal: "65536000",
//	    })).
//	    Build()
//
// # Accessing Data
//
// Node endpoints report every value as a string, so numeric getters also
// parse strings:
//
//	cores, err := m.GetSubtype(SubtypeNode).GetInt64(KeyCPUCount)
//
// # Comparing Measurements
//
//	drifts, err := Compare(*baseline, *target)
//	for _, d := range drifts {
//	    fmt.Println(d) // node.build_commit_hash: abc -> def
//	}
//
// # Filtering Data
//
//	kept := FilterOut(st.Data, []string{"*_timestamp", "memory_available"})
package measurement
