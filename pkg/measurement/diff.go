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

package measurement

import (
	"fmt"
	"reflect"
	"sort"
)

// Drift describes one reading that differs between two measurements.
// Baseline or Target is nil when the key exists on one side only.
type Drift struct {
	Subtype  string  `json:"subtype" yaml:"subtype"`
	Key      string  `json:"key" yaml:"key"`
	Baseline Reading `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Target   Reading `json:"target,omitempty" yaml:"target,omitempty"`
}

// String renders the drift as subtype.key: baseline -> target.
func (d Drift) String() string {
	return fmt.Sprintf("%s.%s: %s -> %s", d.Subtype, d.Key, readingString(d.Baseline), readingString(d.Target))
}

func readingString(r Reading) string {
	if r == nil {
		return "<missing>"
	}
	return r.String()
}

// Compare returns every reading that differs between baseline and target,
// including keys and subtypes present on one side only. Readings are
// compared by their string form so that "8" and 8 are equal. The result is
// sorted by subtype then key.
func Compare(baseline, target Measurement) ([]Drift, error) {
	if baseline.Type != target.Type {
		return nil, fmt.Errorf("cannot compare different measurement types: %q (%d subtypes) vs %q (%d subtypes)",
			baseline.Type, len(baseline.Subtypes), target.Type, len(target.Subtypes))
	}

	var drifts []Drift
	seen := make(map[string]bool, len(baseline.Subtypes))

	for i := range baseline.Subtypes {
		bst := &baseline.Subtypes[i]
		seen[bst.Name] = true
		drifts = append(drifts, CompareSubtype(bst, target.GetSubtype(bst.Name))...)
	}
	for i := range target.Subtypes {
		tst := &target.Subtypes[i]
		if !seen[tst.Name] {
			drifts = append(drifts, CompareSubtype(nil, tst)...)
		}
	}

	sort.Slice(drifts, func(i, j int) bool {
		if drifts[i].Subtype != drifts[j].Subtype {
			return drifts[i].Subtype < drifts[j].Subtype
		}
		return drifts[i].Key < drifts[j].Key
	})
	return drifts, nil
}

// CompareSubtype compares the readings of two subtypes with the same name.
// Either side may be nil.
func CompareSubtype(baseline, target *Subtype) []Drift {
	var name string
	var bdata, tdata map[string]Reading
	if baseline != nil {
		name, bdata = baseline.Name, baseline.Data
	}
	if target != nil {
		name, tdata = target.Name, target.Data
	}

	var drifts []Drift
	for key, bv := range bdata {
		tv, ok := tdata[key]
		if !ok {
			drifts = append(drifts, Drift{Subtype: name, Key: key, Baseline: bv})
			continue
		}
		if !sameReading(bv, tv) {
			drifts = append(drifts, Drift{Subtype: name, Key: key, Baseline: bv, Target: tv})
		}
	}
	for key, tv := range tdata {
		if _, ok := bdata[key]; !ok {
			drifts = append(drifts, Drift{Subtype: name, Key: key, Target: tv})
		}
	}
	return drifts
}

func sameReading(a, b Reading) bool {
	if reflect.DeepEqual(a.Any(), b.Any()) {
		return true
	}
	return a.String() == b.String()
}
