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

package metrics

import (
	"sort"

	dto "github.com/prometheus/client_model/go"
)

// Snapshot is one parsed metrics scrape of a single node.
type Snapshot struct {
	families map[string]*dto.MetricFamily
}

// NewSnapshot wraps parsed families. The map is owned by the snapshot.
func NewSnapshot(families map[string]*dto.MetricFamily) *Snapshot {
	if families == nil {
		families = map[string]*dto.MetricFamily{}
	}
	return &Snapshot{families: families}
}

// Len returns the number of metric families.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.families)
}

// Names returns the sorted family names.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.families))
	for n := range s.families {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Family returns the family with the given name, or nil.
func (s *Snapshot) Family(name string) *dto.MetricFamily {
	if s == nil {
		return nil
	}
	return s.families[name]
}

// Value returns the value of the first sample of name whose labels include
// all of the given labels. Counters, gauges and untyped samples are
// supported; for histograms and summaries the sample count is returned.
func (s *Snapshot) Value(name string, labels map[string]string) (float64, bool) {
	fam := s.Family(name)
	if fam == nil {
		return 0, false
	}
	for _, m := range fam.GetMetric() {
		if matchLabels(m, labels) {
			return sampleValue(fam.GetType(), m), true
		}
	}
	return 0, false
}

// Sum adds the values of every sample of name matching labels. The boolean
// is false when no sample matched.
func (s *Snapshot) Sum(name string, labels map[string]string) (float64, bool) {
	fam := s.Family(name)
	if fam == nil {
		return 0, false
	}
	var (
		total float64
		found bool
	)
	for _, m := range fam.GetMetric() {
		if matchLabels(m, labels) {
			total += sampleValue(fam.GetType(), m)
			found = true
		}
	}
	return total, found
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	if len(want) == 0 {
		return true
	}
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok {
			if v != lp.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}

func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM, dto.MetricType_GAUGE_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	case dto.MetricType_SUMMARY:
		return float64(m.GetSummary().GetSampleCount())
	default:
		return m.GetUntyped().GetValue()
	}
}
