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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sysinfo(subtypes ...Subtype) Measurement {
	return Measurement{Type: TypeSystemInformation, Subtypes: subtypes}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		baseline Measurement
		target   Measurement
		want     []string
		wantErr  bool
	}{
		{
			name:     "different types",
			baseline: sysinfo(),
			target:   Measurement{Type: "Other"},
			wantErr:  true,
		},
		{
			name:     "identical",
			baseline: sysinfo(FromStrings(SubtypeNode, map[string]string{"a": "1"})),
			target:   sysinfo(FromStrings(SubtypeNode, map[string]string{"a": "1"})),
			want:     nil,
		},
		{
			name:     "string and number compare by value",
			baseline: sysinfo(FromStrings(SubtypeNode, map[string]string{"cpu_count": "8"})),
			target:   sysinfo(NewSubtypeBuilder(SubtypeNode).Set("cpu_count", Int(8)).Build()),
			want:     nil,
		},
		{
			name:     "changed value",
			baseline: sysinfo(FromStrings(SubtypeNode, map[string]string{"a": "1", "b": "2"})),
			target:   sysinfo(FromStrings(SubtypeNode, map[string]string{"a": "1", "b": "3"})),
			want:     []string{"node.b: 2 -> 3"},
		},
		{
			name:     "missing on either side",
			baseline: sysinfo(FromStrings(SubtypeNode, map[string]string{"a": "1"})),
			target:   sysinfo(FromStrings(SubtypeNode, map[string]string{"b": "2"})),
			want:     []string{"node.a: 1 -> <missing>", "node.b: <missing> -> 2"},
		},
		{
			name: "subtype present on one side",
			baseline: sysinfo(
				FromStrings(SubtypeNode, map[string]string{"a": "1"}),
				FromStrings(SubtypeKernel, map[string]string{"osrelease": "6.1"}),
			),
			target: sysinfo(
				FromStrings(SubtypeNode, map[string]string{"a": "1"}),
				FromStrings(SubtypeK8s, map[string]string{"node_name": "n1"}),
			),
			want: []string{"k8s.node_name: <missing> -> n1", "kernel.osrelease: 6.1 -> <missing>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drifts, err := Compare(tt.baseline, tt.target)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var got []string
			for _, d := range drifts {
				got = append(got, d.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareSubtypeBothNil(t *testing.T) {
	assert.Empty(t, CompareSubtype(nil, nil))
}
