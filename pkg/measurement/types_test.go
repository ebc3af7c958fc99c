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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseType(t *testing.T) {
	mt, ok := ParseType("SystemInformation")
	assert.True(t, ok)
	assert.Equal(t, TypeSystemInformation, mt)

	_, ok = ParseType("GPU")
	assert.False(t, ok)
}

func TestToReading(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 3, 3},
		{"int64", int64(3), int64(3)},
		{"uint64", uint64(3), uint64(3)},
		{"float", 1.5, 1.5},
		{"bool", true, true},
		{"string", "x", "x"},
		{"other", []int{1}, "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToReading(tt.in).Any())
		})
	}
}

func TestSubtypeJSONRoundTrip(t *testing.T) {
	in := Measurement{
		Type: TypeSystemInformation,
		Subtypes: []Subtype{
			FromStrings(SubtypeNode, map[string]string{KeyCPUCount: "8"}),
			NewSubtypeBuilder(SubtypeSystemd).SetBool("enabled", true).Build(),
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cpu_count":"8"`)

	var out Measurement
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "8", out.GetSubtype(SubtypeNode).Get(KeyCPUCount).Any())
	assert.Equal(t, true, out.GetSubtype(SubtypeSystemd).Get("enabled").Any())
}

func TestSubtypeYAMLDecode(t *testing.T) {
	doc := `
type: SystemInformation
subtypes:
  - subtype: node
    data:
      cpu_count: 16
      build_commit_hash: abc
`
	var m Measurement
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	st := m.GetSubtype(SubtypeNode)
	require.NotNil(t, st)

	n, err := st.GetInt64(KeyCPUCount)
	require.NoError(t, err)
	assert.EqualValues(t, 16, n)
}

func TestMeasurementValidate(t *testing.T) {
	assert.Error(t, (&Measurement{}).Validate())
	assert.Error(t, (&Measurement{Type: TypeSystemInformation}).Validate())
	assert.Error(t, (&Measurement{
		Type:     TypeSystemInformation,
		Subtypes: []Subtype{{Name: SubtypeNode}},
	}).Validate())
	assert.NoError(t, (&Measurement{
		Type:     TypeSystemInformation,
		Subtypes: []Subtype{FromStrings(SubtypeNode, map[string]string{"a": "b"})},
	}).Validate())
}

func TestGetSubtypeNilMeasurement(t *testing.T) {
	var m *Measurement
	assert.Nil(t, m.GetSubtype(SubtypeNode))
	assert.False(t, m.HasSubtype(SubtypeNode))
}

func TestMerge(t *testing.T) {
	m := NewMeasurement(TypeSystemInformation).
		WithSubtype(FromStrings(SubtypeNode, map[string]string{"a": "1", "b": "2"})).
		Build()
	other := NewMeasurement(TypeSystemInformation).
		WithSubtype(FromStrings(SubtypeNode, map[string]string{"b": "3"})).
		WithSubtype(FromStrings(SubtypeK8s, map[string]string{"node_name": "n1"})).
		Build()

	require.NoError(t, m.Merge(other))
	assert.Equal(t, []string{SubtypeNode, SubtypeK8s}, m.SubtypeNames())
	v, _ := m.GetSubtype(SubtypeNode).GetString("b")
	assert.Equal(t, "3", v)

	assert.NoError(t, m.Merge(nil))
	assert.Error(t, m.Merge(&Measurement{Type: "Other"}))
}

func TestSubtypeGetters(t *testing.T) {
	st := NewSubtypeBuilder(SubtypeNode).
		SetString("s", "hello").
		SetString("num", " 42 ").
		SetString("float", "1.5").
		SetString("flag", "true").
		SetInt64("i", 7).
		Set("f", Float64(2)).
		Build()

	s, err := st.GetString("s")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	is, err := st.GetString("i")
	require.NoError(t, err)
	assert.Equal(t, "7", is)

	n, err := st.GetInt64("num")
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	n, err = st.GetInt64("f")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = st.GetInt64("float")
	assert.Error(t, err)

	f, err := st.GetFloat64("float")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0)

	b, err := st.GetBool("flag")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = st.GetBool("s")
	assert.Error(t, err)

	_, err = st.GetString("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"f", "flag", "float", "i", "num", "s"}, st.Keys())
}
