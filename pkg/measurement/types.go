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
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys reported by the node's system information endpoint.
const (
	KeyBuildCommitHash = "build_commit_hash"
	KeyBuildPkgVersion = "build_pkg_version"
	KeyBuildBranch     = "build_branch"
	KeyCPUCount        = "cpu_count"
	KeyMemoryTotal     = "memory_total"
	KeyMemoryAvailable = "memory_available"
	KeyKernelVersion   = "kernel_version"
	KeyOSVersion       = "os_version"
)

// Keys added by the Kubernetes enricher.
const (
	KeyK8sNodeName         = "node_name"
	KeyK8sKubeletVersion   = "kubelet_version"
	KeyK8sContainerRuntime = "container_runtime"
	KeyK8sOSImage          = "os_image"
	KeyK8sKernelVersion    = "kernel_version"
	KeyK8sArchitecture     = "architecture"
	KeyK8sProvider         = "provider"
	KeyK8sRole             = "role"
)

// Keys added by the host collector.
const (
	KeyReleaseID      = "ID"
	KeyReleaseVersion = "VERSION_ID"
	KeyKernelRelease  = "osrelease"
	KeyUnitActive     = "active_state"
	KeyUnitSub        = "sub_state"
	KeyUnitLoad       = "load_state"
)

// Type represents the category of a measurement.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	// TypeSystemInformation groups everything known about a node's host,
	// build and runtime environment.
	TypeSystemInformation Type = "SystemInformation"
)

// Subtype names of a system information measurement.
const (
	SubtypeNode    = "node"
	SubtypeK8s     = "k8s"
	SubtypeRelease = "release"
	SubtypeKernel  = "kernel"
	SubtypeCmdline = "cmdline"
	SubtypeSystemd = "systemd"
	SubtypeSysctl  = "sysctl"
)

// Types is the list of all supported measurement types.
var Types = []Type{
	TypeSystemInformation,
}

// ParseType parses a string into a measurement Type.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// Measurement is collected data of one Type split into named subtypes.
type Measurement struct {
	Type     Type      `json:"type" yaml:"type"`
	Subtypes []Subtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Subtype is a named set of readings. Context carries metadata about where
// the readings came from and never takes part in comparisons.
type Subtype struct {
	Name    string             `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Data    map[string]Reading `json:"data" yaml:"data"`
	Context map[string]string  `json:"context,omitempty" yaml:"context,omitempty"`
}

type rawSubtype struct {
	Name    string            `json:"subtype" yaml:"subtype"`
	Data    map[string]any    `json:"data" yaml:"data"`
	Context map[string]string `json:"context" yaml:"context"`
}

func (st *Subtype) fromRaw(raw rawSubtype) {
	st.Name = raw.Name
	st.Context = raw.Context
	st.Data = make(map[string]Reading, len(raw.Data))
	for k, v := range raw.Data {
		st.Data[k] = ToReading(v)
	}
}

// UnmarshalJSON decodes readings into their concrete scalar types.
func (st *Subtype) UnmarshalJSON(data []byte) error {
	var raw rawSubtype
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st.fromRaw(raw)
	return nil
}

// UnmarshalYAML decodes readings into their concrete scalar types.
func (st *Subtype) UnmarshalYAML(node *yaml.Node) error {
	var raw rawSubtype
	if err := node.Decode(&raw); err != nil {
		return err
	}
	st.fromRaw(raw)
	return nil
}

// AllowedScalar is the compile-time set of reading value types.
type AllowedScalar interface {
	~int | ~int64 | ~uint64 | ~float64 | ~bool | ~string
}

// Reading is a single scalar value stored in a Subtype.
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON emits the bare scalar.
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML emits the bare scalar.
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// UnmarshalJSON unmarshals a JSON value into the underlying scalar.
func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.V)
}

// UnmarshalYAML unmarshals a YAML value into the underlying scalar.
func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// ToReading creates a Reading from a decoded value. Values of other types are
// stored as their string form.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case uint64:
		return Uint64(val)
	case float64:
		return Float64(val)
	case bool:
		return Bool(val)
	case string:
		return Str(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Reading         { return &Scalar[int]{V: v} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Uint64(v uint64) Reading   { return &Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return &Scalar[bool]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// FromStrings builds a subtype from a flat string map, the shape node
// endpoints report system information in.
func FromStrings(name string, values map[string]string) Subtype {
	st := Subtype{Name: name, Data: make(map[string]Reading, len(values))}
	for k, v := range values {
		st.Data[k] = Str(v)
	}
	return st
}

// Validate checks if the measurement is properly formed.
func (m *Measurement) Validate() error {
	if m.Type == "" {
		return errors.New("measurement type cannot be empty")
	}
	if len(m.Subtypes) == 0 {
		return errors.New("measurement must have at least one subtype")
	}
	for i, st := range m.Subtypes {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("subtype[%d] %q: %w", i, st.Name, err)
		}
	}
	return nil
}

// GetSubtype retrieves a subtype by name, returning nil if not found.
func (m *Measurement) GetSubtype(name string) *Subtype {
	if m == nil {
		return nil
	}
	for i := range m.Subtypes {
		if m.Subtypes[i].Name == name {
			return &m.Subtypes[i]
		}
	}
	return nil
}

// HasSubtype checks if a subtype with the given name exists.
func (m *Measurement) HasSubtype(name string) bool {
	return m.GetSubtype(name) != nil
}

// SubtypeNames returns all subtype names in insertion order.
func (m *Measurement) SubtypeNames() []string {
	names := make([]string, len(m.Subtypes))
	for i, st := range m.Subtypes {
		names[i] = st.Name
	}
	return names
}

// Merge adds subtypes of other into m. Readings of a subtype present in both
// are merged with other taking precedence.
func (m *Measurement) Merge(other *Measurement) error {
	if other == nil {
		return nil
	}
	if m.Type != other.Type {
		return fmt.Errorf("cannot merge measurements of different types: %s and %s", m.Type, other.Type)
	}
	for _, ost := range other.Subtypes {
		st := m.GetSubtype(ost.Name)
		if st == nil {
			m.Subtypes = append(m.Subtypes, Subtype{
				Name:    ost.Name,
				Data:    copyReadings(ost.Data),
				Context: ost.Context,
			})
			continue
		}
		if st.Data == nil {
			st.Data = make(map[string]Reading, len(ost.Data))
		}
		for key, value := range ost.Data {
			st.Data[key] = value
		}
	}
	return nil
}

func copyReadings(src map[string]Reading) map[string]Reading {
	dst := make(map[string]Reading, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Validate checks if the subtype is properly formed.
func (st *Subtype) Validate() error {
	if len(st.Data) == 0 {
		return errors.New("subtype data cannot be empty")
	}
	return nil
}

// Has checks if a key exists in the subtype data.
func (st *Subtype) Has(key string) bool {
	_, exists := st.Data[key]
	return exists
}

// Get retrieves a reading by key, returning nil if not found.
func (st *Subtype) Get(key string) Reading {
	return st.Data[key]
}

// Keys returns all keys in the subtype data, sorted.
func (st *Subtype) Keys() []string {
	keys := make([]string, 0, len(st.Data))
	for k := range st.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the string form of a reading. Non-string readings are
// formatted rather than rejected.
func (st *Subtype) GetString(key string) (string, error) {
	reading := st.Data[key]
	if reading == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	if v, ok := reading.Any().(string); ok {
		return v, nil
	}
	return reading.String(), nil
}

// GetInt64 returns an integer reading. String readings holding a base 10
// integer are accepted since node endpoints report every value as a string.
func (st *Subtype) GetInt64(key string) (int64, error) {
	reading := st.Data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	switch v := reading.Any().(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("key %q is not an integer: %v", key, v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("key %q is not an integer: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("key %q is not an integer", key)
	}
}

// GetFloat64 returns a numeric reading as float64, parsing strings.
func (st *Subtype) GetFloat64(key string) (float64, error) {
	reading := st.Data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	switch v := reading.Any().(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("key %q is not a number: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("key %q is not a number", key)
	}
}

// GetBool returns a boolean reading, parsing strings with strconv.ParseBool.
func (st *Subtype) GetBool(key string) (bool, error) {
	reading := st.Data[key]
	if reading == nil {
		return false, fmt.Errorf("key %q not found", key)
	}
	switch v := reading.Any().(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("key %q is not a bool: %w", key, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("key %q is not a bool", key)
	}
}
