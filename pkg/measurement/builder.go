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

// SubtypeBuilder provides a fluent API for building Subtype instances.
type SubtypeBuilder struct {
	st Subtype
}

// NewSubtypeBuilder creates a new SubtypeBuilder with the given name.
func NewSubtypeBuilder(name string) *SubtypeBuilder {
	return &SubtypeBuilder{st: Subtype{Name: name, Data: make(map[string]Reading)}}
}

// Set adds or updates a reading.
func (b *SubtypeBuilder) Set(key string, value Reading) *SubtypeBuilder {
	b.st.Data[key] = value
	return b
}

// SetString adds a string reading. Empty values are skipped.
func (b *SubtypeBuilder) SetString(key, value string) *SubtypeBuilder {
	if value != "" {
		b.st.Data[key] = Str(value)
	}
	return b
}

// SetInt64 adds an integer reading.
func (b *SubtypeBuilder) SetInt64(key string, value int64) *SubtypeBuilder {
	b.st.Data[key] = Int64(value)
	return b
}

// SetBool adds a boolean reading.
func (b *SubtypeBuilder) SetBool(key string, value bool) *SubtypeBuilder {
	b.st.Data[key] = Bool(value)
	return b
}

// SetContext records where the readings came from.
func (b *SubtypeBuilder) SetContext(key, value string) *SubtypeBuilder {
	if b.st.Context == nil {
		b.st.Context = make(map[string]string)
	}
	b.st.Context[key] = value
	return b
}

// Build returns the Subtype.
func (b *SubtypeBuilder) Build() Subtype {
	return b.st
}

// MeasurementBuilder provides a fluent API for building Measurement instances.
type MeasurementBuilder struct {
	m Measurement
}

// NewMeasurement creates a new MeasurementBuilder with the given type.
func NewMeasurement(t Type) *MeasurementBuilder {
	return &MeasurementBuilder{m: Measurement{Type: t}}
}

// WithSubtype adds a subtype to the measurement. Empty subtypes are dropped
// so that optional sources never produce invalid measurements.
func (b *MeasurementBuilder) WithSubtype(st Subtype) *MeasurementBuilder {
	if len(st.Data) > 0 {
		b.m.Subtypes = append(b.m.Subtypes, st)
	}
	return b
}

// WithSubtypes adds each subtype in order.
func (b *MeasurementBuilder) WithSubtypes(sts ...Subtype) *MeasurementBuilder {
	for _, st := range sts {
		b.WithSubtype(st)
	}
	return b
}

// WithSubtypeBuilder adds a subtype using a SubtypeBuilder.
func (b *MeasurementBuilder) WithSubtypeBuilder(sb *SubtypeBuilder) *MeasurementBuilder {
	return b.WithSubtype(sb.Build())
}

// Build returns the Measurement.
func (b *MeasurementBuilder) Build() *Measurement {
	m := b.m
	return &m
}
