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
	"fmt"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

// Parser converts the raw lines of one scrape into a Snapshot.
type Parser interface {
	Parse(lines []string) (*Snapshot, error)
}

// TextParser parses the Prometheus text exposition format.
type TextParser struct{}

// NewTextParser returns a parser for the Prometheus text format.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse implements Parser. No lines yields an empty snapshot.
func (TextParser) Parse(lines []string) (*Snapshot, error) {
	if len(lines) == 0 {
		return NewSnapshot(nil), nil
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	p := expfmt.NewTextParser(model.UTF8Validation)
	families, err := p.TextToMetricFamilies(strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse metrics text: %w", err)
	}
	return NewSnapshot(families), nil
}

// ParseLines parses lines with the default text parser.
func ParseLines(lines []string) (*Snapshot, error) {
	return NewTextParser().Parse(lines)
}
