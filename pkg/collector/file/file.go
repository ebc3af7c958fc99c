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

package file

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSize is the largest file a Parser reads unless overridden.
const DefaultMaxSize = 1 << 20

// Option configures a Parser.
type Option func(*Parser)

// Parser reads small text files such as os-release and procfs entries.
type Parser struct {
	maxSize         int64
	skipComments    bool
	kvDelimiter     string
	trimChars       string
	skipEmptyValues bool
}

// WithMaxSize sets the maximum file size in bytes.
func WithMaxSize(size int64) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments drops lines starting with '#'. Enabled by default.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key/value separator used by Map.
func WithKVDelimiter(delim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = delim
	}
}

// WithTrimChars sets characters trimmed from both ends of values in Map.
func WithTrimChars(chars string) Option {
	return func(p *Parser) {
		p.trimChars = chars
	}
}

// WithSkipEmptyValues drops keys whose value is empty or missing.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      DefaultMaxSize,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lines returns the trimmed, non-empty lines of the file at path.
func (p *Parser) Lines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, p.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if int64(len(b)) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	raw := strings.Split(string(b), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// Value returns the first line of the file at path, or an error when the
// file has no content.
func (p *Parser) Value(path string) (string, error) {
	lines, err := p.Lines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("file %q is empty", path)
	}
	return lines[0], nil
}

// Map parses the file at path into key/value pairs. Lines without the
// delimiter map to an empty value.
func (p *Parser) Map(path string) (map[string]string, error) {
	lines, err := p.Lines(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(lines))
	for _, l := range lines {
		key, value, _ := strings.Cut(l, p.kvDelimiter)
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if p.trimChars != "" {
			value = strings.Trim(value, p.trimChars)
		}
		if key == "" {
			continue
		}
		if value == "" && p.skipEmptyValues {
			slog.Debug("skipping entry with empty value", "path", path, "key", key)
			continue
		}
		out[key] = value
	}
	return out, nil
}
