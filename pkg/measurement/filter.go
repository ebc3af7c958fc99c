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

import "strings"

// FilterOut returns a copy of readings without the keys matching any of the
// patterns. Patterns support '*' wildcards anywhere, e.g. "build_*",
// "*_timestamp" or "*mem*".
func FilterOut(readings map[string]Reading, patterns []string) map[string]Reading {
	return filter(readings, patterns, false)
}

// FilterIn returns a copy of readings holding only the keys matching at
// least one pattern.
func FilterIn(readings map[string]Reading, patterns []string) map[string]Reading {
	return filter(readings, patterns, true)
}

// FilterSubtype applies FilterIn (when include is non-empty) and then
// FilterOut to a subtype, returning a new subtype.
func FilterSubtype(st Subtype, include, exclude []string) Subtype {
	data := st.Data
	if len(include) > 0 {
		data = FilterIn(data, include)
	}
	if len(exclude) > 0 {
		data = FilterOut(data, exclude)
	}
	return Subtype{Name: st.Name, Data: data, Context: st.Context}
}

func filter(readings map[string]Reading, patterns []string, keep bool) map[string]Reading {
	result := make(map[string]Reading)
	for key, value := range readings {
		if matchesAny(key, patterns) == keep {
			result[key] = value
		}
	}
	return result
}

// Matches reports whether key matches at least one pattern.
func Matches(key string, patterns []string) bool {
	return matchesAny(key, patterns)
}

func matchesAny(key string, patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(key, p) {
			return true
		}
	}
	return false
}

// matchesPattern reports whether key matches a pattern with any number of
// '*' wildcards, e.g. "a*b*c" matches "aXbYc".
func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")
	last := len(segments) - 1

	if !strings.HasPrefix(key, segments[0]) {
		return false
	}
	pos := len(segments[0])

	for _, seg := range segments[1:last] {
		if seg == "" {
			continue
		}
		idx := strings.Index(key[pos:], seg)
		if idx == -1 {
			return false
		}
		pos += idx + len(seg)
	}

	return strings.HasSuffix(key[pos:], segments[last])
}
