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

package os

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/node-checker/pkg/collector/file"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

var sysctlRoot = "/proc/sys"

// collectSysctl walks the sysctl root and keeps files matching the
// configured patterns. Unreadable files are skipped.
func (e *Enricher) collectSysctl(ctx context.Context) (*measurement.Subtype, error) {
	params := make(map[string]measurement.Reading)
	parser := file.NewParser()
	root := filepath.Clean(e.sysctlRoot)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to walk directory %s: %w", path, err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.Type()&fs.ModeSymlink != 0 || d.IsDir() {
			return nil
		}
		if !strings.HasPrefix(path, root) {
			return fmt.Errorf("path traversal detected: %s", path)
		}

		// Patterns are written against /proc/sys so tests can relocate the root.
		key := sysctlRoot + strings.TrimPrefix(path, root)
		if !measurement.Matches(key, e.sysctlPatterns) {
			return nil
		}

		lines, err := parser.Lines(path)
		if err != nil {
			return nil
		}
		params[key] = measurement.Str(strings.Join(lines, "\n"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sysctl parameters: %w", err)
	}

	return &measurement.Subtype{
		Name:    measurement.SubtypeSysctl,
		Data:    params,
		Context: map[string]string{"source": root},
	}, nil
}
