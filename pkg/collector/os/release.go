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
	"os"
	"strings"

	"github.com/NVIDIA/node-checker/pkg/collector/file"
	"github.com/NVIDIA/node-checker/pkg/measurement"
)

var (
	filePathReleasePrimary  = "/etc/os-release"
	filePathReleaseFallback = "/usr/lib/os-release"
	filePathKernelRelease   = "/proc/sys/kernel/osrelease"
)

// collectRelease reads the first existing os-release file.
func (e *Enricher) collectRelease(ctx context.Context) (*measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var path string
	for _, p := range e.releasePaths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("no os-release file found in %s", strings.Join(e.releasePaths, ", "))
	}

	parser := file.NewParser(
		file.WithKVDelimiter("="),
		file.WithTrimChars(`"'`),
		file.WithSkipComments(true),
		file.WithSkipEmptyValues(true),
	)

	params, err := parser.Map(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read os release from %s: %w", path, err)
	}

	b := measurement.NewSubtypeBuilder(measurement.SubtypeRelease).SetContext("source", path)
	for k, v := range params {
		b.SetString(k, v)
	}
	st := b.Build()
	return &st, nil
}

// collectKernel reads the running kernel release.
func (e *Enricher) collectKernel(ctx context.Context) (*measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	release, err := file.NewParser().Value(e.kernelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read kernel release: %w", err)
	}

	st := measurement.NewSubtypeBuilder(measurement.SubtypeKernel).
		SetString(measurement.KeyKernelRelease, release).
		SetContext("source", e.kernelPath).
		Build()
	return &st, nil
}
