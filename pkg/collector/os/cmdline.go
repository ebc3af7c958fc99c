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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/node-checker/pkg/measurement"
)

var filePathCmdline = "/proc/cmdline"

// maxCmdlineSize bounds the boot command line read from disk.
const maxCmdlineSize = 1 << 20

// collectCmdline reads the kernel boot parameters. Flags without a value
// are recorded with an empty string. A missing file yields nil.
func (e *Enricher) collectCmdline(ctx context.Context) (*measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(e.cmdlinePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read boot parameters: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("boot parameters in %s contain invalid UTF-8", e.cmdlinePath)
	}
	if len(data) > maxCmdlineSize {
		return nil, fmt.Errorf("boot parameters exceed maximum size of %d bytes", maxCmdlineSize)
	}

	b := measurement.NewSubtypeBuilder(measurement.SubtypeCmdline).SetContext("source", e.cmdlinePath)
	for _, param := range strings.Fields(string(data)) {
		// root=PARTUUID=xyz keeps everything after the first '='
		key, val, _ := strings.Cut(param, "=")
		b.Set(key, measurement.Str(val))
	}
	st := b.Build()
	return &st, nil
}
