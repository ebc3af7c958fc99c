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
	"log/slog"

	"github.com/NVIDIA/node-checker/pkg/measurement"
)

// EnricherName identifies the OS enricher in logs and metrics.
const EnricherName = "os"

// DefaultSysctlPatterns are the kernel parameters that matter for node
// networking and storage throughput.
var DefaultSysctlPatterns = []string{
	"/proc/sys/net/core/rmem_max",
	"/proc/sys/net/core/wmem_max",
	"/proc/sys/net/core/somaxconn",
	"/proc/sys/net/ipv4/tcp_congestion_control",
	"/proc/sys/vm/swappiness",
	"/proc/sys/vm/max_map_count",
	"/proc/sys/fs/file-max",
}

// Enricher reads release, kernel, boot parameter and sysctl information
// from the host.
type Enricher struct {
	releasePaths   []string
	kernelPath     string
	cmdlinePath    string
	sysctlRoot     string
	sysctlPatterns []string
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithReleasePaths overrides the os-release files tried in order.
func WithReleasePaths(paths ...string) Option {
	return func(e *Enricher) {
		e.releasePaths = paths
	}
}

// WithKernelPath overrides the file holding the kernel release.
func WithKernelPath(path string) Option {
	return func(e *Enricher) {
		e.kernelPath = path
	}
}

// WithCmdlinePath overrides the file holding the kernel boot parameters.
func WithCmdlinePath(path string) Option {
	return func(e *Enricher) {
		e.cmdlinePath = path
	}
}

// WithSysctlRoot overrides the /proc/sys root. Patterns are matched against
// paths under this root.
func WithSysctlRoot(root string) Option {
	return func(e *Enricher) {
		e.sysctlRoot = root
	}
}

// WithSysctlPatterns sets the sysctl path patterns to collect. No patterns
// disables the sysctl subtype.
func WithSysctlPatterns(patterns ...string) Option {
	return func(e *Enricher) {
		e.sysctlPatterns = patterns
	}
}

// NewEnricher returns an Enricher reading the standard host locations.
func NewEnricher(opts ...Option) *Enricher {
	e := &Enricher{
		releasePaths:   []string{filePathReleasePrimary, filePathReleaseFallback},
		kernelPath:     filePathKernelRelease,
		cmdlinePath:    filePathCmdline,
		sysctlRoot:     sysctlRoot,
		sysctlPatterns: DefaultSysctlPatterns,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements collector.Enricher.
func (e *Enricher) Name() string { return EnricherName }

// Enrich implements collector.Enricher.
func (e *Enricher) Enrich(ctx context.Context) ([]measurement.Subtype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	release, err := e.collectRelease(ctx)
	if err != nil {
		return nil, err
	}

	kernel, err := e.collectKernel(ctx)
	if err != nil {
		return nil, err
	}

	subtypes := []measurement.Subtype{*release, *kernel}

	cmdline, err := e.collectCmdline(ctx)
	if err != nil {
		return nil, err
	}
	if cmdline != nil {
		subtypes = append(subtypes, *cmdline)
	}

	if len(e.sysctlPatterns) > 0 {
		sysctl, err := e.collectSysctl(ctx)
		if err != nil {
			return nil, err
		}
		subtypes = append(subtypes, *sysctl)
	}

	slog.Debug("collected host os information", "subtypes", len(subtypes))
	return subtypes, nil
}
