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

// Package file reads small line-oriented text files for the host enrichers.
//
// A Parser splits a file into trimmed, non-empty lines, optionally dropping
// '#' comments, and can parse KEY=VALUE files such as /etc/os-release:
//
//	p := file.NewParser(file.WithTrimChars(`"'`), file.WithSkipEmptyValues(true))
//	release, err := p.Map("/etc/os-release")
//
// Single-value procfs entries are read with Value:
//
//	kernel, err := file.NewParser().Value("/proc/sys/kernel/osrelease")
//
// Files larger than the configured maximum (1MB by default) or containing
// invalid UTF-8 are rejected.
package file
