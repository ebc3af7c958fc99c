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

// Package os enriches node system information with operating system data
// read from the local host. It is only meaningful when the node under
// evaluation runs on the same host as the checker.
//
// # Collected Data
//
// Up to four subtypes are produced:
//
// 1. release - /etc/os-release (or /usr/lib/os-release) key/value pairs:
//
//	ID=ubuntu
//	VERSION_ID="22.04"
//
// 2. kernel - the running kernel release from /proc/sys/kernel/osrelease.
//
// 3. cmdline - kernel boot parameters from /proc/cmdline, split on the first
// '='. Flags without a value map to an empty string. Skipped when the file
// does not exist.
//
//	root: PARTUUID=abc-1
//	quiet: ""
//
// 4. sysctl - kernel parameters under /proc/sys matching the configured
// patterns, keyed by path:
//
//	/proc/sys/vm/swappiness: "60"
//	/proc/sys/net/core/somaxconn: "4096"
//
// # Usage
//
//	e := os.NewEnricher(os.WithSysctlPatterns("/proc/sys/vm/*"))
//	subtypes, err := e.Enrich(ctx)
package os
