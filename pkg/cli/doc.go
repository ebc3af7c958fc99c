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

// Package cli implements the nodecheck command line interface.
//
// # Commands
//
// check - Check a target node against a baseline configuration:
//
//	nodecheck check --config devnet.yaml --node-url http://10.0.0.5 [--output report.yaml]
//
// Runs the identity gate and every configured evaluator, then writes a
// CheckReport. With --push the report is also published to an OCI registry.
// With --fail-on-error the command exits with status 2 when the target does
// not pass.
//
// configurations - Validate configurations and print them with defaults:
//
//	nodecheck configurations -c devnet.yaml -c cm://monitoring/mainnet-baseline
//
// system-information - Print the host details check --host-info attaches:
//
//	nodecheck system-information --systemd-unit node.service -t table
//
// serve - Serve the check API:
//
//	nodecheck serve -c devnet.yaml --port 8080
//
// # Shared Flags
//
//	--output, -o      Output file path or cm://namespace/name (default: stdout)
//	--format, -t      Output format: yaml, json, table (default: yaml, or the output extension)
//	--kubeconfig, -k  Kubeconfig for ConfigMap input/output and Node lookups
//
// # Global Flags
//
//	--log-level   Log level (debug, info, warn, error); also LOG_LEVEL
//	--debug       Shorthand for --log-level=debug
//	--version     Show version information
//
// Logs are structured JSON on stderr. Reports go to stdout unless --output
// is set, so they can be piped.
package cli
