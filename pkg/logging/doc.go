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

// Package logging configures log/slog for the node checker binaries.
//
// Every record is JSON on stderr and carries the module name and version of
// the binary that wrote it. At debug level the source location is included.
//
//	logging.SetDefaultStructuredLogger("nodecheckd", version)
//	slog.Info("check complete", "configuration", name, "score", score)
//
// # Levels
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any case.
// Anything else is info. SetDefaultStructuredLogger reads the level from
// LOG_LEVEL; the CLI passes its --log-level flag to
// SetDefaultStructuredLoggerWithLevel instead.
//
//	LOG_LEVEL=debug nodecheck check -c devnet.yaml --node-url http://10.0.0.5
//
// A debug record looks like:
//
//	{"time":"2025-01-15T10:30:00Z","level":"DEBUG","source":{"function":"...","file":"runner.go","line":281},
//	 "msg":"check run complete","module":"nodecheck","version":"v0.3.0","results":7,"score":100}
//
// NewLogLogger adapts the default handler for APIs that need a *log.Logger,
// such as http.Server.ErrorLog.
package logging
