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

// Package api serves node checks over HTTP.
//
// Serve loads baseline configurations, builds one runner per configuration
// and hands the routes to pkg/server, which provides middleware, health
// probes, metrics and graceful shutdown.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /v1/check           - Check a target node against a baseline
//   - GET /v1/configurations  - List loaded baseline configurations
//
// System endpoints:
//   - GET /health, GET /ready, GET /metrics
//
// # Query Parameters (GET /v1/check)
//
//   - baseline_configuration_name: configuration to check against (required)
//   - node_url: http(s) URL of the target without a port (required)
//   - api_port: target API port (default 8080)
//   - metrics_port: target metrics port (default 9101)
//   - node_name: Kubernetes node name of the target, used for enrichment
//     when the server runs with Kubernetes access
//
// A successful check returns the evaluation summary:
//
//	curl "http://localhost:8080/v1/check?baseline_configuration_name=devnet_fullnode&node_url=http://10.0.0.7"
//
// # Errors
//
//   - 400 INVALID_REQUEST: missing or malformed query parameters
//   - 404 NOT_FOUND: unknown baseline configuration
//   - 502 UPSTREAM_ERROR: the baseline or target failed; details.stage
//     names the step, e.g. collect_metrics or node_identity
//   - 503 SERVICE_UNAVAILABLE: too many checks in progress
//   - 504 TIMEOUT: the check exceeded its timeout
//
// A target of a different chain or role is not an error: it yields a 200
// response with the failing node identity results only.
package api
