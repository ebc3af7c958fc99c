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

// Package server is the HTTP server hosting the node checker API.
//
// It serves caller-provided routes behind a middleware chain and adds the
// system endpoints a Kubernetes deployment expects:
//
//   - Request ID tracking (X-Request-Id, UUID, generated when absent)
//   - API version negotiation (Accept: application/vnd.nvidia.nodecheck.v1+json)
//   - Panic recovery into a 500 error response
//   - Token bucket rate limiting (golang.org/x/time/rate) with 429 and
//     Retry-After
//   - Prometheus RED metrics per route
//
// # Usage
//
//	s := server.New(
//	    server.WithName("nodecheckd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/check": h.HandleCheck,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is done or SIGINT/SIGTERM arrives, then drains
// in-flight requests within ShutdownTimeout. PORT and
// SHUTDOWN_TIMEOUT_SECONDS override the defaults.
//
// # System endpoints
//
//	GET /         name, version, readiness and routes
//	GET /health   liveness, always 200
//	GET /ready    200 while serving, 503 before start and during shutdown
//	GET /metrics  Prometheus exposition
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which
// derives the status from the pkg/errors code:
//
//	{
//	  "code": "UPSTREAM_ERROR",
//	  "message": "check failed",
//	  "details": {"stage": "collect_metrics", "error": "..."},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T12:00:00Z",
//	  "retryable": true
//	}
package server
