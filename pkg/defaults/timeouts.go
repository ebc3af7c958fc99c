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

package defaults

import "time"

// Runner settings for the two-phase metrics sampling window.
const (
	// MetricsFetchDelay is the default delay between the first and the second
	// metrics fetch of a run.
	MetricsFetchDelay = 5 * time.Second

	// MetricsFetchDelaySecs is MetricsFetchDelay expressed in whole seconds,
	// the unit used by baseline configuration documents.
	MetricsFetchDelaySecs = 5

	// MaxMetricsFetchDelaySecs bounds the configurable delay.
	MaxMetricsFetchDelaySecs = 3600
)

// Collector timeouts for node data collection operations.
const (
	// CollectorTimeout is the default timeout for a single metrics or
	// system information fetch. Collectors respect parent context deadlines
	// when shorter.
	CollectorTimeout = 10 * time.Second

	// CollectorK8sTimeout is the timeout for Kubernetes API calls in collectors.
	CollectorK8sTimeout = 30 * time.Second
)

// Evaluator defaults.
const (
	// LatencySampleDelay is the pause between two latency probes.
	LatencySampleDelay = 20 * time.Millisecond

	// LatencyMaxAPILatency is the highest average API latency that still passes.
	LatencyMaxAPILatency = 1 * time.Second

	// TpsMeasurementDuration is how long the TPS evaluator observes the ledger.
	TpsMeasurementDuration = 10 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// CheckHandlerTimeout is the timeout for a single check request. It covers
	// the identity gate, both metrics rounds, the sampling delay and all
	// evaluators.
	CheckHandlerTimeout = 2 * time.Minute

	// BaselineBuildTimeout bounds resolving baseline identity at startup.
	BaselineBuildTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must stay above CheckHandlerTimeout so timed-out checks can still
	// return a structured error.
	ServerWriteTimeout = 150 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICheckTimeout is the default timeout for a CLI check run.
	CLICheckTimeout = 5 * time.Minute
)
