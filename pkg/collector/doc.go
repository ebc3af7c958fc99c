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

// Package collector fetches raw metrics and system information from nodes.
//
// # Collectors
//
// A MetricCollector is a source of data for one node. The HTTPCollector
// reads the node's metrics port:
//
//	GET {url}:{metrics_port}/metrics             Prometheus text lines
//	GET {url}:{metrics_port}/system_information  flat JSON object
//
// System information is returned as a measurement of type SystemInformation
// with a "node" subtype holding the JSON object's keys.
//
// # Enrichers
//
// Enrichers add subtypes to the system information from sources other than
// the node itself. They run in parallel after the node's own information is
// fetched, and any failure fails the whole collection:
//
//   - k8s.NodeEnricher: the Kubernetes Node object (subtype "k8s")
//   - os.Enricher: /etc/os-release, kernel release and selected sysctls
//     (subtypes "release", "kernel", "sysctl")
//   - systemd.Enricher: unit state over D-Bus (subtype "systemd")
//
// # Factory
//
// The DefaultFactory wires collectors and enrichers for an address:
//
//	f := collector.NewDefaultFactory(
//	    collector.WithKubernetes(clientset, "node-a"),
//	)
//	c := f.Create(addr)
//	lines, err := c.CollectMetrics(ctx)
//
// # Timeouts
//
// Every fetch is bounded by defaults.CollectorTimeout unless the caller's
// context expires first.
package collector
