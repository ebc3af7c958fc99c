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

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodecheck_collector_fetch_duration_seconds",
			Help:    "Time taken to fetch data from a node",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"kind"}, // metrics, system_information
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodecheck_collector_fetch_errors_total",
			Help: "Total number of failed fetches from nodes",
		},
		[]string{"kind"},
	)

	enricherDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodecheck_collector_enricher_duration_seconds",
			Help:    "Time taken by individual system information enrichers",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"enricher"}, // k8s, os, systemd
	)
)
