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
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/node-checker/pkg/collector/k8s"
	hostos "github.com/NVIDIA/node-checker/pkg/collector/os"
	"github.com/NVIDIA/node-checker/pkg/collector/systemd"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// Factory creates collectors for node addresses.
type Factory interface {
	Create(addr node.Address, enrichers ...Enricher) MetricCollector
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithFactoryReader shares one HTTP reader across all created collectors.
func WithFactoryReader(r *serializer.HttpReader) FactoryOption {
	return func(f *DefaultFactory) {
		f.reader = r
	}
}

// WithFactoryTimeout sets the per-fetch timeout of created collectors.
func WithFactoryTimeout(d time.Duration) FactoryOption {
	return func(f *DefaultFactory) {
		f.timeout = d
	}
}

// DefaultFactory creates HTTP collectors with production dependencies.
type DefaultFactory struct {
	reader  *serializer.HttpReader
	timeout time.Duration
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		timeout: defaults.CollectorTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.reader == nil {
		f.reader = serializer.NewHttpReader()
	}
	return f
}

// Create implements Factory.
func (f *DefaultFactory) Create(addr node.Address, enrichers ...Enricher) MetricCollector {
	return NewHTTPCollector(addr,
		WithHTTPReader(f.reader),
		WithTimeout(f.timeout),
		WithEnrichers(enrichers...),
	)
}

// KubernetesEnricher returns an enricher reading the Kubernetes Node named
// nodeName. An empty nodeName is resolved from the environment at collection
// time.
func KubernetesEnricher(cs kubernetes.Interface, nodeName string) Enricher {
	return &k8s.NodeEnricher{ClientSet: cs, NodeName: nodeName}
}

// HostEnrichers returns the enrichers describing the local host: OS release,
// kernel and sysctl, plus systemd unit state when units are given.
func HostEnrichers(units []string, sysctlPatterns []string) []Enricher {
	osOpts := []hostos.Option{}
	if sysctlPatterns != nil {
		osOpts = append(osOpts, hostos.WithSysctlPatterns(sysctlPatterns...))
	}
	enrichers := []Enricher{hostos.NewEnricher(osOpts...)}
	if len(units) > 0 {
		enrichers = append(enrichers, systemd.NewEnricher(units...))
	}
	return enrichers
}
