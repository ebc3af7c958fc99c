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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
	"github.com/NVIDIA/node-checker/pkg/measurement"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// Paths served on a node's metrics port.
const (
	MetricsPath           = "/metrics"
	SystemInformationPath = "/system_information"
)

// MetricCollector is a source of raw metrics and system information for a
// single node. Implementations must be safe for concurrent use.
type MetricCollector interface {
	// CollectMetrics returns the raw Prometheus text lines of one scrape.
	CollectMetrics(ctx context.Context) ([]string, error)

	// CollectSystemInformation returns the node's system information.
	CollectSystemInformation(ctx context.Context) (*measurement.Measurement, error)
}

// Enricher adds subtypes to collected system information.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context) ([]measurement.Subtype, error)
}

// HTTPCollector collects from a node's metrics port.
type HTTPCollector struct {
	addr      node.Address
	reader    *serializer.HttpReader
	timeout   time.Duration
	enrichers []Enricher
}

// Option configures an HTTPCollector.
type Option func(*HTTPCollector)

// WithHTTPReader sets the reader used for requests.
func WithHTTPReader(r *serializer.HttpReader) Option {
	return func(c *HTTPCollector) {
		c.reader = r
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPCollector) {
		c.timeout = d
	}
}

// WithEnrichers adds enrichers to system information collection.
func WithEnrichers(e ...Enricher) Option {
	return func(c *HTTPCollector) {
		c.enrichers = append(c.enrichers, e...)
	}
}

// NewHTTPCollector returns a collector for addr.
func NewHTTPCollector(addr node.Address, opts ...Option) *HTTPCollector {
	c := &HTTPCollector{
		addr:    addr,
		timeout: defaults.CollectorTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reader == nil {
		c.reader = serializer.NewHttpReader()
	}
	return c
}

// Address returns the node address the collector reads from.
func (c *HTTPCollector) Address() node.Address {
	return c.addr
}

func (c *HTTPCollector) fetch(ctx context.Context, kind, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	u := c.addr.MetricsURL(path)
	data, err := c.reader.ReadWithContext(ctx, u)
	fetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		fetchErrors.WithLabelValues(kind).Inc()
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUpstream,
			fmt.Sprintf("failed to fetch %s", kind), err, map[string]any{"url": u})
	}
	return data, nil
}

// CollectMetrics implements MetricCollector.
func (c *HTTPCollector) CollectMetrics(ctx context.Context) ([]string, error) {
	data, err := c.fetch(ctx, "metrics", MetricsPath)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(string(data))
	slog.Debug("collected metrics", "node", c.addr.URL, "lines", len(lines))
	return lines, nil
}

// SplitLines splits a scrape body into lines without trailing carriage
// returns, dropping blank lines.
func SplitLines(body string) []string {
	raw := strings.Split(body, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// CollectSystemInformation implements MetricCollector.
func (c *HTTPCollector) CollectSystemInformation(ctx context.Context) (*measurement.Measurement, error) {
	data, err := c.fetch(ctx, "system_information", SystemInformationPath)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUpstream, "failed to decode system information", err)
	}

	st := measurement.NewSubtypeBuilder(measurement.SubtypeNode).
		SetContext("source", c.addr.MetricsURL(SystemInformationPath))
	for k, v := range raw {
		st.Set(k, measurement.ToReading(v))
	}

	m := measurement.NewMeasurement(measurement.TypeSystemInformation).WithSubtypeBuilder(st).Build()
	if len(c.enrichers) == 0 {
		return m, nil
	}

	extra, err := runEnrichers(ctx, c.enrichers)
	if err != nil {
		return nil, err
	}
	m.Subtypes = append(m.Subtypes, extra...)
	return m, nil
}

// CollectLocal returns system information built from enrichers alone,
// without contacting any node.
func CollectLocal(ctx context.Context, enrichers ...Enricher) (*measurement.Measurement, error) {
	sts, err := runEnrichers(ctx, enrichers)
	if err != nil {
		return nil, err
	}
	return measurement.NewMeasurement(measurement.TypeSystemInformation).WithSubtypes(sts...).Build(), nil
}

// runEnrichers runs all enrichers in parallel and returns their subtypes in
// enricher order.
func runEnrichers(ctx context.Context, enrichers []Enricher) ([]measurement.Subtype, error) {
	results := make([][]measurement.Subtype, len(enrichers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range enrichers {
		g.Go(func() error {
			start := time.Now()
			defer func() {
				enricherDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
			}()

			sts, err := e.Enrich(gctx)
			if err != nil {
				slog.Error("enricher failed", "enricher", e.Name(), "error", err)
				return fmt.Errorf("failed to enrich system information with %s: %w", e.Name(), err)
			}
			mu.Lock()
			results[i] = sts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []measurement.Subtype
	for _, sts := range results {
		for _, st := range sts {
			if len(st.Data) > 0 {
				out = append(out, st)
			}
		}
	}
	return out, nil
}
