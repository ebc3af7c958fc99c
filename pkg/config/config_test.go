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

package config

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/measurement"
	"github.com/NVIDIA/node-checker/pkg/node"
)

const unknownEvaluatorConfig = `configuration_name: devnet_fullnode
configuration_name_pretty: Devnet Full Node
node_address:
  url: http://baseline.example.com
evaluators:
  - node_identity
`

const minimalConfig = `configuration_name: devnet_fullnode
configuration_name_pretty: Devnet Full Node
node_address:
  url: http://baseline.example.com
chain_id: 4
role_type: full_node
evaluators:
  - state_sync_version
  - build_version
  - tps
  - api_latency
evaluator_args:
  tps:
    minimum_tps: 50
  system_consistency:
    drift_score: 40
runner_args:
  metrics_fetch_delay_secs: 2
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	c, err := Load(writeConfig(t, "devnet.yaml", minimalConfig), "")
	require.NoError(t, err)

	assert.Equal(t, "devnet_fullnode", c.ConfigurationName)
	assert.Equal(t, "Devnet Full Node", c.DisplayName())
	assert.Equal(t, uint16(node.DefaultAPIPort), c.NodeAddress.APIPort)
	assert.Equal(t, uint16(node.DefaultMetricsPort), c.NodeAddress.MetricsPort)
	require.NotNil(t, c.ChainID)
	assert.EqualValues(t, 4, *c.ChainID)
	assert.Equal(t, []string{"state_sync_version", "build_version", "tps", "api_latency"}, c.Evaluators)
	assert.EqualValues(t, 2, c.RunnerArgs.MetricsFetchDelaySecs)

	// overridden fields
	assert.InDelta(t, 50.0, c.EvaluatorArgs.Tps.MinimumTPS, 0.001)
	assert.EqualValues(t, 40, c.EvaluatorArgs.Consistency.DriftScore)

	// untouched fields keep their defaults
	def := DefaultEvaluatorArgs()
	assert.Equal(t, def.Tps.DurationSecs, c.EvaluatorArgs.Tps.DurationSecs)
	assert.Equal(t, def.Consistency.Subtypes, c.EvaluatorArgs.Consistency.Subtypes)
	assert.Equal(t, def.Latency, c.EvaluatorArgs.Latency)
	assert.Equal(t, def.StateSyncVersion, c.EvaluatorArgs.StateSyncVersion)
}

func TestLoadJSON(t *testing.T) {
	c, err := Load(writeConfig(t, "devnet.json", `{
  "configuration_name": "json_node",
  "node_address": {"url": "https://baseline.example.com", "api_port": 443},
  "evaluators": ["hardware"]
}`), "")
	require.NoError(t, err)
	assert.Equal(t, "json_node", c.DisplayName())
	assert.EqualValues(t, 443, c.NodeAddress.APIPort)
	assert.EqualValues(t, node.DefaultMetricsPort, c.NodeAddress.MetricsPort)
	assert.Nil(t, c.ChainID)
	assert.EqualValues(t, 5, c.RunnerArgs.MetricsFetchDelaySecs)
	assert.Equal(t, DefaultEvaluatorArgs(), c.EvaluatorArgs)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", unknownEvaluatorConfig), "")
	assert.ErrorContains(t, err, "unknown evaluator")
}

func TestLoadAll(t *testing.T) {
	a := writeConfig(t, "a.yaml", minimalConfig)
	b := writeConfig(t, "b.yaml", `configuration_name: other
node_address:
  url: http://other.example.com
evaluators: [consensus_proposals]
`)

	configs, err := LoadAll([]string{a, b}, "")
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "other", configs[1].ConfigurationName)

	_, err = LoadAll([]string{a, a}, "")
	assert.ErrorContains(t, err, "used by both")

	_, err = LoadAll(nil, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *BaselineConfiguration {
		return New("valid", node.Address{URL: "http://x", APIPort: 1, MetricsPort: 2}, "tps")
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *BaselineConfiguration)
		want   string
	}{
		{"empty name", func(c *BaselineConfiguration) { c.ConfigurationName = "" }, "invalid configuration name"},
		{"bad name", func(c *BaselineConfiguration) { c.ConfigurationName = "Has Spaces" }, "invalid configuration name"},
		{"bad url", func(c *BaselineConfiguration) { c.NodeAddress.URL = "ftp://x" }, "scheme"},
		{"huge fetch delay", func(c *BaselineConfiguration) { c.RunnerArgs.MetricsFetchDelaySecs = math.MaxUint64 }, "exceeds"},
		{"fetch delay over limit", func(c *BaselineConfiguration) { c.RunnerArgs.MetricsFetchDelaySecs = defaults.MaxMetricsFetchDelaySecs + 1 }, "exceeds"},
		{"no evaluators", func(c *BaselineConfiguration) { c.Evaluators = nil }, "at least one evaluator"},
		{"unknown evaluator", func(c *BaselineConfiguration) { c.Evaluators = []string{"nope"} }, "unknown evaluator"},
		{"duplicate evaluator", func(c *BaselineConfiguration) { c.Evaluators = []string{"tps", "tps"} }, "more than once"},
		{"bad latency", func(c *BaselineConfiguration) { c.EvaluatorArgs.Latency.NumSamples = 0 }, "sample"},
		{"bad drift score", func(c *BaselineConfiguration) { c.EvaluatorArgs.Consistency.DriftScore = 101 }, "drift score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}

	var nilConfig *BaselineConfiguration
	assert.Error(t, nilConfig.Validate())
}

func TestEvaluatorNames(t *testing.T) {
	names := EvaluatorNames()
	assert.Equal(t, []string{
		"api_latency", "build_version", "consensus_proposals", "hardware",
		"network_peers", "state_sync_version", "system_consistency", "tps",
	}, names)
	assert.True(t, IsKnownEvaluator("tps"))
	assert.False(t, IsKnownEvaluator("node_identity"))
}

type fakeAPI struct {
	info  *node.LedgerInfo
	err   error
	calls int
}

func (f *fakeAPI) LedgerInfo(context.Context, node.Address) (*node.LedgerInfo, error) {
	f.calls++
	return f.info, f.err
}

func (f *fakeAPI) Probe(context.Context, node.Address) (time.Duration, error) {
	return time.Millisecond, nil
}

type stubCollector struct{}

func (stubCollector) CollectMetrics(context.Context) ([]string, error) { return nil, nil }

func (stubCollector) CollectSystemInformation(context.Context) (*measurement.Measurement, error) {
	return measurement.NewMeasurement(measurement.TypeSystemInformation).Build(), nil
}

type fakeFactory struct {
	addr      node.Address
	enrichers []collector.Enricher
}

func (f *fakeFactory) Create(addr node.Address, enrichers ...collector.Enricher) collector.MetricCollector {
	f.addr = addr
	f.enrichers = enrichers
	return stubCollector{}
}

func TestBuildRunner(t *testing.T) {
	c, err := Load(writeConfig(t, "devnet.yaml", minimalConfig), "")
	require.NoError(t, err)

	api := &fakeAPI{}
	factory := &fakeFactory{}
	r, err := c.BuildRunner(context.Background(), Dependencies{
		API:     api,
		Factory: factory,
		Clock:   clocktesting.NewFakeClock(time.Now()),
	})
	require.NoError(t, err)

	assert.Equal(t, c.Evaluators, r.EvaluatorNames())
	assert.Equal(t, 2*time.Second, r.MetricsFetchDelay())
	assert.EqualValues(t, 4, r.Baseline().ChainID)
	assert.Equal(t, node.RoleFullNode, r.Baseline().RoleType)
	assert.Equal(t, 0, api.calls, "identity is fully configured")
	assert.Equal(t, c.NodeAddress, factory.addr)
	assert.Empty(t, factory.enrichers)
}

func TestBuildRunnerResolvesIdentity(t *testing.T) {
	c := New("devnet", node.Address{URL: "http://baseline", APIPort: 8080, MetricsPort: 9101}, "consensus_proposals")
	c.RoleType = node.RoleValidator
	c.Kubernetes = &KubernetesConfig{BaselineNodeName: "node-a"}

	api := &fakeAPI{info: &node.LedgerInfo{ChainID: 7, NodeRole: node.RoleFullNode}}
	factory := &fakeFactory{}
	r, err := c.BuildRunner(context.Background(), Dependencies{
		API:        api,
		Factory:    factory,
		KubeClient: fake.NewClientset(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, api.calls)
	assert.EqualValues(t, 7, r.Baseline().ChainID)
	assert.Equal(t, node.RoleValidator, r.Baseline().RoleType, "configured role wins")
	require.Len(t, factory.enrichers, 1)
	assert.Equal(t, "k8s", factory.enrichers[0].Name())
}

func TestBuildRunnerErrors(t *testing.T) {
	c := New("devnet", node.Address{URL: "http://baseline", APIPort: 8080, MetricsPort: 9101}, "tps")

	_, err := c.BuildRunner(context.Background(), Dependencies{
		API:     &fakeAPI{err: errors.New("unreachable")},
		Factory: &fakeFactory{},
	})
	assert.ErrorContains(t, err, "failed to read identity")

	c.Evaluators = []string{"nope"}
	_, err = c.BuildRunner(context.Background(), Dependencies{API: &fakeAPI{}, Factory: &fakeFactory{}})
	assert.ErrorContains(t, err, "unknown evaluator")

	chain := uint8(1)
	c.ChainID = &chain
	c.RoleType = node.RoleFullNode
	c.Evaluators = []string{"tps"}
	c.EvaluatorArgs.Tps.DurationSecs = 0
	_, err = c.BuildRunner(context.Background(), Dependencies{API: &fakeAPI{}, Factory: &fakeFactory{}})
	assert.Error(t, err)
}
