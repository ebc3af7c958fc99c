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
	"encoding/json"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator/direct"
	"github.com/NVIDIA/node-checker/pkg/evaluator/metrics"
	"github.com/NVIDIA/node-checker/pkg/evaluator/sysinfo"
	"github.com/NVIDIA/node-checker/pkg/node"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// BaselineConfiguration describes one baseline node and the evaluators
// targets are checked with.
type BaselineConfiguration struct {
	ConfigurationName       string `json:"configuration_name" yaml:"configuration_name"`
	ConfigurationNamePretty string `json:"configuration_name_pretty" yaml:"configuration_name_pretty"`

	NodeAddress node.Address `json:"node_address" yaml:"node_address"`

	// ChainID and RoleType are read from the baseline's API when unset.
	ChainID  *uint8 `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	RoleType string `json:"role_type,omitempty" yaml:"role_type,omitempty"`

	Evaluators    []string      `json:"evaluators" yaml:"evaluators"`
	EvaluatorArgs EvaluatorArgs `json:"evaluator_args" yaml:"evaluator_args"`
	RunnerArgs    RunnerArgs    `json:"runner_args" yaml:"runner_args"`

	Kubernetes *KubernetesConfig `json:"kubernetes,omitempty" yaml:"kubernetes,omitempty"`
}

// EvaluatorArgs holds the settings of every configurable evaluator.
type EvaluatorArgs struct {
	StateSyncVersion metrics.StateSyncVersionConfig `json:"state_sync_version" yaml:"state_sync_version"`
	NetworkPeers     metrics.NetworkPeersConfig     `json:"network_peers" yaml:"network_peers"`
	Latency          direct.LatencyConfig           `json:"api_latency" yaml:"api_latency"`
	Tps              direct.TpsConfig               `json:"tps" yaml:"tps"`
	Hardware         sysinfo.HardwareConfig         `json:"hardware" yaml:"hardware"`
	Consistency      sysinfo.ConsistencyConfig      `json:"system_consistency" yaml:"system_consistency"`
}

// RunnerArgs configures the runner.
type RunnerArgs struct {
	MetricsFetchDelaySecs uint64 `json:"metrics_fetch_delay_secs" yaml:"metrics_fetch_delay_secs"`
}

// KubernetesConfig enables Kubernetes node enrichment of system
// information.
type KubernetesConfig struct {
	// BaselineNodeName is the Kubernetes node the baseline runs on.
	BaselineNodeName string `json:"baseline_node_name" yaml:"baseline_node_name"`

	// Kubeconfig is the path to a kubeconfig file. Empty uses discovery.
	Kubeconfig string `json:"kubeconfig,omitempty" yaml:"kubeconfig,omitempty"`
}

// DefaultEvaluatorArgs returns the default settings of every evaluator.
func DefaultEvaluatorArgs() EvaluatorArgs {
	return EvaluatorArgs{
		StateSyncVersion: metrics.DefaultStateSyncVersionConfig(),
		NetworkPeers:     metrics.DefaultNetworkPeersConfig(),
		Latency:          direct.DefaultLatencyConfig(),
		Tps:              direct.DefaultTpsConfig(),
		Hardware:         sysinfo.DefaultHardwareConfig(),
		Consistency:      sysinfo.DefaultConsistencyConfig(),
	}
}

// New returns a configuration with default evaluator and runner settings.
func New(name string, addr node.Address, evaluators ...string) *BaselineConfiguration {
	c := newDefault()
	c.ConfigurationName = name
	c.NodeAddress = addr
	c.Evaluators = evaluators
	return &c
}

func newDefault() BaselineConfiguration {
	return BaselineConfiguration{
		EvaluatorArgs: DefaultEvaluatorArgs(),
		RunnerArgs:    RunnerArgs{MetricsFetchDelaySecs: defaults.MetricsFetchDelaySecs},
	}
}

// UnmarshalYAML fills settings missing from the document with defaults.
func (c *BaselineConfiguration) UnmarshalYAML(n *yaml.Node) error {
	type plain BaselineConfiguration
	p := plain(newDefault())
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = BaselineConfiguration(p)
	c.NodeAddress = c.NodeAddress.WithDefaults()
	return nil
}

// UnmarshalJSON fills settings missing from the document with defaults.
func (c *BaselineConfiguration) UnmarshalJSON(data []byte) error {
	type plain BaselineConfiguration
	p := plain(newDefault())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = BaselineConfiguration(p)
	c.NodeAddress = c.NodeAddress.WithDefaults()
	return nil
}

// DisplayName returns the pretty name, or the name when unset.
func (c *BaselineConfiguration) DisplayName() string {
	if c.ConfigurationNamePretty != "" {
		return c.ConfigurationNamePretty
	}
	return c.ConfigurationName
}

// Validate checks the configuration without contacting any node.
func (c *BaselineConfiguration) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration is nil")
	}
	if !namePattern.MatchString(c.ConfigurationName) {
		return fmt.Errorf("invalid configuration name %q: must match %s", c.ConfigurationName, namePattern)
	}
	if err := c.NodeAddress.Validate(); err != nil {
		return fmt.Errorf("configuration %s: %w", c.ConfigurationName, err)
	}
	if c.RunnerArgs.MetricsFetchDelaySecs > defaults.MaxMetricsFetchDelaySecs {
		return fmt.Errorf("configuration %s: metrics_fetch_delay_secs %d exceeds %d",
			c.ConfigurationName, c.RunnerArgs.MetricsFetchDelaySecs, defaults.MaxMetricsFetchDelaySecs)
	}
	if len(c.Evaluators) == 0 {
		return fmt.Errorf("configuration %s: at least one evaluator is required", c.ConfigurationName)
	}

	seen := make(map[string]bool, len(c.Evaluators))
	for _, name := range c.Evaluators {
		if !IsKnownEvaluator(name) {
			return fmt.Errorf("configuration %s: unknown evaluator %q (known: %v)", c.ConfigurationName, name, EvaluatorNames())
		}
		if seen[name] {
			return fmt.Errorf("configuration %s: evaluator %q listed more than once", c.ConfigurationName, name)
		}
		seen[name] = true
	}

	if err := c.EvaluatorArgs.Latency.Validate(); err != nil {
		return fmt.Errorf("configuration %s: %w", c.ConfigurationName, err)
	}
	if err := c.EvaluatorArgs.Tps.Validate(); err != nil {
		return fmt.Errorf("configuration %s: %w", c.ConfigurationName, err)
	}
	if c.EvaluatorArgs.Consistency.DriftScore > 100 {
		return fmt.Errorf("configuration %s: drift score must be at most 100", c.ConfigurationName)
	}
	return nil
}
