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
	"fmt"
	"log/slog"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator"
	"github.com/NVIDIA/node-checker/pkg/evaluator/direct"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/runner"
)

// Dependencies are the shared services a runner is built with. Zero fields
// get production defaults.
type Dependencies struct {
	API        direct.NodeAPI
	Factory    collector.Factory
	Clock      clock.Clock
	KubeClient kubernetes.Interface
}

func (d Dependencies) withDefaults() Dependencies {
	if d.API == nil {
		d.API = node.NewClient()
	}
	if d.Factory == nil {
		d.Factory = collector.NewDefaultFactory()
	}
	if d.Clock == nil {
		d.Clock = clock.RealClock{}
	}
	return d
}

// ResolveIdentity returns the baseline identity, reading chain ID and role
// from the baseline's API when the configuration does not set them.
func (c *BaselineConfiguration) ResolveIdentity(ctx context.Context, api direct.NodeAPI) (node.Information, error) {
	info := node.Information{NodeAddress: c.NodeAddress, RoleType: c.RoleType}
	if c.ChainID != nil {
		info.ChainID = *c.ChainID
	}
	if c.ChainID != nil && c.RoleType != "" {
		return info, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.BaselineBuildTimeout)
	defer cancel()

	li, err := api.LedgerInfo(ctx, c.NodeAddress)
	if err != nil {
		return node.Information{}, fmt.Errorf("failed to read identity of baseline %s: %w", c.ConfigurationName, err)
	}
	if c.ChainID == nil {
		info.ChainID = li.ChainID
	}
	if c.RoleType == "" {
		info.RoleType = li.NodeRole
	}
	slog.Debug("resolved baseline identity", "configuration", c.ConfigurationName,
		"chain_id", info.ChainID, "role_type", info.RoleType)
	return info, nil
}

// BuildEvaluators returns the configured evaluators in order.
func (c *BaselineConfiguration) BuildEvaluators(deps Dependencies) ([]evaluator.Type, error) {
	deps = deps.withDefaults()
	types := make([]evaluator.Type, 0, len(c.Evaluators))
	for _, name := range c.Evaluators {
		build, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown evaluator %q", name)
		}
		t, err := build(c.EvaluatorArgs, deps)
		if err != nil {
			return nil, fmt.Errorf("failed to build evaluator %s: %w", name, err)
		}
		types = append(types, t)
	}
	return types, nil
}

// BaselineEnrichers returns the enrichers applied to the baseline's
// system information.
func (c *BaselineConfiguration) BaselineEnrichers(deps Dependencies) []collector.Enricher {
	if c.Kubernetes == nil || deps.KubeClient == nil || c.Kubernetes.BaselineNodeName == "" {
		return nil
	}
	return []collector.Enricher{collector.KubernetesEnricher(deps.KubeClient, c.Kubernetes.BaselineNodeName)}
}

// BuildRunner validates the configuration, resolves the baseline identity
// and returns a runner for it.
func (c *BaselineConfiguration) BuildRunner(ctx context.Context, deps Dependencies) (*runner.BlockingRunner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	info, err := c.ResolveIdentity(ctx, deps.API)
	if err != nil {
		return nil, err
	}

	types, err := c.BuildEvaluators(deps)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", c.ConfigurationName, err)
	}

	source := deps.Factory.Create(c.NodeAddress, c.BaselineEnrichers(deps)...)

	r, err := runner.New(
		runner.WithBaseline(info, source),
		runner.WithNodeIdentityEvaluator(direct.NewNodeIdentityEvaluator(deps.API)),
		runner.WithEvaluators(types...),
		runner.WithMetricsFetchDelay(time.Duration(c.RunnerArgs.MetricsFetchDelaySecs)*time.Second),
		runner.WithClock(deps.Clock),
	)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", c.ConfigurationName, err)
	}

	slog.Info("built baseline runner", "configuration", c.ConfigurationName,
		"baseline", c.NodeAddress.URL, "evaluators", c.Evaluators)
	return r, nil
}
