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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/config"
	"github.com/NVIDIA/node-checker/pkg/k8s/client"
	"github.com/NVIDIA/node-checker/pkg/logging"
	"github.com/NVIDIA/node-checker/pkg/server"
)

const (
	name           = "nodecheckd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/node-checker/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Route paths served by the API.
const (
	RouteCheck          = "/v1/check"
	RouteConfigurations = "/v1/configurations"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	// ConfigPaths lists baseline configurations: files, http(s) URLs or
	// cm://namespace/name ConfigMaps.
	ConfigPaths []string

	// Kubeconfig is used for ConfigMap configurations and Kubernetes
	// enrichment. Empty means automatic discovery.
	Kubeconfig string

	// Address and Port override the listen address. Zero Port keeps the
	// server default (PORT or 8080).
	Address string
	Port    int

	// CheckTimeout and MaxConcurrentChecks bound check requests. Zero
	// values keep the handler defaults.
	CheckTimeout        time.Duration
	MaxConcurrentChecks int64

	// Kubernetes enables enrichment of baselines and targets with their
	// Kubernetes Node objects.
	Kubernetes bool
}

// Environment variables read by OptionsFromEnv.
const (
	EnvConfigs             = "NODECHECK_CONFIGS"
	EnvAddress             = "NODECHECK_ADDRESS"
	EnvCheckTimeout        = "NODECHECK_CHECK_TIMEOUT"
	EnvMaxConcurrentChecks = "NODECHECK_MAX_CONCURRENT_CHECKS"
	EnvKubernetes          = "NODECHECK_KUBERNETES"
	EnvKubeconfig          = "KUBECONFIG"
)

// OptionsFromEnv builds ServeOptions from the environment. NODECHECK_CONFIGS
// is a comma separated list of configuration paths or URIs.
func OptionsFromEnv() (ServeOptions, error) {
	opts := ServeOptions{
		Address:    os.Getenv(EnvAddress),
		Kubeconfig: os.Getenv(EnvKubeconfig),
	}
	for _, p := range strings.Split(os.Getenv(EnvConfigs), ",") {
		if p = strings.TrimSpace(p); p != "" {
			opts.ConfigPaths = append(opts.ConfigPaths, p)
		}
	}
	if v := os.Getenv(EnvCheckTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: %w", EnvCheckTimeout, v, err)
		}
		opts.CheckTimeout = d
	}
	if v := os.Getenv(EnvMaxConcurrentChecks); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("invalid %s %q: must be a positive integer", EnvMaxConcurrentChecks, v)
		}
		opts.MaxConcurrentChecks = n
	}
	if v := os.Getenv(EnvKubernetes); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: %w", EnvKubernetes, v, err)
		}
		opts.Kubernetes = b
	}
	return opts, nil
}

// Routes returns the API routes served by h.
func Routes(h *CheckHandler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteCheck:          h.HandleCheck,
		RouteConfigurations: h.HandleConfigurations,
	}
}

// Serve loads the baseline configurations, builds a runner for each and
// serves the API until ctx is done or the process is signaled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	h, err := NewHandlerFromConfigs(ctx, opts)
	if err != nil {
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithAddress(opts.Address, opts.Port),
		server.WithHandler(Routes(h)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// NewHandlerFromConfigs loads opts.ConfigPaths and builds a CheckHandler
// with one runner per configuration.
func NewHandlerFromConfigs(ctx context.Context, opts ServeOptions) (*CheckHandler, error) {
	configs, err := config.LoadAll(opts.ConfigPaths, opts.Kubeconfig)
	if err != nil {
		return nil, err
	}

	deps := config.Dependencies{Factory: collector.NewDefaultFactory()}
	if opts.Kubernetes {
		cs, _, err := client.GetKubeClientWithConfig(opts.Kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		deps.KubeClient = cs
	}

	baselines := make([]Baseline, 0, len(configs))
	for _, c := range configs {
		r, err := c.BuildRunner(ctx, deps)
		if err != nil {
			return nil, fmt.Errorf("failed to build runner for %s: %w", c.ConfigurationName, err)
		}
		baselines = append(baselines, Baseline{Config: c, Runner: r})
	}

	hopts := []HandlerOption{WithFactory(deps.Factory)}
	if deps.KubeClient != nil {
		hopts = append(hopts, WithKubeClient(deps.KubeClient))
	}
	if opts.CheckTimeout > 0 {
		hopts = append(hopts, WithCheckTimeout(opts.CheckTimeout))
	}
	if opts.MaxConcurrentChecks > 0 {
		hopts = append(hopts, WithMaxConcurrentChecks(opts.MaxConcurrentChecks))
	}
	return NewCheckHandler(baselines, hopts...)
}
