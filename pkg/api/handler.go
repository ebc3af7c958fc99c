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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/config"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/evaluator"
	cnserrors "github.com/NVIDIA/node-checker/pkg/errors"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/runner"
	"github.com/NVIDIA/node-checker/pkg/serializer"
	"github.com/NVIDIA/node-checker/pkg/server"
)

// Query parameters of GET /v1/check.
const (
	ParamBaselineConfigurationName = "baseline_configuration_name"
	ParamNodeURL                   = "node_url"
	ParamAPIPort                   = "api_port"
	ParamMetricsPort               = "metrics_port"
	ParamNodeName                  = "node_name"
)

// DefaultMaxConcurrentChecks bounds checks running at once. Each check
// holds connections to two nodes for the whole sampling window.
const DefaultMaxConcurrentChecks = 16

// CheckRunner runs checks against one baseline. *runner.BlockingRunner
// implements it.
type CheckRunner interface {
	Run(ctx context.Context, addr node.Address, source collector.MetricCollector) (*evaluator.Summary, error)
	Baseline() node.Information
	EvaluatorNames() []string
	MetricsFetchDelay() time.Duration
}

// Baseline pairs a configuration with the runner built from it.
type Baseline struct {
	Config *config.BaselineConfiguration
	Runner CheckRunner
}

// HandlerOption configures a CheckHandler.
type HandlerOption func(*CheckHandler)

// WithFactory sets the collector factory used for targets.
func WithFactory(f collector.Factory) HandlerOption {
	return func(h *CheckHandler) {
		h.factory = f
	}
}

// WithKubeClient enables Kubernetes enrichment of targets that pass
// node_name.
func WithKubeClient(cs kubernetes.Interface) HandlerOption {
	return func(h *CheckHandler) {
		h.kubeClient = cs
	}
}

// WithCheckTimeout bounds a single check.
func WithCheckTimeout(d time.Duration) HandlerOption {
	return func(h *CheckHandler) {
		h.timeout = d
	}
}

// WithMaxConcurrentChecks bounds the checks running at once. Requests
// beyond it get 503.
func WithMaxConcurrentChecks(n int64) HandlerOption {
	return func(h *CheckHandler) {
		if n > 0 {
			h.maxConcurrent = n
		}
	}
}

// CheckHandler serves checks against a fixed set of baselines.
type CheckHandler struct {
	baselines     map[string]Baseline
	factory       collector.Factory
	kubeClient    kubernetes.Interface
	timeout       time.Duration
	maxConcurrent int64
	inFlight      *semaphore.Weighted
}

// NewCheckHandler returns a handler for baselines. Configuration names must
// be unique.
func NewCheckHandler(baselines []Baseline, opts ...HandlerOption) (*CheckHandler, error) {
	h := &CheckHandler{
		baselines:     make(map[string]Baseline, len(baselines)),
		timeout:       defaults.CheckHandlerTimeout,
		maxConcurrent: DefaultMaxConcurrentChecks,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.factory == nil {
		h.factory = collector.NewDefaultFactory()
	}
	h.inFlight = semaphore.NewWeighted(h.maxConcurrent)

	for _, b := range baselines {
		if b.Config == nil || b.Runner == nil {
			return nil, fmt.Errorf("baseline requires a configuration and a runner")
		}
		name := b.Config.ConfigurationName
		if _, ok := h.baselines[name]; ok {
			return nil, fmt.Errorf("duplicate baseline configuration %q", name)
		}
		h.baselines[name] = b
	}
	return h, nil
}

// checkQuery is a parsed GET /v1/check request.
type checkQuery struct {
	configuration string
	address       node.Address
	nodeName      string
}

func parseCheckQuery(q url.Values) (*checkQuery, error) {
	name := strings.TrimSpace(q.Get(ParamBaselineConfigurationName))
	if name == "" {
		return nil, fmt.Errorf("%s is required", ParamBaselineConfigurationName)
	}

	apiPort, err := parsePort(q, ParamAPIPort)
	if err != nil {
		return nil, err
	}
	metricsPort, err := parsePort(q, ParamMetricsPort)
	if err != nil {
		return nil, err
	}

	addr, err := node.NewAddress(q.Get(ParamNodeURL), apiPort, metricsPort)
	if err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}

	return &checkQuery{
		configuration: name,
		address:       addr,
		nodeName:      strings.TrimSpace(q.Get(ParamNodeName)),
	}, nil
}

// parsePort returns 0 for an absent parameter so the default applies.
func parsePort(q url.Values, key string) (uint16, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}
	p, err := strconv.ParseUint(v, 10, 16)
	if err != nil || p == 0 {
		return 0, fmt.Errorf("%s must be a port between 1 and 65535, got %q", key, v)
	}
	return uint16(p), nil
}

// HandleCheck handles GET /v1/check. It runs the named baseline against the
// target and responds with the evaluation summary.
func (h *CheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	q, err := parseCheckQuery(r.URL.Query())
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid check request", false, map[string]any{"error": err.Error()})
		return
	}

	b, ok := h.baselines[q.configuration]
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Unknown baseline configuration", false, map[string]any{
				"configuration": q.configuration,
				"available":     h.names(),
			})
		return
	}

	if !h.inFlight.TryAcquire(1) {
		server.SetOutcome(w, outcomeRejected)
		server.WriteError(w, r, http.StatusServiceUnavailable, cnserrors.ErrCodeUnavailable,
			"Too many checks in progress", true, map[string]any{"limit": h.maxConcurrent})
		return
	}
	defer h.inFlight.Release(1)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slog.Info("check started",
		"requestID", server.RequestID(r.Context()),
		"configuration", q.configuration,
		"target", q.address.URL,
	)

	source := h.factory.Create(q.address, h.targetEnrichers(q)...)
	summary, err := b.Runner.Run(ctx, q.address, source)
	if err != nil {
		slog.Warn("check failed", "configuration", q.configuration, "target", q.address.URL, "error", err)
		server.SetOutcome(w, outcomeOf(nil, err))
		server.WriteErrorFromErr(w, r, classify(err), "Check failed", map[string]any{
			"configuration": q.configuration,
			"target":        q.address.URL,
		})
		return
	}

	slog.Info("check completed",
		"configuration", q.configuration,
		"target", q.address.URL,
		"score", summary.SummaryScore,
	)
	server.SetOutcome(w, outcomeOf(summary, nil))
	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, summary)
}

func (h *CheckHandler) targetEnrichers(q *checkQuery) []collector.Enricher {
	if h.kubeClient == nil || q.nodeName == "" {
		return nil
	}
	return []collector.Enricher{collector.KubernetesEnricher(h.kubeClient, q.nodeName)}
}

const (
	outcomePass     = "pass"
	outcomeFail     = "fail"
	outcomeTimeout  = "timeout"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// outcomeOf names the result of a run: pass or fail for a summary, the
// failing stage for a stage error.
func outcomeOf(summary *evaluator.Summary, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case err != nil:
		if stage, ok := runner.StageOf(err); ok {
			return string(stage)
		}
		return outcomeError
	case summary == nil:
		return outcomeError
	case summary.Passed():
		return outcomePass
	default:
		return outcomeFail
	}
}

// classify attaches an error code to a run error. Stage errors are
// failures of the baseline or target; timeouts are reported as such.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return cnserrors.Wrap(cnserrors.ErrCodeTimeout, "check timed out", err)
	}
	if stage, ok := runner.StageOf(err); ok {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUpstream, "node evaluation failed", err,
			map[string]any{"stage": string(stage)})
	}
	return err
}

// ConfigurationInfo describes a loaded baseline configuration.
type ConfigurationInfo struct {
	Name              string       `json:"configuration_name" yaml:"configuration_name"`
	PrettyName        string       `json:"configuration_name_pretty" yaml:"configuration_name_pretty"`
	NodeAddress       node.Address `json:"node_address" yaml:"node_address"`
	ChainID           uint8        `json:"chain_id" yaml:"chain_id"`
	RoleType          string       `json:"role_type" yaml:"role_type"`
	Evaluators        []string     `json:"evaluators" yaml:"evaluators"`
	MetricsFetchDelay string       `json:"metrics_fetch_delay" yaml:"metrics_fetch_delay"`
}

// Configurations returns the loaded configurations sorted by name.
func (h *CheckHandler) Configurations() []ConfigurationInfo {
	out := make([]ConfigurationInfo, 0, len(h.baselines))
	for _, name := range h.names() {
		b := h.baselines[name]
		info := b.Runner.Baseline()
		out = append(out, ConfigurationInfo{
			Name:              name,
			PrettyName:        b.Config.DisplayName(),
			NodeAddress:       info.NodeAddress,
			ChainID:           info.ChainID,
			RoleType:          info.RoleType,
			Evaluators:        b.Runner.EvaluatorNames(),
			MetricsFetchDelay: b.Runner.MetricsFetchDelay().String(),
		})
	}
	return out
}

// HandleConfigurations handles GET /v1/configurations.
func (h *CheckHandler) HandleConfigurations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, h.Configurations())
}

func (h *CheckHandler) names() []string {
	names := make([]string, 0, len(h.baselines))
	for name := range h.baselines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
