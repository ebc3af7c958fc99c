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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/config"
	"github.com/NVIDIA/node-checker/pkg/defaults"
	"github.com/NVIDIA/node-checker/pkg/k8s/client"
	"github.com/NVIDIA/node-checker/pkg/node"
	"github.com/NVIDIA/node-checker/pkg/oci"
	"github.com/NVIDIA/node-checker/pkg/report"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

// checkOptions holds the parsed flags of the check command.
type checkOptions struct {
	configPath   string
	kubeconfig   string
	target       node.Address
	nodeName     string
	hostInfo     bool
	systemdUnits []string
	timeout      time.Duration
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check a target node against a baseline configuration",
		Description: `Run every evaluator of a baseline configuration against a target node and
write a check report.

The target is first compared with the baseline's identity (chain and role).
When it differs the report only carries that result and the status is
identity_mismatch. Otherwise system information and two rounds of metrics are
read from both nodes and every configured evaluator runs.

# Examples

Check a node against a local configuration:
  nodecheck check --config devnet.yaml --node-url http://10.0.0.5

Read the configuration from a ConfigMap and store the report in another:
  nodecheck check -c cm://monitoring/devnet-baseline --node-url http://node-1 \
    --node-name node-1 -o cm://monitoring/node-1-report

Publish the report to an OCI registry and fail CI when the node does not pass:
  nodecheck check -c devnet.yaml --node-url http://node-1 \
    --push oci://ghcr.io/acme/node-reports:node-1 --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Required: true,
				Sources:  cli.EnvVars("NODECHECK_CONFIG"),
				Usage: `Path/URI to the baseline configuration.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.StringFlag{
				Name:     "node-url",
				Aliases:  []string{"u"},
				Required: true,
				Usage:    "URL of the target node, e.g. http://10.0.0.5",
			},
			&cli.UintFlag{
				Name:  "api-port",
				Usage: fmt.Sprintf("API port of the target node (default %d)", node.DefaultAPIPort),
			},
			&cli.UintFlag{
				Name:  "metrics-port",
				Usage: fmt.Sprintf("Metrics port of the target node (default %d)", node.DefaultMetricsPort),
			},
			&cli.StringFlag{
				Name:  "node-name",
				Usage: "Kubernetes node name of the target; adds its Node object to the target's system information",
			},
			&cli.BoolFlag{
				Name:  "host-info",
				Usage: "Add OS, kernel and sysctl information of the local host to the target's system information (run on the target)",
			},
			&cli.StringSliceFlag{
				Name:  "systemd-unit",
				Usage: "Systemd unit to report with --host-info (can be repeated)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole check",
				Value: defaults.CLICheckTimeout,
			},
			&cli.StringFlag{
				Name:  "push",
				Usage: "Also publish the report to an OCI registry (oci://registry/repository[:tag])",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for --push",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for --push",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if the target does not pass",
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			var pushRef *oci.Reference
			if target := cmd.String("push"); target != "" {
				if pushRef, err = oci.ParseReference(target); err != nil {
					return err
				}
			}

			opts, err := checkOptionsFrom(cmd)
			if err != nil {
				return err
			}

			deps, err := checkDependencies(opts)
			if err != nil {
				return err
			}

			rep, err := runCheck(ctx, opts, deps)
			if err != nil {
				return err
			}

			if err := writeOutput(ctx, rep, outFormat, cmd.String("output")); err != nil {
				return err
			}
			printSummary(errWriterOf(cmd), rep)

			if pushRef != nil {
				if err := pushReport(ctx, rep, outFormat, pushRef, cmd.Bool("plain-http"), cmd.Bool("insecure-tls")); err != nil {
					return err
				}
			}

			if rep.Status == report.StatusError {
				return fmt.Errorf("check failed in stage %q: %s", rep.Error.Stage, rep.Error.Message)
			}
			if cmd.Bool("fail-on-error") && !rep.Passed() {
				return ErrCheckFailed
			}
			return nil
		},
	}
}

func checkOptionsFrom(cmd *cli.Command) (checkOptions, error) {
	apiPort, err := portFlag(cmd, "api-port")
	if err != nil {
		return checkOptions{}, err
	}
	metricsPort, err := portFlag(cmd, "metrics-port")
	if err != nil {
		return checkOptions{}, err
	}
	target, err := node.NewAddress(cmd.String("node-url"), apiPort, metricsPort)
	if err != nil {
		return checkOptions{}, fmt.Errorf("invalid target: %w", err)
	}
	return checkOptions{
		configPath:   cmd.String("config"),
		kubeconfig:   cmd.String("kubeconfig"),
		target:       target,
		nodeName:     cmd.String("node-name"),
		hostInfo:     cmd.Bool("host-info"),
		systemdUnits: cmd.StringSlice("systemd-unit"),
		timeout:      cmd.Duration("timeout"),
	}, nil
}

func portFlag(cmd *cli.Command, flag string) (uint16, error) {
	v := cmd.Uint(flag)
	if v > 65535 {
		return 0, fmt.Errorf("--%s must be at most 65535, got %d", flag, v)
	}
	return uint16(v), nil
}

// checkDependencies wires a Kubernetes client only when something needs one.
func checkDependencies(opts checkOptions) (config.Dependencies, error) {
	deps := config.Dependencies{Factory: collector.NewDefaultFactory()}
	if opts.nodeName == "" {
		return deps, nil
	}
	cs, _, err := client.GetKubeClientWithConfig(opts.kubeconfig)
	if err != nil {
		return deps, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	deps.KubeClient = cs
	return deps, nil
}

// runCheck loads the configuration, runs it against the target and returns
// the report. A failed run still yields a report with StatusError; only
// setup problems are returned as errors.
func runCheck(ctx context.Context, opts checkOptions, deps config.Dependencies) (*report.Report, error) {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	slog.Info("loading baseline configuration", "uri", opts.configPath)
	cfg, err := config.Load(opts.configPath, opts.kubeconfig)
	if err != nil {
		return nil, err
	}

	r, err := cfg.BuildRunner(ctx, deps)
	if err != nil {
		return nil, err
	}

	var enrichers []collector.Enricher
	if opts.nodeName != "" && deps.KubeClient != nil {
		enrichers = append(enrichers, collector.KubernetesEnricher(deps.KubeClient, opts.nodeName))
	}
	if opts.hostInfo {
		enrichers = append(enrichers, collector.HostEnrichers(opts.systemdUnits, nil)...)
	}

	factory := deps.Factory
	if factory == nil {
		factory = collector.NewDefaultFactory()
	}
	source := factory.Create(opts.target, enrichers...)

	slog.Info("checking target node",
		"configuration", cfg.ConfigurationName,
		"target", opts.target.String(),
		"evaluators", cfg.Evaluators)

	started := time.Now()
	summary, runErr := r.Run(ctx, opts.target, source)
	finished := time.Now()

	rc := report.Configuration{
		Name:       cfg.ConfigurationName,
		PrettyName: cfg.ConfigurationNamePretty,
		Baseline:   r.Baseline(),
		Evaluators: r.EvaluatorNames(),
	}
	if runErr != nil {
		slog.Error("check run failed", "target", opts.target.String(), "error", runErr)
	}
	return report.New(rc, opts.target, summary, runErr, version, started, finished), nil
}

// writeOutput serializes v to output: a file, a ConfigMap URI or stdout.
func writeOutput(ctx context.Context, v any, format serializer.Format, output string) error {
	ser, err := serializer.NewFileWriterOrStdout(format, output)
	if err != nil {
		return fmt.Errorf("failed to create output writer: %w", err)
	}
	defer func() {
		if c, ok := ser.(serializer.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close output", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func pushReport(ctx context.Context, rep *report.Report, format serializer.Format, ref *oci.Reference, plainHTTP, insecureTLS bool) error {
	// table output is for terminals; registries get a document
	if format == serializer.FormatTable {
		format = serializer.FormatJSON
	}
	data, err := serializer.Marshal(format, rep)
	if err != nil {
		return err
	}
	if ref.Tag == "" {
		ref = ref.WithTag(rep.RunID)
	}

	res, err := oci.Push(ctx, oci.PushOptions{
		Reference: ref,
		FileName:  "report." + format.Extension(),
		Content:   data,
		Version:   version,
		Created:   rep.Timestamp(),
		Annotations: map[string]string{
			oci.AnnotationConfiguration: rep.Configuration.Name,
			oci.AnnotationStatus:        string(rep.Status),
		},
		PlainHTTP:   plainHTTP,
		InsecureTLS: insecureTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to push report: %w", err)
	}
	slog.Info("report pushed", "reference", res.Reference, "digest", res.Digest)
	return nil
}

var titleCaser = cases.Title(language.English)

// printSummary writes a short human readable verdict.
func printSummary(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "%s: %s (%d/%d passed)\n",
		rep.Configuration.Name,
		titleCaser.String(statusWords(rep.Status)),
		rep.Counts.Passed, rep.Counts.Total)

	if rep.Summary == nil {
		if rep.Error != nil {
			fmt.Fprintf(w, "  error in %s: %s\n", rep.Error.Stage, rep.Error.Message)
		}
		return
	}
	for _, res := range rep.Summary.Failed() {
		fmt.Fprintf(w, "  [%3d] %s: %s\n", res.Score, res.EvaluatorName, res.Headline)
	}
}

func statusWords(s report.Status) string {
	if s == report.StatusIdentityMismatch {
		return "identity mismatch"
	}
	return string(s)
}
