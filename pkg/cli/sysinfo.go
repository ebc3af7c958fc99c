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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-checker/pkg/collector"
	"github.com/NVIDIA/node-checker/pkg/k8s/client"
)

func systemInformationCmd() *cli.Command {
	return &cli.Command{
		Name:                  "system-information",
		Aliases:               []string{"sysinfo"},
		EnableShellCompletion: true,
		Usage:                 "Print the system information this host would add to a check",
		Description: `Collect the host details that check --host-info attaches to a target's
system information: OS release, kernel, selected sysctl keys and, optionally,
systemd unit state and the Kubernetes Node object of this host.

# Examples

  nodecheck system-information --systemd-unit node.service -t table
  nodecheck system-information --node-name "$NODE_NAME" -o cm://monitoring/node-1-sysinfo`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "systemd-unit",
				Usage: "Systemd unit to report (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "sysctl",
				Usage: "Sysctl key pattern to report, e.g. net.core.* (can be repeated; default: built-in set)",
			},
			&cli.StringFlag{
				Name:    "node-name",
				Usage:   "Kubernetes node name of this host",
				Sources: cli.EnvVars("NODE_NAME"),
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

			var patterns []string
			if cmd.IsSet("sysctl") {
				patterns = cmd.StringSlice("sysctl")
			}
			enrichers := collector.HostEnrichers(cmd.StringSlice("systemd-unit"), patterns)

			if nodeName := cmd.String("node-name"); nodeName != "" {
				cs, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
				if err != nil {
					return err
				}
				enrichers = append(enrichers, collector.KubernetesEnricher(cs, nodeName))
			}

			m, err := collector.CollectLocal(ctx, enrichers...)
			if err != nil {
				return err
			}
			return writeOutput(ctx, m, outFormat, cmd.String("output"))
		},
	}
}
