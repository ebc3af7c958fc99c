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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-checker/pkg/api"
	"github.com/NVIDIA/node-checker/pkg/defaults"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the check API over HTTP",
		Description: fmt.Sprintf(`Load baseline configurations and serve:

  GET %s?baseline_configuration_name=NAME&node_url=URL[&api_port=N][&metrics_port=N][&node_name=NODE]
  GET %s
  GET /health, /ready, /metrics

# Examples

  nodecheck serve -c devnet.yaml -c mainnet.yaml --port 8080
  nodecheck serve -c cm://monitoring/devnet-baseline --kubernetes`, api.RouteCheck, api.RouteConfigurations),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Required: true,
				Sources:  cli.EnvVars("NODECHECK_CONFIGS"),
				Usage:    "Path/URI to a baseline configuration (can be repeated)",
			},
			&cli.StringFlag{
				Name:    "address",
				Usage:   "Listen address (default: all interfaces)",
				Sources: cli.EnvVars("NODECHECK_ADDRESS"),
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: PORT or 8080)",
			},
			&cli.DurationFlag{
				Name:    "check-timeout",
				Usage:   "Timeout for a single check request",
				Value:   defaults.CheckHandlerTimeout,
				Sources: cli.EnvVars("NODECHECK_CHECK_TIMEOUT"),
			},
			&cli.IntFlag{
				Name:    "max-concurrent-checks",
				Usage:   "Checks served at once; further requests get 503",
				Value:   api.DefaultMaxConcurrentChecks,
				Sources: cli.EnvVars("NODECHECK_MAX_CONCURRENT_CHECKS"),
			},
			&cli.BoolFlag{
				Name:    "kubernetes",
				Usage:   "Attach Kubernetes Node objects to system information (requires cluster access)",
				Sources: cli.EnvVars("NODECHECK_KUBERNETES"),
			},
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve(ctx, serveOptionsFrom(cmd))
		},
	}
}

func serveOptionsFrom(cmd *cli.Command) api.ServeOptions {
	return api.ServeOptions{
		ConfigPaths:         cmd.StringSlice("config"),
		Kubeconfig:          cmd.String("kubeconfig"),
		Address:             cmd.String("address"),
		Port:                int(cmd.Int("port")),
		CheckTimeout:        cmd.Duration("check-timeout"),
		MaxConcurrentChecks: int64(cmd.Int("max-concurrent-checks")),
		Kubernetes:          cmd.Bool("kubernetes"),
	}
}
