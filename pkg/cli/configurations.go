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

	"github.com/NVIDIA/node-checker/pkg/config"
)

func configurationsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "configurations",
		Aliases:               []string{"configs"},
		EnableShellCompletion: true,
		Usage:                 "Validate baseline configurations and print them with defaults applied",
		Description: `Load one or more baseline configurations, validate them and print the
effective documents, including every evaluator argument default.

# Examples

  nodecheck configurations -c devnet.yaml -c cm://monitoring/mainnet-baseline
  nodecheck configurations -c devnet.yaml --evaluators`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Sources: cli.EnvVars("NODECHECK_CONFIGS"),
				Usage:   "Path/URI to a baseline configuration (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "evaluators",
				Usage: "List the evaluator names a configuration may use and exit",
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("evaluators") {
				for _, n := range config.EvaluatorNames() {
					fmt.Fprintln(writerOf(cmd), n)
				}
				return nil
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			configs, err := config.LoadAll(cmd.StringSlice("config"), cmd.String("kubeconfig"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, configs, outFormat, cmd.String("output"))
		},
	}
}
