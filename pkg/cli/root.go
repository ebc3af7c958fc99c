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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/node-checker/pkg/logging"
	"github.com/NVIDIA/node-checker/pkg/serializer"
)

const (
	name           = "nodecheck"
	versionDefault = "dev"

	// exitCheckFailed is the exit status when --fail-on-error is set and the
	// target did not pass.
	exitCheckFailed = 2
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// ErrCheckFailed is returned by the check command when the target did not
// pass and --fail-on-error is set.
var ErrCheckFailed = errors.New("target node did not pass the check")

// outputFlag, formatFlag and kubeconfigFlag are shared by several commands.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path, ConfigMap URI (cm://namespace/name), or stdout when empty.
	The format follows the file extension unless --format is set.`,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   "Output format (json, yaml, table)",
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file (default: KUBECONFIG, then ~/.kube/config, then in-cluster)",
		Sources: cli.EnvVars("NODECHECK_KUBECONFIG"),
	}
}

// Execute runs the CLI with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, ErrCheckFailed) {
			os.Exit(exitCheckFailed)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Compare a node against a known-good baseline node",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging (same as --log-level=debug)",
				Sources: cli.EnvVars("NODECHECK_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			configurationsCmd(),
			systemInformationCmd(),
			serveCmd(),
		},
		ShellComplete: commandLister,
	}
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(writerOf(cmd), c.Name)
	}
}

// parseOutputFormat returns the --format value, or the format implied by
// the --output extension when --format was not set explicitly.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		if out := cmd.String("output"); out != "" && !serializer.IsConfigMapURI(out) {
			return serializer.FormatFromPath(out), nil
		}
	}
	return serializer.ParseFormat(cmd.String("format"))
}

func writerOf(cmd *cli.Command) io.Writer {
	if cmd.Root() != nil && cmd.Root().Writer != nil {
		return cmd.Root().Writer
	}
	return os.Stdout
}

func errWriterOf(cmd *cli.Command) io.Writer {
	if cmd.Root() != nil && cmd.Root().ErrWriter != nil {
		return cmd.Root().ErrWriter
	}
	return os.Stderr
}
