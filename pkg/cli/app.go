/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
	"github.com/NVIDIA/gpu-probe/pkg/logging"
	"github.com/NVIDIA/gpu-probe/pkg/serializer"
)

const name = "gpuprobe"

// overridden during build with ldflags
var version = "dev"

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
		Sources: cli.EnvVars("GPUPROBE_OUTPUT"),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format, one of: %v", serializer.SupportedFormats()),
		Sources: cli.EnvVars("GPUPROBE_FORMAT"),
		Value:   string(serializer.FormatJSON),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Value:   "info",
	}

	strictFlag = &cli.BoolFlag{
		Name:  "strict",
		Usage: "Reject irregular driver responses instead of decoding leniently",
	}
)

// New builds the root command with all subcommands attached.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Identify Mali and Adreno GPUs through their kernel drivers",
		Version: version,
		Flags: []cli.Flag{
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			detectCmd(),
			maliCmd(),
			adrenoCmd(),
		},
	}
}

// Execute runs the CLI. Called by main; SIGINT and SIGTERM cancel the
// command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := New().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)",
			f, serializer.SupportedFormats())
	}
	return f, nil
}

// writeRecord renders an identification record per the output flags.
func writeRecord(ctx context.Context, cmd *cli.Command, info *gpu.Info) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer w.Close()
	return w.Serialize(ctx, info)
}
