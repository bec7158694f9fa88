/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-probe/pkg/detect"
)

func detectCmd() *cli.Command {
	deviceFlag := &cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Device node to probe instead of scanning the well-known nodes",
		Sources: cli.EnvVars("GPUPROBE_DEVICE"),
	}

	return &cli.Command{
		Name:                  "detect",
		Usage:                 "Scan for a GPU and print its identification",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			deviceFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// reject a bad format before touching any device
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			info, err := detect.Detect(ctx, cmd.String("device"))
			if err != nil {
				return err
			}
			return writeRecord(ctx, cmd, info)
		},
	}
}
