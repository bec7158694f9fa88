/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
	"github.com/NVIDIA/gpu-probe/pkg/probe/adreno"
	"github.com/NVIDIA/gpu-probe/pkg/probe/mali"
)

// querier is satisfied by both vendor probers.
type querier interface {
	Query(ctx context.Context, path string) (*gpu.Info, error)
}

func maliCmd() *cli.Command {
	return vendorCmd("mali", "Query a Mali GPU through the kbase driver",
		mali.DefaultDevicePath,
		func(strict bool) querier { return &mali.Prober{Strict: strict} })
}

func adrenoCmd() *cli.Command {
	return vendorCmd("adreno", "Query an Adreno GPU through the KGSL driver",
		adreno.DefaultDevicePath,
		func(strict bool) querier { return &adreno.Prober{Strict: strict} })
}

func vendorCmd(name, usage, defaultDevice string, newProber func(strict bool) querier) *cli.Command {
	deviceFlag := &cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Device node to query",
		Sources: cli.EnvVars("GPUPROBE_DEVICE"),
		Value:   defaultDevice,
	}

	return &cli.Command{
		Name:                  name,
		Usage:                 usage,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			deviceFlag,
			strictFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// reject a bad format before touching any device
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			p := newProber(cmd.Bool("strict"))
			info, err := p.Query(ctx, cmd.String("device"))
			if err != nil {
				return err
			}
			return writeRecord(ctx, cmd, info)
		},
	}
}
