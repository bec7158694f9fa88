/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the gpuprobe
// tool.
//
// # Overview
//
// The gpuprobe CLI identifies the GPU on embedded and mobile-class
// Linux systems by talking directly to the vendor kernel drivers. It
// is designed for fleet diagnostics and provisioning scripts that need
// to know the exact silicon before any vendor userspace is installed.
//
// # Commands
//
// detect - Auto-detect the GPU:
//
//	gpuprobe detect [--device PATH] [--output FILE] [--format json|yaml|table]
//
// Walks the well-known device nodes (Mali before Adreno) and reports
// the first GPU that answers. With --device, tries each vendor driver
// against that single node.
//
// mali - Query a Mali device node:
//
//	gpuprobe mali [--device /dev/mali0] [--strict]
//
// adreno - Query an Adreno device node:
//
//	gpuprobe adreno [--device /dev/kgsl-3d0] [--strict]
//
// # Common Flags
//
//	--output, -o     Output file path (default: stdout)
//	--format, -t     Output format: json, yaml, table (default: json)
//	--log-level      Log level: debug, info, warn, error (default: info)
//	--help, -h       Show command help
//	--version, -v    Show version information
package cli
