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

// Package logging configures structured logging for gpu-probe
// components.
//
// # Overview
//
// This package wraps the standard library slog package with shared
// defaults: structured JSON to stderr, module and version attributes
// on every record, environment-based level configuration through
// LOG_LEVEL, and source location tracking when debug logging is
// active.
//
// # Log Levels
//
// Supported levels (case-insensitive): DEBUG, INFO (default),
// WARN/WARNING, ERROR.
//
// # Usage
//
// Setting the default logger early in main:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("gpuprobe", version)
//
//	    slog.Info("probing devices", "hint", hintPath)
//	    slog.Debug("decoded property stream", "bytes", n)
//	}
//
// Setting an explicit level, as the CLI does from its --log-level
// flag:
//
//	logging.SetDefaultStructuredLoggerWithLevel("gpuprobe", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no
// explicit level is given:
//
//	LOG_LEVEL=debug gpuprobe detect
//
// # Output Format
//
// All logs are written to stderr in JSON:
//
//	{
//	    "time": "2026-08-30T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "msg": "candidate probe failed",
//	    "module": "gpuprobe",
//	    "version": "v0.3.1",
//	    "path": "/dev/mali0"
//	}
package logging
