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

// Package adreno identifies Qualcomm Adreno GPUs through the KGSL
// kernel driver.
//
// # Protocol
//
// A query opens the device node (conventionally /dev/kgsl-3d0) and
// issues the KGSL DEVICE_GETPROPERTY ioctl requesting the DEVICE_INFO
// property, a fixed structure carrying the chip ID, GMEM geometry, and
// related registers.
//
// # Chip ID Layouts
//
// Newer KGSL drivers report the chip ID as four packed bytes (arch
// major, arch minor, generation, revision). Older drivers report a
// single opaque word. The driver does not say which layout it used, so
// the decoder attempts the split layout first and falls back to the
// legacy one when the decoded generation byte is out of its valid
// range. This is a plausibility heuristic inherited from the driver
// lineage, not a guaranteed-correct parse; a chip ID that happens to
// look like the other layout decodes wrong.
//
// # Confidence
//
// Chip IDs found in the database verbatim resolve as Exact when the
// entry's figures are measured or reverse engineered, Approximate when
// the entry itself is heuristic. An ID matching only on its upper half
// resolves as Approximate. Unlisted IDs resolve as Unknown with a
// synthesized series name and the raw chip ID preserved.
package adreno
