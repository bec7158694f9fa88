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

// Package mali identifies ARM Mali GPUs through the kbase kernel driver.
//
// # Protocol
//
// A query opens the device node (conventionally /dev/mali0) read-write and
// issues the kbase GET_GPUPROPS ioctl twice: the first call with a nil
// buffer returns the required buffer size as the ioctl return value, the
// second fills the buffer with a packed property stream. Two optional
// handshake ioctls (CSF version check and SET_FLAGS) are attempted first;
// drivers that reject them are still queried.
//
// # Property Stream
//
// The buffer is a sequence of little-endian records. Each record starts
// with a 32-bit key: bits 31:2 are the property ID, bits 1:0 encode the
// value width (1, 2, 4, or 8 bytes). The decoder tracks the product ID,
// L2 cache geometry, raw feature registers, the raw GPU_ID register, and
// the per-core-group shader masks (IDs 64-79), which are OR'd into a
// single core mask whose population count is the shader-core count.
//
// # GPU_ID Layouts
//
// Mali generations lay out the GPU_ID register differently. Bits 31:28
// act as the discriminator: the value 0xF marks the 64-bit CSF-era layout
// (arch major/minor in bits 63:48, version fields in bits 31:8); anything
// else is the legacy 32-bit layout (product in bits 31:16, version in
// bits 15:0). The decoder selects the layout before extracting fields.
//
// # Confidence
//
// A product ID equal to a database key verbatim resolves with Exact
// confidence. A product ID that only matches after masking out
// configuration bits resolves as Approximate. Unlisted silicon is not an
// error: the query returns an Unknown-confidence record with a
// synthesized model name and the raw register preserved.
package mali
