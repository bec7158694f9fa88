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

// Package detect walks the well-known GPU device nodes and returns the
// first successful identification.
//
// # Candidate Order
//
// With no hint, candidates are tried in a fixed vendor priority: the
// Mali nodes (/dev/mali0 through /dev/mali3) before the Adreno node
// (/dev/kgsl-3d0). The first successful probe wins; an earlier
// candidate failing does not stop later ones. With a hint path, the
// Mali driver then the Adreno driver are tried against that single
// path, since a hint implies the caller knows the node but not
// necessarily the vendor.
//
// # Failure Aggregation
//
// When every candidate fails, Detect returns a NoGPUError carrying the
// failure cause per attempted candidate. Distinguishing wrong
// permissions from an absent node from a too-old driver is the main
// diagnostic value of auto-detection, so earlier causes are never
// dropped in favor of the last one.
package detect
