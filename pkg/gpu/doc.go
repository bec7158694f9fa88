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

// Package gpu defines the vendor-neutral GPU identification record and its
// supporting types.
//
// # Overview
//
// An Info value is the result of one identification query against a vendor
// kernel driver. It carries the resolved model name, architecture family,
// silicon revision, shader-core count, and a confidence level describing how
// the model name was obtained. The raw identification registers are always
// retained for diagnostics, even when the database resolved an exact match.
//
// # Confidence Levels
//
// The Confidence field distinguishes three outcomes:
//
//   - ConfidenceExact: the raw ID matched a chip database entry verbatim,
//     and ModelName is the database entry's name.
//   - ConfidenceApproximate: a masked or partial database match was used;
//     the name is the best available guess for the family.
//   - ConfidenceUnknown: no database entry matched; ModelName is synthesized
//     from the decoded raw fields.
//
// ConfidenceExact implies the model name came from the database, never a
// synthesized label.
//
// # Immutability
//
// An Info is a query-result snapshot, not a live handle to the device. It is
// never mutated after construction and is safe to share between goroutines.
//
// # Usage
//
//	info, err := detect.Detect(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%s), %d cores, revision %s\n",
//	    info.ModelName, info.Family, info.NumShaderCores, info.Revision)
package gpu
