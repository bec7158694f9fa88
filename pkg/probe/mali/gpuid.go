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

package mali

import "github.com/NVIDIA/gpu-probe/pkg/gpu"

// GPU_ID register layouts.
//
// Legacy (Midgard through early Valhall), 32 significant bits:
//
//	31:16 product ID
//	15:12 version major
//	11:4  version minor
//	3:0   version status
//
// 64-bit (CSF era, arch 12+), marked by 0xF in bits 31:28 where the
// legacy layout keeps the product's top nibble:
//
//	63:56 arch major
//	55:48 arch minor
//	47:40 arch rev
//	39:32 product major
//	31:24 version major
//	23:16 version minor
//	15:8  version status

// is64BitID reports whether the raw register uses the 64-bit layout.
func is64BitID(raw uint64) bool {
	return (raw>>28)&0xF == 0xF
}

// decodeRevision extracts the silicon revision from either layout.
func decodeRevision(raw uint64) gpu.Revision {
	if is64BitID(raw) {
		return gpu.Revision{
			Major: int((raw >> 24) & 0xFF),
			Minor: int((raw >> 16) & 0xFF),
			Patch: int((raw >> 8) & 0xFF),
		}
	}
	return gpu.Revision{
		Major: int((raw >> 12) & 0xF),
		Minor: int((raw >> 4) & 0xFF),
		Patch: int(raw & 0xF),
	}
}

// archMajor extracts the architecture major version. In the legacy
// layout the top nibble of the product ID doubles as the architecture
// number for Bifrost and Valhall products.
func archMajor(raw uint64) uint32 {
	if is64BitID(raw) {
		return uint32((raw >> 56) & 0xFF)
	}
	return uint32((raw >> 28) & 0xF)
}

// familyForArch maps an architecture major version to a product family.
// Used only when the product is not in the database; matched products
// carry the family on their database entry.
func familyForArch(major uint32) gpu.Family {
	switch {
	case major < 6:
		return gpu.FamilyMidgard
	case major < 9:
		return gpu.FamilyBifrost
	case major < 12:
		return gpu.FamilyValhall
	default:
		return gpu.FamilyArm5thGen
	}
}
