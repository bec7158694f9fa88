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

package adreno

import "github.com/NVIDIA/gpu-probe/pkg/gpu"

// chipVersion is a decoded chip ID. Legacy marks IDs that failed the
// split-layout plausibility check and carry only the series byte.
type chipVersion struct {
	ArchMajor uint8
	ArchMinor uint8
	Gen       uint8
	Rev       uint8
	Legacy    bool
}

// Generation values observed on real silicon stay in the low nibble;
// anything above marks the split decode as implausible.
const maxGenField = 0x0F

// decodeChipID splits a chip ID into its version fields. The split
// layout (0xAABBCCDD: arch major, arch minor, generation, revision) is
// tried first; when the generation byte is out of range the word is
// treated as a legacy single-field ID and only the series byte is
// trusted. The fallback is probabilistic: the driver does not report
// which layout it used.
func decodeChipID(id uint32) chipVersion {
	v := chipVersion{
		ArchMajor: uint8(id >> 24),
		ArchMinor: uint8(id >> 16),
		Gen:       uint8(id >> 8),
		Rev:       uint8(id),
	}
	if v.Gen <= maxGenField {
		return v
	}
	return chipVersion{ArchMajor: uint8(id >> 24), Legacy: true}
}

// revision maps the decoded fields onto the common revision type.
// Legacy IDs carry no trustworthy revision.
func (v chipVersion) revision() gpu.Revision {
	if v.Legacy {
		return gpu.Revision{}
	}
	return gpu.Revision{Major: int(v.Gen), Minor: int(v.Rev)}
}

// familyForSeries maps the chip ID series byte to a product family.
func familyForSeries(major uint8) gpu.Family {
	switch major {
	case 4:
		return gpu.FamilyAdreno4xx
	case 5:
		return gpu.FamilyAdreno5xx
	case 6:
		return gpu.FamilyAdreno6xx
	case 7:
		return gpu.FamilyAdreno7xx
	case 8:
		return gpu.FamilyAdreno8xx
	default:
		return gpu.FamilyUnknown
	}
}
