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

package gpu

import "fmt"

// Vendor identifies the GPU vendor a record was obtained from.
type Vendor string

const (
	VendorMali    Vendor = "Mali"
	VendorAdreno  Vendor = "Adreno"
	VendorUnknown Vendor = "Unknown"
)

// Vendors is the list of all supported vendors, in detection priority order.
var Vendors = []Vendor{
	VendorMali,
	VendorAdreno,
}

// String returns the human-readable vendor name.
func (v Vendor) String() string {
	switch v {
	case VendorMali:
		return "ARM Mali"
	case VendorAdreno:
		return "Qualcomm Adreno"
	default:
		return "Unknown"
	}
}

// Family is the architecture generation of a GPU. Values are vendor-specific.
type Family string

const (
	// ARM Mali generations.
	FamilyMidgard   Family = "Midgard"
	FamilyBifrost   Family = "Bifrost"
	FamilyValhall   Family = "Valhall"
	FamilyArm5thGen Family = "Arm 5th Gen"

	// Qualcomm Adreno generations.
	FamilyAdreno4xx Family = "Adreno 4xx"
	FamilyAdreno5xx Family = "Adreno 5xx"
	FamilyAdreno6xx Family = "Adreno 6xx"
	FamilyAdreno7xx Family = "Adreno 7xx"
	FamilyAdreno8xx Family = "Adreno 8xx"

	FamilyUnknown Family = "Unknown"
)

// String returns the string representation of the Family.
func (f Family) String() string {
	return string(f)
}

// Confidence describes how a record's model name was resolved.
type Confidence string

const (
	// ConfidenceExact means the raw ID matched a database entry verbatim.
	ConfidenceExact Confidence = "Exact"
	// ConfidenceApproximate means a masked or partial database match was used.
	ConfidenceApproximate Confidence = "Approximate"
	// ConfidenceUnknown means only decoded raw fields are available.
	ConfidenceUnknown Confidence = "Unknown"
)

// String returns the string representation of the Confidence.
func (c Confidence) String() string {
	return string(c)
}

// Info is the unified GPU identification record. It is immutable once
// constructed; see the package documentation for the confidence contract.
type Info struct {
	Vendor         Vendor     `json:"vendor" yaml:"vendor"`
	Family         Family     `json:"family" yaml:"family"`
	ModelName      string     `json:"model" yaml:"model"`
	Revision       Revision   `json:"revision" yaml:"revision"`
	NumShaderCores uint32     `json:"shaderCores" yaml:"shaderCores"`
	Confidence     Confidence `json:"confidence" yaml:"confidence"`

	// RawID is the undecoded source register, retained for diagnostics
	// regardless of confidence. For Mali this is the raw GPU_ID register,
	// for Adreno the KGSL chip ID.
	RawID uint64 `json:"rawId" yaml:"rawId"`

	// Vendor-specific data, populated for the matching vendor only.
	Mali   *MaliData   `json:"mali,omitempty" yaml:"mali,omitempty"`
	Adreno *AdrenoData `json:"adreno,omitempty" yaml:"adreno,omitempty"`
}

// MaliData holds Mali-specific fields decoded from the kbase property buffer.
type MaliData struct {
	ProductID          uint32 `json:"productId" yaml:"productId"`
	RawGPUID           uint64 `json:"rawGpuId" yaml:"rawGpuId"`
	ShaderCoreMask     uint64 `json:"shaderCoreMask" yaml:"shaderCoreMask"`
	NumL2Slices        uint64 `json:"l2Slices" yaml:"l2Slices"`
	NumL2Bytes         uint64 `json:"l2Bytes" yaml:"l2Bytes"`
	NumBusBits         uint64 `json:"busBits,omitempty" yaml:"busBits,omitempty"`
	NumExecEngines     uint32 `json:"execEngines,omitempty" yaml:"execEngines,omitempty"`
	NumFP32FMAsPerCore uint32 `json:"fp32FmasPerCore,omitempty" yaml:"fp32FmasPerCore,omitempty"`
	NumFP16FMAsPerCore uint32 `json:"fp16FmasPerCore,omitempty" yaml:"fp16FmasPerCore,omitempty"`
	NumTexelsPerCore   uint32 `json:"texelsPerCore,omitempty" yaml:"texelsPerCore,omitempty"`
	NumPixelsPerCore   uint32 `json:"pixelsPerCore,omitempty" yaml:"pixelsPerCore,omitempty"`
}

// AdrenoData holds Adreno-specific fields from the KGSL device info struct
// and the chip database.
type AdrenoData struct {
	ChipID           uint32   `json:"chipId" yaml:"chipId"`
	GPUModelCode     uint32   `json:"gpuModelCode,omitempty" yaml:"gpuModelCode,omitempty"`
	MMUEnabled       bool     `json:"mmuEnabled" yaml:"mmuEnabled"`
	GMEMSizeBytes    uint32   `json:"gmemSizeBytes" yaml:"gmemSizeBytes"`
	StreamProcessors uint32   `json:"streamProcessors,omitempty" yaml:"streamProcessors,omitempty"`
	MaxFreqMHz       uint32   `json:"maxFreqMhz,omitempty" yaml:"maxFreqMhz,omitempty"`
	ProcessNM        uint32   `json:"processNm,omitempty" yaml:"processNm,omitempty"`
	ReleaseYear      uint32   `json:"releaseYear,omitempty" yaml:"releaseYear,omitempty"`
	SnapdragonModels []string `json:"snapdragonModels,omitempty" yaml:"snapdragonModels,omitempty"`
}

// String returns a one-line human-readable summary of the record.
func (i *Info) String() string {
	return fmt.Sprintf("%s (%s), revision %s, cores: %d, confidence: %s, raw: 0x%X",
		i.ModelName, i.Family, i.Revision, i.NumShaderCores, i.Confidence, i.RawID)
}
