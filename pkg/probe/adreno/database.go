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

import (
	"fmt"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

// provenance records how a database entry's figures were obtained.
// Qualcomm does not publish most of them; measured and reverse
// engineered entries are trustworthy, heuristic ones are estimates.
type provenance int

const (
	provMeasured provenance = iota
	provReverseEngineered
	provHeuristic
)

// chipSpecs describes one Adreno product.
type chipSpecs struct {
	Name             string
	Family           gpu.Family
	ShaderCores      uint32
	StreamProcessors uint32
	GMEMSizeKB       uint32
	BusWidthBits     uint32
	MaxFreqMHz       uint32
	ProcessNM        uint32
	Year             uint32
	Snapdragons      []string
	Provenance       provenance
}

type chipEntry struct {
	ID    uint32
	Specs chipSpecs
}

var chips = []chipEntry{
	// Adreno 7xx
	{0x07030001, chipSpecs{Name: "Adreno 730", Family: gpu.FamilyAdreno7xx,
		ShaderCores: 4, StreamProcessors: 768, GMEMSizeKB: 2048, BusWidthBits: 128,
		MaxFreqMHz: 900, ProcessNM: 4, Year: 2022,
		Snapdragons: []string{"8 Gen 1", "8+ Gen 1"}, Provenance: provMeasured}},
	{0x07060001, chipSpecs{Name: "Adreno 740", Family: gpu.FamilyAdreno7xx,
		ShaderCores: 6, StreamProcessors: 1024, GMEMSizeKB: 3072, BusWidthBits: 256,
		MaxFreqMHz: 680, ProcessNM: 4, Year: 2023,
		Snapdragons: []string{"8 Gen 2"}, Provenance: provMeasured}},
	{0x07050000, chipSpecs{Name: "Adreno 750", Family: gpu.FamilyAdreno7xx,
		ShaderCores: 6, StreamProcessors: 1536, GMEMSizeKB: 4096, BusWidthBits: 256,
		MaxFreqMHz: 1000, ProcessNM: 4, Year: 2023,
		Snapdragons: []string{"8 Gen 3"}, Provenance: provReverseEngineered}},

	// Adreno 6xx
	{0x06010000, chipSpecs{Name: "Adreno 610", Family: gpu.FamilyAdreno6xx,
		ShaderCores: 2, StreamProcessors: 128, GMEMSizeKB: 384, BusWidthBits: 64,
		MaxFreqMHz: 950, ProcessNM: 11, Year: 2019,
		Snapdragons: []string{"460", "662", "665"}, Provenance: provMeasured}},
	{0x06010001, chipSpecs{Name: "Adreno 618", Family: gpu.FamilyAdreno6xx,
		ShaderCores: 2, StreamProcessors: 256, GMEMSizeKB: 512, BusWidthBits: 64,
		MaxFreqMHz: 825, ProcessNM: 8, Year: 2019,
		Snapdragons: []string{"730", "732G", "735G", "SM7150"}, Provenance: provMeasured}},
	{0x06010500, chipSpecs{Name: "Adreno 619", Family: gpu.FamilyAdreno6xx,
		ShaderCores: 2, StreamProcessors: 256, GMEMSizeKB: 512, BusWidthBits: 64,
		MaxFreqMHz: 950, ProcessNM: 8, Year: 2020,
		Snapdragons: []string{"750G", "690", "480"}, Provenance: provMeasured}},
	{0x06010200, chipSpecs{Name: "Adreno 612/615/616", Family: gpu.FamilyAdreno6xx,
		ShaderCores: 2, StreamProcessors: 256, GMEMSizeKB: 768, BusWidthBits: 64,
		MaxFreqMHz: 850, ProcessNM: 10, Year: 2019,
		Snapdragons: []string{"670", "675", "710", "712"}, Provenance: provHeuristic}},
	{0x06020000, chipSpecs{Name: "Adreno 620", Family: gpu.FamilyAdreno6xx,
		ShaderCores: 2, StreamProcessors: 256, GMEMSizeKB: 768, BusWidthBits: 64,
		MaxFreqMHz: 750, ProcessNM: 8, Year: 2020,
		Snapdragons: []string{"765", "765G", "768G"}, Provenance: provReverseEngineered}},

	// Adreno 5xx
	{0x05000000, chipSpecs{Name: "Adreno 504/505", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 1, StreamProcessors: 96, GMEMSizeKB: 256, BusWidthBits: 32,
		MaxFreqMHz: 450, ProcessNM: 28, Year: 2016,
		Snapdragons: []string{"425", "429", "430", "435", "439"}, Provenance: provReverseEngineered}},
	{0x05060000, chipSpecs{Name: "Adreno 506", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 1, StreamProcessors: 128, GMEMSizeKB: 256, BusWidthBits: 32,
		MaxFreqMHz: 650, ProcessNM: 14, Year: 2016,
		Snapdragons: []string{"450", "625", "626", "632"}, Provenance: provMeasured}},
	{0x05080000, chipSpecs{Name: "Adreno 508", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 2, StreamProcessors: 128, GMEMSizeKB: 256, BusWidthBits: 64,
		MaxFreqMHz: 650, ProcessNM: 14, Year: 2017,
		Snapdragons: []string{"630", "632"}, Provenance: provReverseEngineered}},
	{0x05090000, chipSpecs{Name: "Adreno 509", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 2, StreamProcessors: 128, GMEMSizeKB: 384, BusWidthBits: 64,
		MaxFreqMHz: 720, ProcessNM: 14, Year: 2017,
		Snapdragons: []string{"636", "638"}, Provenance: provReverseEngineered}},
	{0x05120000, chipSpecs{Name: "Adreno 512", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 2, StreamProcessors: 256, GMEMSizeKB: 512, BusWidthBits: 64,
		MaxFreqMHz: 850, ProcessNM: 14, Year: 2017,
		Snapdragons: []string{"660", "662"}, Provenance: provReverseEngineered}},
	{0x05010000, chipSpecs{Name: "Adreno 510", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 2, StreamProcessors: 128, GMEMSizeKB: 256, BusWidthBits: 32,
		MaxFreqMHz: 600, ProcessNM: 14, Year: 2016,
		Snapdragons: []string{"430", "435", "616", "617"}, Provenance: provMeasured}},
	// The 530 reports a 4-series chip ID despite being a 5xx product.
	{0x04020000, chipSpecs{Name: "Adreno 530", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 3, StreamProcessors: 256, GMEMSizeKB: 512, BusWidthBits: 64,
		MaxFreqMHz: 624, ProcessNM: 14, Year: 2016,
		Snapdragons: []string{"820", "821"}, Provenance: provMeasured}},
	{0x05020000, chipSpecs{Name: "Adreno 540", Family: gpu.FamilyAdreno5xx,
		ShaderCores: 3, StreamProcessors: 256, GMEMSizeKB: 512, BusWidthBits: 64,
		MaxFreqMHz: 710, ProcessNM: 10, Year: 2017,
		Snapdragons: []string{"835"}, Provenance: provMeasured}},

	// Adreno 4xx
	{0x04010000, chipSpecs{Name: "Adreno 405", Family: gpu.FamilyAdreno4xx,
		ShaderCores: 1, StreamProcessors: 48, GMEMSizeKB: 128, BusWidthBits: 32,
		MaxFreqMHz: 550, ProcessNM: 28, Year: 2014,
		Snapdragons: []string{"415", "425", "610"}, Provenance: provMeasured}},
}

// seriesFallbacks carries estimated figures per series for chip IDs
// with no entry of their own.
var seriesFallbacks = map[uint8]chipSpecs{
	8: {Family: gpu.FamilyAdreno8xx, ShaderCores: 8, StreamProcessors: 2048,
		GMEMSizeKB: 4096, BusWidthBits: 384, MaxFreqMHz: 1100, ProcessNM: 3, Year: 2024,
		Snapdragons: []string{"8 Elite / future"}, Provenance: provHeuristic},
	7: {Family: gpu.FamilyAdreno7xx, ShaderCores: 5, StreamProcessors: 1024,
		GMEMSizeKB: 3072, BusWidthBits: 192, MaxFreqMHz: 900, ProcessNM: 4, Year: 2022,
		Snapdragons: []string{"8 Gen series"}, Provenance: provHeuristic},
	6: {Family: gpu.FamilyAdreno6xx, ShaderCores: 2, StreamProcessors: 256,
		GMEMSizeKB: 512, BusWidthBits: 64, MaxFreqMHz: 800, ProcessNM: 8, Year: 2019,
		Snapdragons: []string{"various 4xx/6xx/7xx low-end"}, Provenance: provHeuristic},
	5: {Family: gpu.FamilyAdreno5xx, ShaderCores: 1, StreamProcessors: 96,
		GMEMSizeKB: 256, BusWidthBits: 32, MaxFreqMHz: 500, ProcessNM: 28, Year: 2016,
		Snapdragons: []string{"various 4xx/6xx low-end"}, Provenance: provHeuristic},
	4: {Family: gpu.FamilyAdreno4xx, ShaderCores: 1, StreamProcessors: 48,
		GMEMSizeKB: 128, BusWidthBits: 32, MaxFreqMHz: 550, ProcessNM: 28, Year: 2014,
		Snapdragons: []string{"various 2xx/4xx low-end"}, Provenance: provHeuristic},
}

// baseIDMask keeps the arch major/minor half of a chip ID.
const baseIDMask = 0xFFFF0000

// lookupChip resolves a chip ID to specs and a confidence level.
//
// A verbatim entry resolves as Exact unless the entry itself is
// heuristic, in which case the name is right but the figures are
// estimates and the result is Approximate. An ID matching an entry
// only on its base (arch major/minor) is Approximate. Anything else
// degrades to an Unknown-confidence series estimate with a synthesized
// name; absence from the database is an expected outcome, not an
// error.
func lookupChip(chipID uint32) (chipSpecs, gpu.Confidence) {
	for _, e := range chips {
		if e.ID == chipID {
			if e.Specs.Provenance == provHeuristic {
				return e.Specs, gpu.ConfidenceApproximate
			}
			return e.Specs, gpu.ConfidenceExact
		}
	}

	base := chipID & baseIDMask
	for _, e := range chips {
		if e.ID&baseIDMask == base {
			return e.Specs, gpu.ConfidenceApproximate
		}
	}

	major := uint8(chipID >> 24)
	if s, ok := seriesFallbacks[major]; ok {
		s.Name = fmt.Sprintf("Adreno %dxx (unlisted)", major)
		return s, gpu.ConfidenceUnknown
	}

	return chipSpecs{
		Name:   fmt.Sprintf("Unknown Adreno 0x%08X", chipID),
		Family: gpu.FamilyUnknown,
	}, gpu.ConfidenceUnknown
}
