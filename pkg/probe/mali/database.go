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

// throughputFn derives a per-core figure from the shader-core count and
// the raw CORE_FEATURES and THREAD_FEATURES registers. Most products
// use constants; some encode the variant in CORE_FEATURES.
type throughputFn func(coreCount, coreFeatures, threadFeatures uint32) uint32

// productEntry describes one marketed product. Several products share a
// product ID and are told apart by shader-core count: lookup picks the
// entry with the highest MinCores that the measured count still meets.
type productEntry struct {
	ID       uint32
	Mask     uint32
	MinCores uint32
	Name     string
	Family   gpu.Family

	FP32FMAsPerEngine throughputFn
	Texels            throughputFn
	Pixels            throughputFn
	ExecEngines       throughputFn
}

// Midgard product IDs occupy the full 16 bits. From Bifrost on, the
// middle bits carry per-SoC configuration and only the top nibble plus
// the low nibble identify the product.
const (
	maskOld uint32 = 0xFFFF
	maskNew uint32 = 0xF00F
)

func constN(n uint32) throughputFn {
	return func(_, _, _ uint32) uint32 { return n }
}

// Single-core G31 and G51 bins with a narrow thread width drop to a
// reduced engine count.
func enginesG31(coreCount, _, threadFeatures uint32) uint32 {
	if coreCount == 1 && threadFeatures&0xFFFF == 0x2000 {
		return 1
	}
	return 2
}

func enginesG51(coreCount, _, threadFeatures uint32) uint32 {
	if coreCount == 1 && threadFeatures&0xFFFF == 0x2000 {
		return 1
	}
	return 3
}

func enginesG52(_, coreFeatures, _ uint32) uint32 {
	return coreFeatures & 0xF
}

// G510/G310 pack the shader-core variant into CORE_FEATURES bits 3:0.
func fmasG510(_, coreFeatures, _ uint32) uint32 {
	switch coreFeatures & 0xF {
	case 0:
		return 16
	case 2, 3:
		return 24
	default:
		return 32
	}
}

func texelsG510(_, coreFeatures, _ uint32) uint32 {
	switch coreFeatures & 0xF {
	case 0, 5:
		return 2
	case 1, 2, 6:
		return 4
	default:
		return 8
	}
}

func pixelsG510(_, coreFeatures, _ uint32) uint32 {
	switch coreFeatures & 0xF {
	case 0, 1, 5, 6:
		return 2
	default:
		return 4
	}
}

func enginesG510(_, coreFeatures, _ uint32) uint32 {
	switch coreFeatures & 0xF {
	case 0, 1, 5, 6:
		return 1
	default:
		return 2
	}
}

func midgard(id uint32, name string, engines throughputFn) productEntry {
	return productEntry{
		ID: id, Mask: maskOld, MinCores: 1,
		Name: name, Family: gpu.FamilyMidgard,
		FP32FMAsPerEngine: constN(4),
		Texels:            constN(1),
		Pixels:            constN(1),
		ExecEngines:       engines,
	}
}

// bigValhall covers G710 and every later product: 64 FMAs per engine,
// 8 texels, 4 pixels, 2 engines per core.
func bigValhall(id uint32, minCores uint32, name string, family gpu.Family) productEntry {
	return productEntry{
		ID: id, Mask: maskNew, MinCores: minCores,
		Name: name, Family: family,
		FP32FMAsPerEngine: constN(64),
		Texels:            constN(8),
		Pixels:            constN(4),
		ExecEngines:       constN(2),
	}
}

var products = []productEntry{
	midgard(0x6956, "Mali-T600", constN(2)),
	midgard(0x0620, "Mali-T620", constN(2)),
	midgard(0x0720, "Mali-T720", constN(1)),
	midgard(0x0750, "Mali-T760", constN(2)),
	midgard(0x0820, "Mali-T820", constN(1)),
	midgard(0x0830, "Mali-T830", constN(2)),
	midgard(0x0860, "Mali-T860", constN(2)),
	midgard(0x0880, "Mali-T880", constN(3)),

	{ID: 0x6000, Mask: maskNew, MinCores: 1, Name: "Mali-G71", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(4), Texels: constN(1), Pixels: constN(1), ExecEngines: constN(3)},
	{ID: 0x6001, Mask: maskNew, MinCores: 1, Name: "Mali-G72", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(4), Texels: constN(1), Pixels: constN(1), ExecEngines: constN(3)},

	{ID: 0x7000, Mask: maskNew, MinCores: 1, Name: "Mali-G51", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(4), Texels: constN(2), Pixels: constN(2), ExecEngines: enginesG51},
	{ID: 0x7001, Mask: maskNew, MinCores: 1, Name: "Mali-G76", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(8), Texels: constN(2), Pixels: constN(2), ExecEngines: constN(3)},
	{ID: 0x7002, Mask: maskNew, MinCores: 1, Name: "Mali-G52", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(8), Texels: constN(2), Pixels: constN(2), ExecEngines: enginesG52},
	{ID: 0x7003, Mask: maskNew, MinCores: 1, Name: "Mali-G31", Family: gpu.FamilyBifrost,
		FP32FMAsPerEngine: constN(4), Texels: constN(2), Pixels: constN(2), ExecEngines: enginesG31},

	{ID: 0x9000, Mask: maskNew, MinCores: 1, Name: "Mali-G77", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},
	{ID: 0x9001, Mask: maskNew, MinCores: 1, Name: "Mali-G57", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},
	{ID: 0x9003, Mask: maskNew, MinCores: 1, Name: "Mali-G57", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},
	{ID: 0x9004, Mask: maskNew, MinCores: 1, Name: "Mali-G68", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},
	{ID: 0x9002, Mask: maskNew, MinCores: 1, Name: "Mali-G78", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},
	{ID: 0x9005, Mask: maskNew, MinCores: 1, Name: "Mali-G78AE", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: constN(16), Texels: constN(4), Pixels: constN(2), ExecEngines: constN(2)},

	bigValhall(0xa002, 1, "Mali-G710", gpu.FamilyValhall),
	bigValhall(0xa007, 1, "Mali-G610", gpu.FamilyValhall),

	{ID: 0xa003, Mask: maskNew, MinCores: 1, Name: "Mali-G510", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: fmasG510, Texels: texelsG510, Pixels: pixelsG510, ExecEngines: enginesG510},
	{ID: 0xa004, Mask: maskNew, MinCores: 1, Name: "Mali-G310", Family: gpu.FamilyValhall,
		FP32FMAsPerEngine: fmasG510, Texels: texelsG510, Pixels: pixelsG510, ExecEngines: enginesG510},

	bigValhall(0xb002, 10, "Immortalis-G715", gpu.FamilyValhall),
	bigValhall(0xb002, 7, "Mali-G715", gpu.FamilyValhall),
	bigValhall(0xb002, 1, "Mali-G615", gpu.FamilyValhall),
	bigValhall(0xb003, 1, "Mali-G615", gpu.FamilyValhall),

	bigValhall(0xc000, 10, "Immortalis-G720", gpu.FamilyArm5thGen),
	bigValhall(0xc000, 6, "Mali-G720", gpu.FamilyArm5thGen),
	bigValhall(0xc000, 1, "Mali-G620", gpu.FamilyArm5thGen),
	bigValhall(0xc001, 1, "Mali-G620", gpu.FamilyArm5thGen),

	bigValhall(0xd000, 10, "Immortalis-G925", gpu.FamilyArm5thGen),
	bigValhall(0xd000, 6, "Mali-G725", gpu.FamilyArm5thGen),
	bigValhall(0xd001, 1, "Mali-G625", gpu.FamilyArm5thGen),

	bigValhall(0xe000, 10, "Mali G1-Ultra", gpu.FamilyArm5thGen),
	bigValhall(0xe001, 6, "Mali G1-Premium", gpu.FamilyArm5thGen),
	bigValhall(0xe003, 1, "Mali G1-Pro", gpu.FamilyArm5thGen),
}

// lookupProduct resolves a product ID and shader-core count to a
// database entry. A verbatim ID match yields Exact confidence; an ID
// that matches only with configuration bits masked out yields
// Approximate. Products sharing an ID are tie-broken by the highest
// MinCores the core count satisfies.
func lookupProduct(productID, coreCount uint32) (*productEntry, gpu.Confidence) {
	if e := bestMatch(productID, coreCount, false); e != nil {
		return e, gpu.ConfidenceExact
	}
	if e := bestMatch(productID, coreCount, true); e != nil {
		return e, gpu.ConfidenceApproximate
	}
	return nil, gpu.ConfidenceUnknown
}

func bestMatch(productID, coreCount uint32, masked bool) *productEntry {
	var best *productEntry
	for i := range products {
		e := &products[i]
		id := productID
		if masked {
			id &= e.Mask
		}
		if id != e.ID || coreCount < e.MinCores {
			continue
		}
		if best == nil || e.MinCores > best.MinCores {
			best = e
		}
	}
	return best
}
