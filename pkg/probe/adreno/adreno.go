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
	"context"
	"unsafe"

	"github.com/NVIDIA/gpu-probe/pkg/device"
	"github.com/NVIDIA/gpu-probe/pkg/errors"
	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

// DefaultDevicePath is where Android kernels expose the 3D core.
const DefaultDevicePath = "/dev/kgsl-3d0"

// KGSL ioctl magic, request number and property selector.
const (
	kgslIoctlType = 0x09

	nrDeviceGetProperty = 0x02
	propDeviceInfo      = 0x1
)

// getProperty mirrors the kernel's kgsl_device_getproperty: a 4-byte
// selector followed by pointer-width value and size fields. Alignment
// of the pointer-width fields inserts the same padding the C struct
// carries on LP64, and none on 32-bit targets, so the size-encoded
// request number matches the running kernel's ABI on both widths.
type getProperty struct {
	Type      uint32
	Value     uintptr
	SizeBytes uintptr
}

// deviceInfo mirrors the kernel's kgsl_devinfo.
type deviceInfo struct {
	DeviceID        uint32
	ChipID          uint32
	MMUEnabled      uint32
	GMEMGPUBaseAddr uint32
	GMEMSizeBytes   uint32
	Reserved1       uint32
	Reserved2       uint32
	GPUModel        uint32
}

var ioctlDeviceGetProperty = device.IOWR(kgslIoctlType, nrDeviceGetProperty, unsafe.Sizeof(getProperty{}))

// Prober queries Adreno GPUs through the KGSL driver.
//
// The zero value probes real device nodes. Strict additionally rejects
// device info with zero GMEM. Open is replaced in tests.
type Prober struct {
	Open   device.OpenFunc
	Strict bool
}

// Query identifies the Adreno GPU behind the device node at path using
// a zero-value Prober.
func Query(ctx context.Context, path string) (*gpu.Info, error) {
	return (&Prober{}).Query(ctx, path)
}

// Query opens the device node, fetches the KGSL device info property,
// and resolves the chip ID to an identification record. The device
// handle is closed before Query returns, on every path.
func (p *Prober) Query(ctx context.Context, path string) (*gpu.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	open := p.Open
	if open == nil {
		open = device.Open
	}
	conn, err := open(path, device.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	di, err := readDeviceInfo(conn)
	if err != nil {
		return nil, err
	}

	if di.ChipID == 0 {
		return nil, errors.New(errors.ErrCodeMalformedResponse,
			"driver reported zero chip ID")
	}
	if p.Strict && di.GMEMSizeBytes == 0 {
		return nil, errors.New(errors.ErrCodeMalformedResponse,
			"driver reported zero GMEM size")
	}

	return buildInfo(di), nil
}

func readDeviceInfo(conn device.Conn) (deviceInfo, error) {
	var di deviceInfo
	q := getProperty{
		Type:      propDeviceInfo,
		Value:     uintptr(unsafe.Pointer(&di)),
		SizeBytes: unsafe.Sizeof(di),
	}
	if _, err := conn.Ioctl(ioctlDeviceGetProperty, unsafe.Pointer(&q)); err != nil {
		return deviceInfo{}, err
	}
	return di, nil
}

func buildInfo(di deviceInfo) *gpu.Info {
	ver := decodeChipID(di.ChipID)
	specs, confidence := lookupChip(di.ChipID)

	family := specs.Family
	if family == "" {
		family = familyForSeries(ver.ArchMajor)
	}

	return &gpu.Info{
		Vendor:         gpu.VendorAdreno,
		Family:         family,
		ModelName:      specs.Name,
		Revision:       ver.revision(),
		NumShaderCores: specs.ShaderCores,
		Confidence:     confidence,
		RawID:          uint64(di.ChipID),
		Adreno: &gpu.AdrenoData{
			ChipID:           di.ChipID,
			GPUModelCode:     di.GPUModel,
			MMUEnabled:       di.MMUEnabled != 0,
			GMEMSizeBytes:    di.GMEMSizeBytes,
			StreamProcessors: specs.StreamProcessors,
			MaxFreqMHz:       specs.MaxFreqMHz,
			ProcessNM:        specs.ProcessNM,
			ReleaseYear:      specs.Year,
			SnapdragonModels: specs.Snapdragons,
		},
	}
}
