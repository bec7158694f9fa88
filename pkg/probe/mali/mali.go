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

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/NVIDIA/gpu-probe/pkg/device"
	"github.com/NVIDIA/gpu-probe/pkg/errors"
	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

// DefaultDevicePath is where Android and Linux kernels expose the first
// kbase instance.
const DefaultDevicePath = "/dev/mali0"

// kbase ioctl magic and request numbers.
const (
	kbaseIoctlType = 0x80

	nrSetFlags        = 0x01
	nrGetGPUProps     = 0x03
	nrVersionCheckCSF = 0x34
)

// maxPropsSize bounds the buffer size the driver may request. Real
// streams are a few KiB; anything past this is a corrupt return value.
const maxPropsSize = 1 << 20

type versionCheck struct {
	Major uint16
	Minor uint16
}

type setFlags struct {
	CreateFlags uint32
}

type gpuPropsQuery struct {
	Buffer uint64
	Size   uint32
	Flags  uint32
}

var (
	ioctlVersionCheckCSF = device.IOWR(kbaseIoctlType, nrVersionCheckCSF, unsafe.Sizeof(versionCheck{}))
	ioctlSetFlags        = device.IOW(kbaseIoctlType, nrSetFlags, unsafe.Sizeof(setFlags{}))
	ioctlGetGPUProps     = device.IOW(kbaseIoctlType, nrGetGPUProps, unsafe.Sizeof(gpuPropsQuery{}))
)

// Prober queries Mali GPUs through the kbase driver.
//
// The zero value probes real device nodes with lenient stream decoding.
// Strict enables well-formedness checks on the property stream and on
// the decoded result. Open is replaced in tests.
type Prober struct {
	Open   device.OpenFunc
	Strict bool
}

// Query identifies the Mali GPU behind the device node at path using a
// zero-value Prober.
func Query(ctx context.Context, path string) (*gpu.Info, error) {
	return (&Prober{}).Query(ctx, path)
}

// Query opens the device node, reads the kbase property stream, and
// resolves it to an identification record. The device handle is closed
// before Query returns, on every path.
func (p *Prober) Query(ctx context.Context, path string) (*gpu.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	open := p.Open
	if open == nil {
		open = device.Open
	}
	conn, err := open(path, device.ReadWrite)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	p.handshake(conn, path)

	raw, err := readProps(conn)
	if err != nil {
		return nil, err
	}

	cfg := Lenient
	if p.Strict {
		cfg = Strict
	}
	props, err := decodeProps(raw, cfg)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedResponse,
			"failed to decode kbase property stream", err,
			map[string]any{"path": path, "bytes": len(raw)})
	}

	info := buildInfo(props)
	if p.Strict {
		if err := validate(info); err != nil {
			return nil, err
		}
	}
	return info, nil
}

// handshake runs the optional CSF version check and SET_FLAGS calls.
// Pre-CSF kernels reject both and restricted SELinux domains may refuse
// them; the property query works regardless, so refusals are only
// logged.
func (p *Prober) handshake(conn device.Conn, path string) {
	var vc versionCheck
	if _, err := conn.Ioctl(ioctlVersionCheckCSF, unsafe.Pointer(&vc)); err != nil {
		slog.Debug("kbase version check refused", "path", path, "error", err)
	}
	sf := setFlags{CreateFlags: 2}
	if _, err := conn.Ioctl(ioctlSetFlags, unsafe.Pointer(&sf)); err != nil {
		slog.Debug("kbase set flags refused", "path", path, "error", err)
	}
}

// readProps performs the two-phase property fetch: the first call with
// a nil buffer returns the needed size, the second fills the buffer.
func readProps(conn device.Conn) ([]byte, error) {
	var q gpuPropsQuery
	size, err := conn.Ioctl(ioctlGetGPUProps, unsafe.Pointer(&q))
	if err != nil {
		return nil, err
	}
	if size == 0 || size > maxPropsSize {
		return nil, errors.New(errors.ErrCodeMalformedResponse,
			fmt.Sprintf("driver reported implausible property buffer size %d", size))
	}

	buf := make([]byte, size)
	q.Buffer = uint64(uintptr(unsafe.Pointer(&buf[0])))
	q.Size = uint32(size)
	if _, err := conn.Ioctl(ioctlGetGPUProps, unsafe.Pointer(&q)); err != nil {
		return nil, err
	}
	return buf, nil
}

// buildInfo resolves decoded properties to an identification record.
// Unlisted products are not an error: the record carries Unknown
// confidence, a synthesized name, and the raw register for diagnosis.
func buildInfo(props Properties) *gpu.Info {
	cores := props.NumShaderCores()
	rev := decodeRevision(props.RawGPUID)

	var l2Bytes uint64
	if props.L2Log2CacheSize > 0 && props.NumL2Slices > 0 {
		l2Bytes = (1 << props.L2Log2CacheSize) * props.NumL2Slices
	}
	var busBits uint64
	if props.RawL2Features != 0 {
		busBits = 1 << ((props.RawL2Features >> 24) & 0xFF)
	}

	data := &gpu.MaliData{
		ProductID:      props.ProductID,
		RawGPUID:       props.RawGPUID,
		ShaderCoreMask: props.ShaderCoreMask,
		NumL2Slices:    props.NumL2Slices,
		NumL2Bytes:     l2Bytes,
		NumBusBits:     busBits,
	}

	info := &gpu.Info{
		Vendor:         gpu.VendorMali,
		Revision:       rev,
		NumShaderCores: cores,
		RawID:          props.RawGPUID,
		Mali:           data,
	}

	entry, confidence := lookupProduct(props.ProductID, cores)
	info.Confidence = confidence
	if entry == nil {
		info.ModelName = fmt.Sprintf("Unknown Mali %s", rev)
		info.Family = familyForArch(archMajor(props.RawGPUID))
		return info
	}

	info.ModelName = entry.Name
	info.Family = entry.Family

	engines := entry.ExecEngines(cores, props.RawCoreFeatures, props.RawThreadFeatures)
	fp32 := entry.FP32FMAsPerEngine(cores, props.RawCoreFeatures, props.RawThreadFeatures) * engines
	data.NumExecEngines = engines
	data.NumFP32FMAsPerCore = fp32
	data.NumFP16FMAsPerCore = fp32 * 2
	data.NumTexelsPerCore = entry.Texels(cores, props.RawCoreFeatures, props.RawThreadFeatures)
	data.NumPixelsPerCore = entry.Pixels(cores, props.RawCoreFeatures, props.RawThreadFeatures)
	return info
}

func validate(info *gpu.Info) error {
	if info.NumShaderCores == 0 {
		return errors.New(errors.ErrCodeMalformedResponse, "driver reported zero shader cores")
	}
	if info.Mali.NumL2Bytes == 0 {
		return errors.New(errors.ErrCodeMalformedResponse, "driver reported zero L2 cache")
	}
	return nil
}
