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
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gpu-probe/pkg/device/devicetest"
	"github.com/NVIDIA/gpu-probe/pkg/errors"
	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

// prop encodes one key/value record in the kbase stream layout.
func prop(id uint32, width int, v uint64) []byte {
	var code uint32
	switch width {
	case 1:
		code = 0
	case 2:
		code = 1
	case 4:
		code = 2
	case 8:
		code = 3
	default:
		panic("invalid property width")
	}
	b := binary.LittleEndian.AppendUint32(nil, id<<2|code)
	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], v)
	return append(b, val[:width]...)
}

func stream(records ...[]byte) []byte {
	var b []byte
	for _, r := range records {
		b = append(b, r...)
	}
	return b
}

// g78Stream is a property stream matching a 24-core Mali-G78 with a
// 4-slice 2 MiB L2, as a kbase driver would report it.
func g78Stream() []byte {
	return stream(
		prop(propProductID, 4, 0x9002),
		prop(propL2Log2CacheSize, 1, 19),
		prop(propL2NumSlices, 1, 4),
		prop(propRawL2Features, 8, 5<<24),
		prop(propRawCoreFeatures, 4, 0),
		prop(propRawGPUID, 8, 0x90020000|1<<12|3<<4), // r1p3
		prop(propRawThreadFeatures, 4, 0x4000),
		prop(propNumCoreGroups, 1, 1),
		prop(propCoreMaskFirst, 8, 0xFFFFFF), // 24 cores
	)
}

// kbaseResponder serves the kbase ioctl protocol from a canned stream.
func kbaseResponder(t *testing.T, buf []byte) devicetest.Responder {
	t.Helper()
	return func(req uintptr, arg unsafe.Pointer) (uintptr, error) {
		switch req {
		case ioctlVersionCheckCSF, ioctlSetFlags:
			return 0, nil
		case ioctlGetGPUProps:
			q := (*gpuPropsQuery)(arg)
			if q.Size == 0 {
				return uintptr(len(buf)), nil
			}
			require.Equal(t, uint32(len(buf)), q.Size)
			dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(q.Buffer))), q.Size)
			copy(dst, buf)
			return 0, nil
		default:
			t.Fatalf("unexpected ioctl request 0x%x", req)
			return 0, nil
		}
	}
}

func TestQuery(t *testing.T) {
	opener := devicetest.NewOpener()
	opener.Register(DefaultDevicePath, kbaseResponder(t, g78Stream()))

	p := &Prober{Open: opener.Open}
	info, err := p.Query(context.Background(), DefaultDevicePath)
	require.NoError(t, err)
	require.NotNil(t, info.Mali)

	assert.Equal(t, gpu.VendorMali, info.Vendor)
	assert.Equal(t, "Mali-G78", info.ModelName)
	assert.Equal(t, gpu.FamilyValhall, info.Family)
	assert.Equal(t, gpu.ConfidenceExact, info.Confidence)
	assert.Equal(t, uint32(24), info.NumShaderCores)
	assert.Equal(t, "r1p3", info.Revision.String())
	assert.Equal(t, uint64(4*(1<<19)), info.Mali.NumL2Bytes)
	assert.Equal(t, uint64(32), info.Mali.NumBusBits)
	assert.Equal(t, uint32(2), info.Mali.NumExecEngines)
	assert.Equal(t, uint32(32), info.Mali.NumFP32FMAsPerCore)
	assert.Equal(t, info.Mali.NumFP32FMAsPerCore*2, info.Mali.NumFP16FMAsPerCore)

	assert.Equal(t, 1, opener.Opens())
	assert.True(t, opener.Balanced())
}

func TestQueryUnlistedProduct(t *testing.T) {
	buf := stream(
		prop(propProductID, 4, 0x1234),
		prop(propL2Log2CacheSize, 1, 16),
		prop(propL2NumSlices, 1, 1),
		prop(propRawGPUID, 8, 0x12340000|1<<12),
		prop(propNumCoreGroups, 1, 1),
		prop(propCoreMaskFirst, 8, 0xF),
	)
	opener := devicetest.NewOpener()
	opener.Register(DefaultDevicePath, kbaseResponder(t, buf))

	p := &Prober{Open: opener.Open}
	info, err := p.Query(context.Background(), DefaultDevicePath)
	require.NoError(t, err)

	assert.Equal(t, gpu.ConfidenceUnknown, info.Confidence)
	assert.Equal(t, "Unknown Mali r1p0", info.ModelName)
	assert.Equal(t, uint64(0x12340000|1<<12), info.RawID)
	assert.Equal(t, uint32(4), info.NumShaderCores)
	assert.True(t, opener.Balanced())
}

func TestQueryHandshakeRefused(t *testing.T) {
	serve := kbaseResponder(t, g78Stream())
	opener := devicetest.NewOpener()
	opener.Register(DefaultDevicePath, func(req uintptr, arg unsafe.Pointer) (uintptr, error) {
		if req == ioctlVersionCheckCSF || req == ioctlSetFlags {
			return 0, errors.New(errors.ErrCodePermissionDenied, "handshake refused")
		}
		return serve(req, arg)
	})

	info, err := (&Prober{Open: opener.Open}).Query(context.Background(), DefaultDevicePath)
	require.NoError(t, err)
	assert.Equal(t, "Mali-G78", info.ModelName)
}

func TestQueryImplausibleBufferSize(t *testing.T) {
	for name, size := range map[string]uintptr{
		"zero": 0,
		"huge": maxPropsSize + 1,
	} {
		t.Run(name, func(t *testing.T) {
			opener := devicetest.NewOpener()
			opener.Register(DefaultDevicePath, func(req uintptr, arg unsafe.Pointer) (uintptr, error) {
				switch req {
				case ioctlGetGPUProps:
					return size, nil
				default:
					return 0, nil
				}
			})

			_, err := (&Prober{Open: opener.Open}).Query(context.Background(), DefaultDevicePath)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeMalformedResponse, errors.CodeOf(err))
			assert.True(t, opener.Balanced())
		})
	}
}

func TestQueryIoctlRefused(t *testing.T) {
	opener := devicetest.NewOpener()
	opener.Register(DefaultDevicePath, devicetest.Refuse(errors.ErrCodeUnsupportedDevice))

	_, err := (&Prober{Open: opener.Open}).Query(context.Background(), DefaultDevicePath)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupportedDevice, errors.CodeOf(err))
	assert.True(t, opener.Balanced())
}

func TestQueryMissingDevice(t *testing.T) {
	opener := devicetest.NewOpener()

	_, err := (&Prober{Open: opener.Open}).Query(context.Background(), DefaultDevicePath)
	require.Error(t, err)
	assert.True(t, errors.IsDeviceNotFound(err))
	assert.Equal(t, 0, opener.Opens())
}

func TestQueryStrictRejectsZeroCores(t *testing.T) {
	buf := stream(
		prop(propProductID, 4, 0x9002),
		prop(propL2Log2CacheSize, 1, 19),
		prop(propL2NumSlices, 1, 4),
		prop(propRawGPUID, 8, 0x90020000),
	)
	opener := devicetest.NewOpener()
	opener.Register(DefaultDevicePath, kbaseResponder(t, buf))

	_, err := (&Prober{Open: opener.Open, Strict: true}).Query(context.Background(), DefaultDevicePath)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMalformedResponse, errors.CodeOf(err))
	assert.True(t, opener.Balanced())
}

func TestQueryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opener := devicetest.NewOpener()
	_, err := (&Prober{Open: opener.Open}).Query(ctx, DefaultDevicePath)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, opener.Opens())
}
