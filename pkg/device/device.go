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

package device

import (
	"unsafe"
)

// Access selects the open mode for a device node. Mali (kbase) requires
// read-write access for its ioctl surface; KGSL identification works
// read-only.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
)

// Conn is an open identification channel to a kernel GPU driver.
// Implementations classify failures into the structured error taxonomy.
type Conn interface {
	// Ioctl issues a raw ioctl and returns the syscall's non-negative
	// return value. Some drivers (kbase GET_GPUPROPS) use the return
	// value to report a required buffer size.
	Ioctl(req uintptr, arg unsafe.Pointer) (uintptr, error)

	// Close releases the device handle. Safe to call exactly once.
	Close() error
}

// OpenFunc opens a device node. Production code uses Open; tests inject
// a fake from package devicetest.
type OpenFunc func(path string, access Access) (Conn, error)

// Ioctl request encoding, from the Linux asm-generic ioctl ABI.
// Request numbers must match the target kernel driver bit-for-bit.
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocWrite = 1
	iocRead  = 2

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// IOW encodes a write-direction ioctl request (userspace to kernel).
func IOW(typ, nr, size uintptr) uintptr {
	return ioc(iocWrite, typ, nr, size)
}

// IOR encodes a read-direction ioctl request (kernel to userspace).
func IOR(typ, nr, size uintptr) uintptr {
	return ioc(iocRead, typ, nr, size)
}

// IOWR encodes a bidirectional ioctl request.
func IOWR(typ, nr, size uintptr) uintptr {
	return ioc(iocRead|iocWrite, typ, nr, size)
}
