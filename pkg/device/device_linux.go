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

//go:build linux

package device

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/gpu-probe/pkg/errors"
)

// conn is a production device handle backed by a raw file descriptor.
type conn struct {
	fd   int
	path string
}

// Open opens the device node at path and verifies it is a character device.
// The returned Conn must be closed by the caller on every exit path.
func Open(path string, access Access) (Conn, error) {
	flag := unix.O_RDONLY
	if access == ReadWrite {
		flag = unix.O_RDWR
	}

	fd, err := unix.Open(path, flag|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, classifyOpenErr(path, err)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return nil, errors.Wrap(errors.ErrCodeUnsupportedDevice,
			fmt.Sprintf("stat %s failed", path), err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		_ = unix.Close(fd)
		return nil, errors.New(errors.ErrCodeUnsupportedDevice,
			fmt.Sprintf("%s is not a character device", path))
	}

	slog.Debug("opened device node", "path", path, "fd", fd)
	return &conn{fd: fd, path: path}, nil
}

// Ioctl issues the request against the open descriptor and classifies any
// errno into the identification error taxonomy.
func (c *conn) Ioctl(req uintptr, arg unsafe.Pointer) (uintptr, error) {
	r1, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), req, uintptr(arg))
	if errno != 0 {
		return 0, classifyIoctlErrno(c.path, req, errno)
	}
	return r1, nil
}

// Close releases the descriptor.
func (c *conn) Close() error {
	return unix.Close(c.fd)
}

func classifyOpenErr(path string, err error) error {
	switch err {
	case unix.ENOENT:
		return errors.Wrap(errors.ErrCodeDeviceNotFound,
			fmt.Sprintf("device node %s does not exist", path), err)
	case unix.EACCES, unix.EPERM:
		return errors.Wrap(errors.ErrCodePermissionDenied,
			fmt.Sprintf("access to %s refused", path), err)
	default:
		return errors.Wrap(errors.ErrCodeDeviceNotFound,
			fmt.Sprintf("cannot open device node %s", path), err)
	}
}

func classifyIoctlErrno(path string, req uintptr, errno unix.Errno) error {
	ctx := map[string]any{
		"path":    path,
		"request": fmt.Sprintf("%#x", req),
	}
	switch errno {
	case unix.ENOTTY, unix.EINVAL, unix.ENOSYS:
		return errors.WrapWithContext(errors.ErrCodeUnsupportedDevice,
			"driver rejected identification ioctl", errno, ctx)
	case unix.EACCES, unix.EPERM:
		return errors.WrapWithContext(errors.ErrCodePermissionDenied,
			"identification ioctl refused", errno, ctx)
	case unix.ENODEV, unix.ENOENT:
		return errors.WrapWithContext(errors.ErrCodeDeviceNotFound,
			"device went away during identification", errno, ctx)
	default:
		return errors.WrapWithContext(errors.ErrCodeUnsupportedDevice,
			"identification ioctl failed", errno, ctx)
	}
}
