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

// Package devicetest provides a counting fake for the device layer.
//
// The fake records every open and close so tests can assert that a query
// releases its device handle on every exit path, and lets tests stub ioctl
// responses per device path.
package devicetest

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/NVIDIA/gpu-probe/pkg/device"
	"github.com/NVIDIA/gpu-probe/pkg/errors"
)

// Responder handles a stubbed ioctl call for one fake device.
type Responder func(req uintptr, arg unsafe.Pointer) (uintptr, error)

// Opener is a fake device.OpenFunc provider. Paths without a registered
// responder behave as absent device nodes.
type Opener struct {
	mu     sync.Mutex
	opens  int
	closes int

	// Devices maps a device-node path to its ioctl responder.
	Devices map[string]Responder
}

// NewOpener creates a fake opener with no devices registered.
func NewOpener() *Opener {
	return &Opener{Devices: map[string]Responder{}}
}

// Register adds a fake device at path served by the given responder.
func (o *Opener) Register(path string, r Responder) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Devices[path] = r
}

// Open implements device.OpenFunc.
func (o *Opener) Open(path string, access device.Access) (device.Conn, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	r, ok := o.Devices[path]
	if !ok {
		return nil, errors.New(errors.ErrCodeDeviceNotFound,
			fmt.Sprintf("device node %s does not exist", path))
	}

	o.opens++
	return &fakeConn{opener: o, respond: r}, nil
}

// Opens returns the number of successful opens observed.
func (o *Opener) Opens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens
}

// Closes returns the number of closes observed.
func (o *Opener) Closes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closes
}

// Balanced reports whether every opened handle has been closed.
func (o *Opener) Balanced() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens == o.closes
}

type fakeConn struct {
	opener  *Opener
	respond Responder
	closed  bool
}

func (c *fakeConn) Ioctl(req uintptr, arg unsafe.Pointer) (uintptr, error) {
	if c.closed {
		return 0, errors.New(errors.ErrCodeInternal, "ioctl on closed device handle")
	}
	return c.respond(req, arg)
}

func (c *fakeConn) Close() error {
	if c.closed {
		return errors.New(errors.ErrCodeInternal, "device handle closed twice")
	}
	c.closed = true

	c.opener.mu.Lock()
	defer c.opener.mu.Unlock()
	c.opener.closes++
	return nil
}

// Refuse returns a responder that fails every ioctl with the given code,
// mimicking a driver that rejects the identification call.
func Refuse(code errors.ErrorCode) Responder {
	return func(req uintptr, arg unsafe.Pointer) (uintptr, error) {
		return 0, errors.New(code, "stubbed ioctl refusal")
	}
}
