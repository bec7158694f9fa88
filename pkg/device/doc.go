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

// Package device opens GPU device nodes and issues raw ioctl calls against
// them.
//
// # Overview
//
// A Conn is an ephemeral handle to one opened character-device node. It is
// exclusively owned by the query that opened it and must be closed before
// the query returns, on every exit path. The package never creates, deletes,
// or writes configuration to device nodes; it only needs open, ioctl, and
// close permission.
//
// # Error Classification
//
// Open and ioctl failures are returned as structured errors using the
// identification taxonomy:
//
//   - ENOENT on open: DEVICE_NOT_FOUND
//   - EACCES/EPERM: PERMISSION_DENIED
//   - ENOTTY/EINVAL/ENOSYS on ioctl: UNSUPPORTED_DEVICE
//   - path is not a character device: UNSUPPORTED_DEVICE
//
// The underlying errno is always preserved as the error cause.
//
// # Testing
//
// Probes accept an OpenFunc so tests can substitute the counting fake in
// package devicetest, which stubs ioctl responses and verifies that every
// opened handle is closed.
package device
