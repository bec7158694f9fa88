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

//go:build !linux

package device

import "github.com/NVIDIA/gpu-probe/pkg/errors"

// Open is unavailable off Linux: the vendor drivers this module talks to
// only exist in the Linux/Android kernel.
func Open(path string, access Access) (Conn, error) {
	return nil, errors.New(errors.ErrCodeUnsupportedDevice,
		"GPU device nodes require Linux or Android")
}
