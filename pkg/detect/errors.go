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

package detect

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/gpu-probe/pkg/errors"
	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

// CandidateFailure records why one candidate device node did not
// produce an identification.
type CandidateFailure struct {
	Path   string
	Vendor gpu.Vendor
	Err    error
}

func (f CandidateFailure) String() string {
	return fmt.Sprintf("%s (%s): %v", f.Path, f.Vendor, f.Err)
}

// NoGPUError reports that every candidate device node failed. It keeps
// one failure cause per attempted candidate.
type NoGPUError struct {
	Failures []CandidateFailure
}

func (e *NoGPUError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no GPU detected across %d candidates", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("; ")
		b.WriteString(f.String())
	}
	return b.String()
}

// Unwrap exposes the per-candidate causes to errors.Is and errors.As.
func (e *NoGPUError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// ErrorCode implements the errors.Coder interface.
func (e *NoGPUError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeNoGPUDetected
}
