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

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeDeviceNotFound indicates the device node is absent.
	ErrCodeDeviceNotFound ErrorCode = "DEVICE_NOT_FOUND"
	// ErrCodePermissionDenied indicates the node exists but access was refused.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeUnsupportedDevice indicates the node exists but the driver
	// rejected the identification call as not-this-driver.
	ErrCodeUnsupportedDevice ErrorCode = "UNSUPPORTED_DEVICE"
	// ErrCodeMalformedResponse indicates the identification call succeeded
	// but returned data outside the decodable range or size.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeNoGPUDetected indicates auto-detection exhausted every candidate.
	ErrCodeNoGPUDetected ErrorCode = "NO_GPU_DETECTED"
	// ErrCodeInternal indicates an internal error (programmer error, not a
	// runtime condition on the device).
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better
// observability. It includes an error code for programmatic handling, a
// human-readable message, the underlying cause, and optional context for
// debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// ErrorCode implements the Coder interface.
func (e *StructuredError) ErrorCode() ErrorCode {
	return e.Code
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Coder is implemented by error types that carry an ErrorCode.
// StructuredError implements it, as do aggregate errors that classify
// themselves without wrapping a single cause.
type Coder interface {
	ErrorCode() ErrorCode
}

// CodeOf walks the error chain and returns the first ErrorCode found,
// or an empty code if the chain carries none.
func CodeOf(err error) ErrorCode {
	var c Coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// IsDeviceNotFound reports whether err classifies as a missing device node.
func IsDeviceNotFound(err error) bool {
	return CodeOf(err) == ErrCodeDeviceNotFound
}

// IsPermissionDenied reports whether err classifies as an access refusal.
func IsPermissionDenied(err error) bool {
	return CodeOf(err) == ErrCodePermissionDenied
}

// IsUnsupportedDevice reports whether err classifies as a driver that
// rejected the identification call.
func IsUnsupportedDevice(err error) bool {
	return CodeOf(err) == ErrCodeUnsupportedDevice
}

// IsMalformedResponse reports whether err classifies as undecodable driver
// output.
func IsMalformedResponse(err error) bool {
	return CodeOf(err) == ErrCodeMalformedResponse
}
