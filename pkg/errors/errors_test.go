package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDeviceNotFound, "device node absent")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeDeviceNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDeviceNotFound, err.Code)
	}
	if err.Message != "device node absent" {
		t.Errorf("expected message 'device node absent', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeUnsupportedDevice, "ioctl rejected", cause)

	if err.Code != ErrCodeUnsupportedDevice {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupportedDevice, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("inappropriate ioctl for device")
	ctx := map[string]interface{}{
		"path":    "/dev/mali0",
		"request": "0x40108003",
	}

	err := WrapWithContext(ErrCodeUnsupportedDevice, "identification call failed", cause, ctx)

	if err.Code != ErrCodeUnsupportedDevice {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupportedDevice, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "/dev/mali0" {
		t.Errorf("expected path to be /dev/mali0")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeDeviceNotFound, "not found"),
			expected: "[DEVICE_NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeMalformedResponse, "failed", errors.New("root cause")),
			expected: "[MALFORMED_RESPONSE] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	inner := New(ErrCodePermissionDenied, "access refused")
	outer := fmt.Errorf("probing /dev/kgsl-3d0: %w", inner)

	if got := CodeOf(outer); got != ErrCodePermissionDenied {
		t.Errorf("expected code %s through wrapped chain, got %s", ErrCodePermissionDenied, got)
	}

	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}

	if got := CodeOf(nil); got != "" {
		t.Errorf("expected empty code for nil error, got %s", got)
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"device not found", New(ErrCodeDeviceNotFound, "x"), IsDeviceNotFound},
		{"permission denied", New(ErrCodePermissionDenied, "x"), IsPermissionDenied},
		{"unsupported device", New(ErrCodeUnsupportedDevice, "x"), IsUnsupportedDevice},
		{"malformed response", New(ErrCodeMalformedResponse, "x"), IsMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("classifier did not match its own code")
			}
			if tt.check(errors.New("other")) {
				t.Errorf("classifier matched an unrelated error")
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeDeviceNotFound,
		ErrCodePermissionDenied,
		ErrCodeUnsupportedDevice,
		ErrCodeMalformedResponse,
		ErrCodeNoGPUDetected,
		ErrCodeInternal,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
