// Package errors provides structured error types for the GPU identification
// taxonomy: device not found, permission denied, unsupported device,
// malformed response, and no GPU detected.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnsupportedDevice,
//	    "driver rejected identification ioctl",
//	    errno,
//	    map[string]interface{}{
//	        "path":    path,
//	        "request": fmt.Sprintf("%#x", req),
//	    },
//	)
package errors
