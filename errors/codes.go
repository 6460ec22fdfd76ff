package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Local errors: the request never reached the network.
const (
	// ErrCodeInvalidTarget indicates a URL or path that cannot be parsed or resolved.
	ErrCodeInvalidTarget ErrorCode = "INVALID_TARGET"
	// ErrCodeInvalidConfig indicates a rejected client configuration.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Execution errors.
const (
	// ErrCodeNetwork indicates an engine-level failure (refused, DNS, TLS, timeout).
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeCanceled indicates the caller cancelled the call.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Decoding errors: the network exchange succeeded.
const (
	// ErrCodeUnsupportedType indicates no decoder can be built for the requested type.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	// ErrCodeDecode indicates a body that is malformed or does not match the type.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNetwork: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
