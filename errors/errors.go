package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by fuel.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// InvalidTarget creates an error for a target that cannot become an absolute URL.
func InvalidTarget(target string, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidTarget, Message: fmt.Sprintf("invalid target %q: %s", target, reason),
		Details: map[string]any{"target": target},
	}
}

// InvalidConfig creates an error for a rejected configuration.
func InvalidConfig(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: reason}
}

// Network creates an error for an engine-level failure.
func Network(cause error) *AppError {
	return &AppError{
		Code: ErrCodeNetwork, Message: "request failed", Retryable: true, Cause: cause,
	}
}

// NetworkTimeout creates a network error flagged as an engine timeout.
func NetworkTimeout(cause error) *AppError {
	return Network(cause).WithDetail("timeout", true)
}

// Canceled creates an error for a call cancelled by its caller.
// The cause is the context error so errors.Is(err, context.Canceled) works.
func Canceled(cause error) *AppError {
	if cause == nil {
		cause = context.Canceled
	}
	return &AppError{Code: ErrCodeCanceled, Message: "call canceled", Cause: cause}
}

// UnsupportedType creates an error for a type no decoder can be built for.
func UnsupportedType(typeName, reason string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedType, Message: fmt.Sprintf("unsupported type %s: %s", typeName, reason),
		Details: map[string]any{"type": typeName},
	}
}

// Decode creates an error for a body that failed to decode.
func Decode(typeName string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDecode, Message: fmt.Sprintf("decode %s", typeName),
		Details: map[string]any{"type": typeName}, Cause: cause,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *AppError
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalidTarget reports whether err is an INVALID_TARGET error.
func IsInvalidTarget(err error) bool { return CodeOf(err) == ErrCodeInvalidTarget }

// IsInvalidConfig reports whether err is an INVALID_CONFIG error.
func IsInvalidConfig(err error) bool { return CodeOf(err) == ErrCodeInvalidConfig }

// IsNetwork reports whether err is a NETWORK_ERROR.
func IsNetwork(err error) bool { return CodeOf(err) == ErrCodeNetwork }

// IsTimeout reports whether err is a NETWORK_ERROR caused by an engine timeout.
func IsTimeout(err error) bool {
	var e *AppError
	if !stderrors.As(err, &e) || e.Code != ErrCodeNetwork {
		return false
	}
	v, _ := e.Details["timeout"].(bool)
	return v
}

// IsCanceled reports whether err is a CANCELED error.
func IsCanceled(err error) bool { return CodeOf(err) == ErrCodeCanceled }

// IsUnsupportedType reports whether err is an UNSUPPORTED_TYPE error.
func IsUnsupportedType(err error) bool { return CodeOf(err) == ErrCodeUnsupportedType }

// IsDecode reports whether err is a DECODE_ERROR.
func IsDecode(err error) bool { return CodeOf(err) == ErrCodeDecode }

// IsRetryable reports whether err is an AppError marked retryable.
func IsRetryable(err error) bool {
	var e *AppError
	return stderrors.As(err, &e) && e.Retryable
}
