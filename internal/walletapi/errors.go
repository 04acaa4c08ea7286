package walletapi

// errors.go defines the error codes used by the pass API

import "fmt"

// WalletError represents a structured error from the walletapi package.
type WalletError struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *WalletError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *WalletError) Code() ErrorCode { return e.code }
func (e *WalletError) Unwrap() error   { return e.wrapped }

// ErrorCode identifies the kind of failure and determines the HTTP status of the response
type ErrorCode string

const (
	// ErrCodeMissingFields is used when profileId, email or name is missing from the request
	ErrCodeMissingFields ErrorCode = "missing_fields"

	// ErrCodeGenerationFailed is used when the pass could not be built or signed
	ErrCodeGenerationFailed ErrorCode = "generation_failed"

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware
	ErrCodeRequestTooLarge ErrorCode = "request_too_large"

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"

	// ErrCodeInternalError is used for unexpected failures outside pass generation
	ErrCodeInternalError ErrorCode = "internal_error"
)

// NewMissingFieldsError creates an error for requests without the required fields.
//
// The returned error will have code ErrCodeMissingFields.
func NewMissingFieldsError(msg string) error {
	return &WalletError{code: ErrCodeMissingFields, message: msg}
}

// WrapMissingFieldsError wraps a validation error as a missing fields error.
//
// The returned error will have code ErrCodeMissingFields.
func WrapMissingFieldsError(err error, msg string) error {
	return &WalletError{code: ErrCodeMissingFields, message: msg, wrapped: err}
}

// WrapGenerationError wraps a failure to build, sign or package a pass.
// The wrapped error message is returned to the client as "details".
//
// The returned error will have code ErrCodeGenerationFailed.
func WrapGenerationError(err error) error {
	return &WalletError{code: ErrCodeGenerationFailed, message: "failed to generate pass", wrapped: err}
}

// NewRequestTooLargeError creates a request too large error.
// Use this when the request body exceeds the maximum allowed size.
//
// The returned error will have code ErrCodeRequestTooLarge.
func NewRequestTooLargeError(msg string) error {
	return &WalletError{code: ErrCodeRequestTooLarge, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
//
// The returned error will have code ErrCodeRateLimitExceeded.
func NewRateLimitError(msg string) error {
	return &WalletError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewInternalError creates an internal error for unexpected failures.
//
// The returned error will have code ErrCodeInternalError.
func NewInternalError(msg string) error {
	return &WalletError{code: ErrCodeInternalError, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
//
// The returned error will have code ErrCodeInternalError.
func WrapInternalError(err error, msg string) error {
	return &WalletError{code: ErrCodeInternalError, message: msg, wrapped: err}
}
