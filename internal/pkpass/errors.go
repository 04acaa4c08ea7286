package pkpass

import "fmt"

// Error represents a structured error from the pkpass package
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

type ErrorCode string

const (
	ErrCodeValidation    ErrorCode = "validation"
	ErrCodeCertificate   ErrorCode = "certificate"
	ErrCodeKeyManagement ErrorCode = "key_management"
	ErrCodeAsset         ErrorCode = "asset"
	ErrCodeSigning       ErrorCode = "signing"
	ErrCodeInternal      ErrorCode = "internal"
)

// PassError represents a structured error from the pkpass package
type PassError struct {

	// code is the pass error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *PassError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *PassError) Code() ErrorCode { return e.code }
func (e *PassError) Unwrap() error   { return e.wrapped }

// NewValidationError creates a validation error for an invalid pass descriptor or sign request.
//
// The returned error will have code ErrCodeValidation.
func NewValidationError(msg string) error {
	return &PassError{code: ErrCodeValidation, message: msg}
}

// WrapValidationError wraps an existing error as a validation error.
//
// The returned error will have code ErrCodeValidation.
func WrapValidationError(err error, msg string) error {
	return &PassError{code: ErrCodeValidation, message: msg, wrapped: err}
}

// NewCertificateError creates a certificate error.
// Use this for unreadable trust-chain certificates, expired signer certificates
// or a signer certificate issued for a different pass type.
//
// The returned error will have code ErrCodeCertificate.
func NewCertificateError(msg string) error {
	return &PassError{code: ErrCodeCertificate, message: msg}
}

// WrapCertificateError wraps an existing error as a certificate error.
//
// The returned error will have code ErrCodeCertificate.
func WrapCertificateError(err error, msg string) error {
	return &PassError{code: ErrCodeCertificate, message: msg, wrapped: err}
}

// NewKeyManagementError creates a key management error.
// Use this for errors loading the PKCS#12 signing identity (missing file, wrong password, unsupported key).
//
// The returned error will have code ErrCodeKeyManagement.
func NewKeyManagementError(msg string) error {
	return &PassError{code: ErrCodeKeyManagement, message: msg}
}

// WrapKeyManagementError wraps an existing error as a key management error.
//
// The returned error will have code ErrCodeKeyManagement.
func WrapKeyManagementError(err error, msg string) error {
	return &PassError{code: ErrCodeKeyManagement, message: msg, wrapped: err}
}

// NewAssetError creates an asset error for missing, duplicate or malformed template files.
//
// The returned error will have code ErrCodeAsset.
func NewAssetError(msg string) error {
	return &PassError{code: ErrCodeAsset, message: msg}
}

// WrapAssetError wraps an existing error as an asset error.
//
// The returned error will have code ErrCodeAsset.
func WrapAssetError(err error, msg string) error {
	return &PassError{code: ErrCodeAsset, message: msg, wrapped: err}
}

// NewSigningError creates a signing error.
//
// The returned error will have code ErrCodeSigning.
func NewSigningError(msg string) error {
	return &PassError{code: ErrCodeSigning, message: msg}
}

// WrapSigningError wraps an existing error as a signing error.
// Use this for failures creating or verifying the PKCS#7 signature.
//
// The returned error will have code ErrCodeSigning.
func WrapSigningError(err error, msg string) error {
	return &PassError{code: ErrCodeSigning, message: msg, wrapped: err}
}

// NewInternalError creates an internal error for unexpected failures.
//
// The returned error will have code ErrCodeInternal.
func NewInternalError(msg string) error {
	return &PassError{code: ErrCodeInternal, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
// Use this for encoding or archive failures that should not normally occur.
//
// The returned error will have code ErrCodeInternal.
func WrapInternalError(err error, msg string) error {
	return &PassError{code: ErrCodeInternal, message: msg, wrapped: err}
}
