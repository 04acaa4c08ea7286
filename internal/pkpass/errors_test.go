package pkpass

import (
	"errors"
	"io/fs"
	"testing"
)

// check to ensure error code handling has not been broken
func TestPassError_Code(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"validation", NewValidationError("test"), ErrCodeValidation},
		{"certificate", NewCertificateError("test"), ErrCodeCertificate},
		{"key_management", NewKeyManagementError("test"), ErrCodeKeyManagement},
		{"asset", NewAssetError("test"), ErrCodeAsset},
		{"signing", NewSigningError("test"), ErrCodeSigning},
		{"internal", NewInternalError("test"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var passErr *PassError
			if !errors.As(tt.err, &passErr) {
				t.Fatal("error is not a PassError")
			}
			if passErr.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", passErr.Code(), tt.wantCode)
			}
		})
	}
}

func TestPassError_Wrap(t *testing.T) {
	err := WrapAssetError(fs.ErrNotExist, "failed to read icon.png")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("wrapped error should be reachable with errors.Is")
	}
	if got, want := err.Error(), "failed to read icon.png: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
