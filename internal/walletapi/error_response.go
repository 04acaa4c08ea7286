package walletapi

// error_response.go maps errors to the JSON error bodies returned to the client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/adspaceng/ratecard-wallet/internal/logger"
)

// MapErrorToResponse maps a WalletError (or any other error) to an error response.
//
// Only generation failures expose the error message to the client. When exposeTrace is true they
// also carry the stack trace recorded by github.com/friendsofgo/errors, if there is one.
func MapErrorToResponse(err error, r *http.Request, exposeTrace bool) *ErrorResponse {
	var walletErr *WalletError
	if !errors.As(err, &walletErr) {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		return &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Error:      InternalErrorText,
		}
	}

	switch walletErr.Code() {
	case ErrCodeMissingFields:
		return &ErrorResponse{StatusCode: http.StatusBadRequest, Error: MissingFieldsText}
	case ErrCodeRequestTooLarge:
		return &ErrorResponse{StatusCode: http.StatusRequestEntityTooLarge, Error: RequestTooLargeText}
	case ErrCodeRateLimitExceeded:
		return &ErrorResponse{StatusCode: http.StatusTooManyRequests, Error: RateLimitText}
	case ErrCodeGenerationFailed:
		resp := &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Error:      GenerationFailedText,
			Details:    walletErr.Error(),
		}
		if cause := walletErr.Unwrap(); cause != nil {
			resp.Details = cause.Error()
			if exposeTrace {
				resp.Trace = stackTrace(cause)
			}
		}
		return resp
	default:
		return &ErrorResponse{StatusCode: http.StatusInternalServerError, Error: InternalErrorText}
	}
}

// stackTrace returns the "%+v" rendering of err, which includes the stack frames of errors
// created with github.com/friendsofgo/errors
func stackTrace(err error) string {
	return fmt.Sprintf("%+v", err)
}

// NewFatalErrorResponse creates the response sent when a panic is recovered before anything was written
func NewFatalErrorResponse(message, file string, line int) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Error:      FatalErrorText,
		Details: FatalErrorDetails{
			Message: message,
			File:    file,
			Line:    line,
		},
	}
}
