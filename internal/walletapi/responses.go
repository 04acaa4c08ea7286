package walletapi

// responses.go provides helper functions for sending HTTP responses from the pass API handlers.

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/adspaceng/ratecard-wallet/internal/logger"
)

// RespondWithErrorResponse sends an error response as a JSON payload.
//
// It logs the full error details server-side. Client errors are logged at warn level and server errors at error level.
func RespondWithErrorResponse(w http.ResponseWriter, r *http.Request, err error, exposeTrace bool) {
	errorResponse := MapErrorToResponse(err, r, exposeTrace)

	reqLogger := logger.ContextRequestLogger(r.Context())
	attrs := []any{
		slog.String("error", err.Error()),
		slog.Int("status_code", errorResponse.StatusCode),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	}
	if errorResponse.StatusCode >= http.StatusInternalServerError {
		reqLogger.Error("Request failed", attrs...)
	} else {
		reqLogger.Warn("Request failed", attrs...)
	}

	RespondWithJSONPayload(w, errorResponse.StatusCode, errorResponse)
}

// RespondWithJSONPayload sends a JSON response with the given status code.
// The body is written without a trailing newline.
func RespondWithJSONPayload(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if payload == nil {
		w.WriteHeader(statusCode)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		// #nosec G706 -- error is escaped (slog) and not from user input
		slog.Error("Failed to encode JSON response",
			slog.String("error", err.Error()),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		// If writing fails, log it but don't try to send another response
		// (headers are already written)
		slog.Error("Failed to write JSON response",
			slog.String("error", err.Error()),
		)
	}
}

// RespondWithPass sends a pass archive as an attachment.
//
// Quotes, backslashes and control characters are removed from the quoted
// filename parameter. When that changes the name, the exact name is also sent
// percent-encoded in a filename* parameter (RFC 6266).
func RespondWithPass(w http.ResponseWriter, filename string, archive []byte) {
	w.Header().Set("Content-Type", PassContentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(archive); err != nil {
		slog.Error("Failed to write pass archive",
			slog.String("error", err.Error()),
		)
	}
}

func contentDisposition(filename string) string {
	safe := sanitizeFilename(filename)
	if safe == filename {
		return fmt.Sprintf(`attachment; filename="%s"`, safe)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, safe, encodeExtValue(filename))
}

// encodeExtValue percent-encodes every byte outside the RFC 5987 attr-char set
func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}
