package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/walletapi"
)

// FatalErrorRecoverer recovers panics raised while handling a request.
//
// If nothing has been written yet the client receives a 500 with the panic message and the
// file and line where it was raised. If the response has already started the panic is only logged.
// http.ErrAbortHandler is re-raised so that net/http aborts the response as usual.
//
// Register it after logger.RequestLogging so the request log records the 500 and the request logger is available.
func FatalErrorRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			message := panicMessage(rec)
			file, line := panicOrigin()

			reqLogger := logger.ContextRequestLogger(r.Context())
			reqLogger.Error("Fatal error",
				slog.String("error", message),
				slog.String("file", file),
				slog.Int("line", line),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("stack", string(debug.Stack())),
			)

			if ww.Status() != 0 || ww.BytesWritten() > 0 {
				reqLogger.Warn("Response already started, fatal error not sent to client",
					slog.Int("status", ww.Status()),
				)
				return
			}

			resp := walletapi.NewFatalErrorResponse(message, file, line)
			walletapi.RespondWithJSONPayload(ww, resp.StatusCode, resp)
		}()

		next.ServeHTTP(ww, r)
	})
}

func panicMessage(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(rec)
}

func isRuntimeFrame(function string) bool {
	return strings.HasPrefix(function, "runtime.") || strings.HasPrefix(function, "internal/runtime/")
}

// panicOrigin returns the location of the first non-runtime frame below runtime.gopanic.
// It must be called from the deferred function that recovered the panic.
func panicOrigin() (file string, line int) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	panicking := false
	for {
		frame, more := frames.Next()
		if frame.Function == "runtime.gopanic" {
			panicking = true
		} else if panicking && !isRuntimeFrame(frame.Function) {
			return frame.File, frame.Line
		}
		if !more {
			break
		}
	}
	return "unknown", 0
}
