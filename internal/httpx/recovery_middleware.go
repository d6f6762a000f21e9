package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"libraryapi/internal/apperr"
)

// RecoveryMiddleware turns a panic into the standard 500 error envelope.
// It must run inside AccessLogMiddleware so it can see whether headers went out.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						"request_id", RequestIDFrom(r),
						"error", fmt.Sprint(rec),
						"stack", string(debug.Stack()),
					)

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}
					if !wroteHeader {
						writeErrorDocument(w, apperr.Internal(fmt.Errorf("panic: %v", rec)))
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
