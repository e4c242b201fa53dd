package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"signup/pkg/platform/httputil"
	"signup/pkg/requestcontext"
)

// Recovery turns a handler panic into a logged 500 response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered",
					"request_id", requestcontext.RequestID(ctx),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				httputil.WriteHTMLError(w, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
