package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"signup/pkg/requestcontext"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxInboundRequestIDLen = 64

// RequestID assigns every request an id, reusing a well-formed inbound
// X-Request-ID so ids can be correlated across proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := inboundRequestID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func inboundRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxInboundRequestIDLen {
		return ""
	}
	for _, c := range raw {
		if c < '!' || c > '~' {
			return ""
		}
	}
	return raw
}
