package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"signup/internal/platform/metrics"
	"signup/internal/platform/middleware"
	signuphandler "signup/internal/signup/handler"
	"signup/pkg/platform/middleware/metadata"
	"signup/pkg/platform/middleware/requesttime"
)

// Dependencies is the application handle built once at startup and passed to
// NewRouter. A nil Metrics disables /metrics and latency recording.
type Dependencies struct {
	Logger         *slog.Logger
	Signup         *signuphandler.Handler
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints. Unknown paths and unsupported methods
// fall through to chi's default 404 and 405 responses.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(deps.Metrics))
	}
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}
	r.Use(chimw.GetHead)

	r.Get("/", handleRoot)
	r.Get("/healthz", handleHealth)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	deps.Signup.Register(r)

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, signuphandler.SignupPath, http.StatusFound)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
