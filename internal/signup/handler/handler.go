package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"signup/internal/signup/metrics"
	"signup/internal/signup/models"
	"signup/internal/signup/views"
	"signup/pkg/platform/httputil"
	"signup/pkg/requestcontext"
)

// SignupPath is where the form is served and posted.
const SignupPath = "/signup"

const tracerName = "signup/internal/signup/handler"

// Renderer renders a named page into w.
//
//go:generate mockgen -source=handler.go -destination=mocks/renderer_mock.go -package=mocks Renderer
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Handler serves the signup form and its confirmation page.
type Handler struct {
	renderer     Renderer
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	maxFormBytes int64
}

// New constructs a signup handler. maxFormBytes caps the body read when
// parsing a submission; zero or less means no cap.
func New(renderer Renderer, logger *slog.Logger, metrics *metrics.Metrics, maxFormBytes int64) *Handler {
	return &Handler{
		renderer:     renderer,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer(tracerName),
		maxFormBytes: maxFormBytes,
	}
}

// Register mounts the signup endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get(SignupPath, h.HandleForm)
	r.Post(SignupPath, h.HandleSubmit)
}

// HandleForm handles GET /signup with an empty form.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "signup.form")
	defer span.End()

	if h.render(ctx, span, w, views.PageSignup, models.NewSignupPage(SignupPath)) {
		h.metrics.IncrementFormViews()
	}
}

// HandleSubmit handles POST /signup. Missing fields are echoed as empty strings;
// the password is never looked up.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "signup.submit")
	defer span.End()

	submission := parseSubmission(w, r, h.maxFormBytes)
	hasUsername := submission.Username != ""
	hasEmail := submission.Email != ""

	span.SetAttributes(
		attribute.Bool("signup.has_username", hasUsername),
		attribute.Bool("signup.has_email", hasEmail),
	)
	h.logger.InfoContext(ctx, "signup submitted",
		"request_id", requestcontext.RequestID(ctx),
		"has_username", hasUsername,
		"has_email", hasEmail,
	)
	h.metrics.IncrementSubmissions(submission.FieldsPresent())

	h.render(ctx, span, w, views.PageConfirm, models.NewConfirmationPage(submission))
}

// render buffers the page so a failed execution never sends a partial document.
func (h *Handler) render(ctx context.Context, span trace.Span, w http.ResponseWriter, name string, data any) bool {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		h.logger.ErrorContext(ctx, "failed to render view",
			"request_id", requestcontext.RequestID(ctx),
			"view", name,
			"error", err,
		)
		httputil.WriteHTMLError(w, http.StatusInternalServerError)
		return false
	}
	httputil.WriteHTML(w, http.StatusOK, buf.Bytes())
	return true
}
