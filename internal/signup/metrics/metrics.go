package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the signup flow.
type Metrics struct {
	// Signup form renders
	FormViews prometheus.Counter

	// Submissions by which echoed fields were present: both, username, email, none
	Submissions *prometheus.CounterVec
}

// New creates the signup metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FormViews: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_form_views_total",
			Help: "Total number of signup form renders",
		}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Total signup submissions by which fields were present",
		}, []string{"fields"}),
	}
}

// IncrementFormViews records one rendered signup form.
func (m *Metrics) IncrementFormViews() {
	if m != nil {
		m.FormViews.Inc()
	}
}

// IncrementSubmissions records one submission.
func (m *Metrics) IncrementSubmissions(fields string) {
	if m != nil {
		m.Submissions.WithLabelValues(fields).Inc()
	}
}
