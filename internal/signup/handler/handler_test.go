package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"signup/internal/signup/handler/mocks"
	"signup/internal/signup/metrics"
	"signup/internal/signup/views"
	"signup/pkg/testutil"
)

// HandlerSuite runs the signup handler against the real embedded views.
type HandlerSuite struct {
	suite.Suite
	router  http.Handler
	logs    *bytes.Buffer
	metrics *metrics.Metrics
}

func (s *HandlerSuite) SetupTest() {
	v, err := views.New(views.Embedded(), false)
	require.NoError(s.T(), err)

	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(s.logs, nil))
	s.metrics = metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	New(v, logger, s.metrics, 1<<20).Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) post(form url.Values) string {
	rec := testutil.DoRequest(s.router, testutil.NewFormRequest(s.T(), http.MethodPost, SignupPath, form))
	testutil.AssertStatusOK(s.T(), rec)
	testutil.AssertHTML(s.T(), rec)
	return testutil.ReadBody(s.T(), rec)
}

func (s *HandlerSuite) TestFormRendersThreeEmptyInputs() {
	rec := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, SignupPath))

	testutil.AssertStatusOK(s.T(), rec)
	testutil.AssertHTML(s.T(), rec)
	body := testutil.ReadBody(s.T(), rec)
	for _, name := range []string{"username", "email", "password"} {
		s.Contains(body, `name="`+name+`"`)
	}
	s.NotContains(body, "value=")
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.FormViews))
}

func (s *HandlerSuite) TestSubmitEchoesUsernameAndEmailButNotPassword() {
	body := s.post(url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret123"},
	})

	s.Contains(body, `<dd id="username">alice</dd>`)
	s.Contains(body, `<dd id="email">alice@example.com</dd>`)
	s.NotContains(body, "secret123")
	s.NotContains(s.logs.String(), "secret123")
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Submissions.WithLabelValues("both")))
}

func (s *HandlerSuite) TestSubmitEmailOnly() {
	body := s.post(url.Values{"email": {"bob@example.com"}})

	s.Contains(body, `<dd id="username"></dd>`)
	s.Contains(body, `<dd id="email">bob@example.com</dd>`)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Submissions.WithLabelValues("email")))
}

func (s *HandlerSuite) TestSubmitWithoutBodyRendersEmptyValues() {
	rec := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, SignupPath))

	testutil.AssertStatusOK(s.T(), rec)
	body := testutil.ReadBody(s.T(), rec)
	s.Contains(body, `<dd id="username"></dd>`)
	s.Contains(body, `<dd id="email"></dd>`)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Submissions.WithLabelValues("none")))
}

func (s *HandlerSuite) TestSubmitWithUnrelatedFieldsOnly() {
	body := s.post(url.Values{"password": {"only-a-password"}, "remember": {"on"}})

	s.Contains(body, `<dd id="username"></dd>`)
	s.Contains(body, `<dd id="email"></dd>`)
	s.NotContains(body, "only-a-password")
}

func (s *HandlerSuite) TestSubmitAcceptsMultipart() {
	req := testutil.NewMultipartRequest(s.T(), http.MethodPost, SignupPath, map[string]string{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "multipart-secret",
	})
	rec := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rec)
	body := testutil.ReadBody(s.T(), rec)
	s.Contains(body, `<dd id="username">carol</dd>`)
	s.Contains(body, `<dd id="email">carol@example.com</dd>`)
	s.NotContains(body, "multipart-secret")
}

func (s *HandlerSuite) TestSubmitIgnoresQueryString() {
	req := testutil.NewFormRequest(s.T(), http.MethodPost, SignupPath+"?username=from-query", url.Values{"email": {"dave@example.com"}})
	rec := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rec)
	body := testutil.ReadBody(s.T(), rec)
	s.Contains(body, `<dd id="username"></dd>`)
	s.NotContains(body, "from-query")
}

func (s *HandlerSuite) TestSubmitMalformedBodyDegradesToEmpty() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, SignupPath, "application/x-www-form-urlencoded", "username=%zz")
	rec := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rec)
	s.Contains(testutil.ReadBody(s.T(), rec), `<dd id="username"></dd>`)
}

func (s *HandlerSuite) TestSubmitEscapesMarkup() {
	body := s.post(url.Values{"username": {`<b>eve</b>`}})

	s.NotContains(body, "<b>eve</b>")
	s.Contains(body, "&lt;b&gt;eve&lt;/b&gt;")
}

func (s *HandlerSuite) TestPasswordNeverAppearsForAnyValue() {
	cases := []struct{ username, email, password string }{
		{"alice", "alice@example.com", "secret123"},
		{"", "", "p4ssw0rd-only"},
		{"u1", "", "Zq8-unique-pw"},
		{"", "e1@example.org", "пароль-секрет"},
		{"same", "same@example.com", "xX_very_long_password_value_that_is_distinctive_Xx"},
	}

	for _, tc := range cases {
		s.Run(tc.password, func() {
			s.logs.Reset()
			body := s.post(url.Values{
				"username": {tc.username},
				"email":    {tc.email},
				"password": {tc.password},
			})
			s.Contains(body, `<dd id="username">`+tc.username+`</dd>`)
			s.Contains(body, `<dd id="email">`+tc.email+`</dd>`)
			s.NotContains(body, tc.password)
			s.NotContains(s.logs.String(), tc.password)
		})
	}
}

func (s *HandlerSuite) TestWrongMethodIsRejectedByRouter() {
	rec := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPut, SignupPath))
	testutil.AssertStatus(s.T(), rec, http.StatusMethodNotAllowed)
}

func TestSubmitOversizedBodyDegradesToEmpty(t *testing.T) {
	v, err := views.New(views.Embedded(), false)
	require.NoError(t, err)

	r := chi.NewRouter()
	New(v, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, 16).Register(r)

	form := url.Values{"username": {strings.Repeat("a", 64)}, "email": {"big@example.com"}}
	rec := testutil.DoRequest(r, testutil.NewFormRequest(t, http.MethodPost, SignupPath, form))

	testutil.AssertStatusOK(t, rec)
	body := testutil.ReadBody(t, rec)
	assert.Contains(t, body, `<dd id="username"></dd>`)
	assert.Contains(t, body, `<dd id="email"></dd>`)
}

func TestRenderFailureReturns500WithoutPartialPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(gomock.Any(), views.PageConfirm, gomock.Any()).
		DoAndReturn(func(w io.Writer, _ string, _ any) error {
			_, _ = io.WriteString(w, "<p>partial")
			return errors.New("template exploded")
		})

	var logs bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	h := New(renderer, slog.New(slog.NewJSONHandler(&logs, nil)), m, 0)

	req := testutil.WithRequestID(testutil.NewFormRequest(t, http.MethodPost, SignupPath, url.Values{"username": {"alice"}}), "req-42")
	rec := testutil.DoRequest(http.HandlerFunc(h.HandleSubmit), req)

	testutil.AssertStatus(t, rec, http.StatusInternalServerError)
	body := testutil.ReadBody(t, rec)
	assert.NotContains(t, body, "partial")
	assert.NotContains(t, body, "template exploded")
	assert.Contains(t, logs.String(), "failed to render view")
	assert.Contains(t, logs.String(), "req-42")
}

func TestFormRenderFailureDoesNotCountView(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Render(gomock.Any(), views.PageSignup, gomock.Any()).Return(errors.New("missing layout"))

	m := metrics.New(prometheus.NewRegistry())
	h := New(renderer, slog.New(slog.NewTextHandler(io.Discard, nil)), m, 0)

	rec := testutil.DoRequest(http.HandlerFunc(h.HandleForm), testutil.NewRequest(t, http.MethodGet, SignupPath))

	testutil.AssertStatus(t, rec, http.StatusInternalServerError)
	assert.Equal(t, float64(0), promtestutil.ToFloat64(m.FormViews))
}
