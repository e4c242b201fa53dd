package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"signup/internal/signup/models"
	"signup/pkg/testutil"
)

func TestParseSubmission(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
		want models.Submission
	}{
		{
			name: "all fields",
			req: func(t *testing.T) *http.Request {
				return testutil.NewFormRequest(t, http.MethodPost, "/signup", url.Values{
					"username": {"alice"}, "email": {"alice@example.com"}, "password": {"secret123"},
				})
			},
			want: models.Submission{Username: "alice", Email: "alice@example.com"},
		},
		{
			name: "email only",
			req: func(t *testing.T) *http.Request {
				return testutil.NewFormRequest(t, http.MethodPost, "/signup", url.Values{"email": {"bob@example.com"}})
			},
			want: models.Submission{Email: "bob@example.com"},
		},
		{
			name: "no body",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequest(t, http.MethodPost, "/signup")
			},
			want: models.Submission{},
		},
		{
			name: "first value wins for repeated keys",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequestWithBody(t, http.MethodPost, "/signup", "application/x-www-form-urlencoded", "username=first&username=second")
			},
			want: models.Submission{Username: "first"},
		},
		{
			name: "values are not trimmed",
			req: func(t *testing.T) *http.Request {
				return testutil.NewFormRequest(t, http.MethodPost, "/signup", url.Values{"username": {"  spaced  "}})
			},
			want: models.Submission{Username: "  spaced  "},
		},
		{
			name: "non-form content type",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequestWithBody(t, http.MethodPost, "/signup", "application/json", `{"username":"json"}`)
			},
			want: models.Submission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSubmission(httptest.NewRecorder(), tt.req(t), 1<<20)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("parseSubmission() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
