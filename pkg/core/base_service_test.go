package core

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yegors/watson-go/pkg/logger"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *BaseService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewBaseService(&ServiceOptions{
		URL:           server.URL + "/api",
		Authenticator: &BasicAuthenticator{Username: "user", Password: "pass"},
		Logger:        logger.FromZap(zaptest.NewLogger(t)),
	}, "https://example.invalid/api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewBaseServiceRequiresAuthenticator(t *testing.T) {
	t.Parallel()

	_, err := NewBaseService(&ServiceOptions{}, "https://example.com")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "authenticator" {
		t.Fatalf("expected authenticator validation error, got %v", err)
	}
}

func TestNewBaseServiceUsesDefaultURL(t *testing.T) {
	t.Parallel()

	svc, err := NewBaseService(&ServiceOptions{Authenticator: NoAuthAuthenticator{}}, "https://example.com/api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.ServiceURL() != "https://example.com/api" {
		t.Fatalf("unexpected url: %s", svc.ServiceURL())
	}
	if err := svc.SetServiceURL("not a url"); err == nil {
		t.Fatalf("expected invalid url error")
	}
}

func TestNewBaseServiceRejectsBadHeaders(t *testing.T) {
	t.Parallel()

	_, err := NewBaseService(&ServiceOptions{
		Authenticator: NoAuthAuthenticator{},
		Headers:       http.Header{"Bad Header": {"x"}},
	}, "https://example.com")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRequestDecodesJSONAndSendsCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(r.UserAgent(), "watson-go/") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("X-Watson-Learning-Opt-Out") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"ok","count":3}`)
	})
	if err := svc.SetDefaultHeaders(http.Header{"X-Watson-Learning-Opt-Out": {"true"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := NewRequestBuilder(http.MethodGet)
	if _, err := b.ResolveRequestURL(svc.ServiceURL(), "/v1/things/{id}", map[string]string{"id": "a b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(req.URL.EscapedPath(), "/v1/things/a%20b") {
		t.Fatalf("expected escaped path param, got %s", req.URL.EscapedPath())
	}

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	resp, err := svc.Request(req, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || out.Name != "ok" || out.Count != 3 {
		t.Fatalf("unexpected result: %d %+v", resp.StatusCode, out)
	}
}

func TestRequestMapsErrorStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Workspace not found","code":404}`)
	})

	b := NewRequestBuilder(http.MethodGet)
	_, _ = b.ResolveRequestURL(svc.ServiceURL(), "/v1/workspaces", nil)
	req, _ := b.Build(context.Background())

	_, err := svc.Request(req, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("status sentinel must not match other codes")
	}
	var serr *ServiceResponseError
	if !errors.As(err, &serr) || serr.Message != "Workspace not found" {
		t.Fatalf("unexpected error details: %v", err)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"message":"m"}`:                 "m",
		`{"errors":[{"message":"first"}]}`: "first",
		`{"description":"d"}`:             "d",
		`not json`:                        http.StatusText(http.StatusBadGateway),
	}
	for body, want := range cases {
		if got := errorMessage([]byte(body), http.StatusBadGateway); got != want {
			t.Fatalf("body %s: expected %q, got %q", body, want, got)
		}
	}
}

func TestBearerTokenAuthenticator(t *testing.T) {
	t.Parallel()

	if _, err := NewBearerTokenAuthenticator(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	a, err := NewBearerTokenAuthenticator("tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	_ = a.Authenticate(req)
	if req.Header.Get("Authorization") != "Bearer tok" {
		t.Fatalf("unexpected header: %q", req.Header.Get("Authorization"))
	}
}

func TestBasicAuthenticatorRejectsQuotedCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewBasicAuthenticator(`"user"`, "pass"); err == nil {
		t.Fatalf("expected quoted username to be rejected")
	}
	if _, err := NewBasicAuthenticator("user", ""); err == nil {
		t.Fatalf("expected missing password to be rejected")
	}
}

func TestPrepareHeadersAppliesCredentials(t *testing.T) {
	t.Parallel()

	svc, err := NewBaseService(&ServiceOptions{Authenticator: &BearerTokenAuthenticator{Token: "t"}}, "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := svc.PrepareHeaders("wss://example.com/v1/recognize", http.Header{"x-custom": {"1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Get("Authorization") != "Bearer t" || h.Get("X-Custom") != "1" {
		t.Fatalf("unexpected headers: %v", h)
	}
}
