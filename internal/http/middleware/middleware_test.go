package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/logging"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/metrics"
	"github.com/francescacanali/ebl-wbf-system-cards/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogger(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/teams?tournament=26prague", nil)
	rr := httptest.NewRecorder()
	LoggingMiddleware(logger, metrics.NewRecorder(), next).ServeHTTP(rr, req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected response request id header")
	}
	out := buf.String()
	if !strings.Contains(out, "request complete") || !strings.Contains(out, "status_code=418") {
		t.Fatalf("expected completion log with status, got %q", out)
	}
}

func TestLoggingMiddlewareKeepsValidIncomingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})
	LoggingMiddleware(nil, nil, next).ServeHTTP(rr, req)

	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected incoming id preserved, got %q", seen)
	}
}

func TestLoggingMiddlewareRecordsOtelMetrics(t *testing.T) {
	rec, _, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("metrics setup error = %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
	})
	rr := httptest.NewRecorder()
	LoggingMiddleware(nil, rec, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cards", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected default 200, got %d", rr.Code)
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/health", want: "/health"},
		{in: "/api/teams", want: "/api/teams"},
		{in: "/api/teams/", want: "/api/teams"},
		{in: "/api/admin/data?x=1", want: "/api/admin/data"},
		{in: "/wp-login.php", want: "other"},
		{in: "/", want: "other"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	rr := testutil.Serve(h, http.MethodOptions, "/api/upload", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if called {
		t.Fatalf("expected preflight to short-circuit")
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin")
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Fatalf("expected Authorization in allowed headers")
	}

	rr = testutil.Serve(h, http.MethodGet, "/api/cards", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	if !called || rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected passthrough with CORS headers")
	}
}
