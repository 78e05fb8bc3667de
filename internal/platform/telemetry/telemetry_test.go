package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/patient/u1/chat/c1", "/patient"},
		{"/feedback/", "/feedback"},
		{"login", "/login"},
		{"/chats/u1?limit=5", "/chats"},
		{"", "/"},
	}
	for _, tt := range tests {
		if got := RouteLabel(tt.in); got != tt.want {
			t.Errorf("RouteLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusClass(t *testing.T) {
	if got := StatusClass(0); got != "network" {
		t.Errorf("StatusClass(0) = %q", got)
	}
	if got := StatusClass(201); got != "2xx" {
		t.Errorf("StatusClass(201) = %q", got)
	}
	if got := StatusClass(503); got != "5xx" {
		t.Errorf("StatusClass(503) = %q", got)
	}
}

func TestClientMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.Observe(http.MethodGet, "/chats/u1", 200, 10*time.Millisecond)
	m.Observe(http.MethodGet, "/chats/u2", 200, 20*time.Millisecond)
	m.Observe(http.MethodPost, "/login", 0, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/chats", "2xx")); got != 2 {
		t.Errorf("expected 2 chat requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/login", "network")); got != 1 {
		t.Errorf("expected 1 network failure, got %v", got)
	}
}

func TestClientMetrics_NilSafe(t *testing.T) {
	var m *ClientMetrics
	m.Observe("GET", "/x", 200, time.Second)
	m.BreakerState("backend", true)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)
	m.BreakerState("backend", true)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hms_client_breaker_open") {
		t.Errorf("expected breaker gauge in output, got:\n%s", rec.Body.String())
	}
}
