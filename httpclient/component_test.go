package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fuel/component"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	comp := NewComponent(Config{
		Name:    "test-http",
		BaseURL: srv.URL,
	})

	if comp.Client() != nil {
		t.Error("Client() should be nil before Start()")
	}
	if h := comp.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before Start, got %s", h.Status)
	}

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if comp.Client() == nil {
		t.Fatal("Client() should not be nil after Start()")
	}

	health := comp.Health(context.Background())
	if health.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", health.Status)
	}
	if health.Name != "test-http" {
		t.Errorf("expected name test-http, got %s", health.Name)
	}

	call, err := comp.Client().Get(context.Background(), "ping", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp, err := call.Await(context.Background())
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if text, _ := resp.Text(); text != "/ping" {
		t.Errorf("expected /ping, got %q", text)
	}

	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestComponent_Name_Default(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "http://localhost"})
	if got := comp.Name(); got != "http" {
		t.Errorf("expected default name 'http', got %q", got)
	}
}

func TestComponent_StartInvalidConfig(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "ftp://files.example.com"})
	if err := comp.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail for a non-http base URL")
	}
	if comp.Client() != nil {
		t.Error("expected no client after failed Start")
	}
}

func TestComponent_HealthCircuitOpen(t *testing.T) {
	cb := DefaultCircuitBreakerConfig("")
	cb.MaxFailures = 1
	cb.Timeout = time.Hour
	comp := NewComponent(Config{BaseURL: "http://example.com", CircuitBreaker: cb},
		WithAdapterOptions(WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("refused")
		}))))
	if err := comp.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	req, err := comp.Client().Build(MethodGet, "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := comp.Client().Execute(context.Background(), req); err == nil {
		t.Fatal("expected failure")
	}
	h := comp.Health(context.Background())
	if h.Status != component.StatusUnhealthy || h.Message != "circuit open" {
		t.Errorf("expected unhealthy circuit open, got %s %q", h.Status, h.Message)
	}
}

func TestComponent_Describe(t *testing.T) {
	comp := NewComponent(Config{Name: "cards", BaseURL: "https://api.example.com", Timeout: 5 * time.Second})
	d := comp.Describe()
	if d.Name != "cards" || d.Type != "http-client" {
		t.Errorf("unexpected description %+v", d)
	}
	for _, want := range []string{"https://api.example.com", "timeout=5s", "protocol=http1"} {
		if !strings.Contains(d.Details, want) {
			t.Errorf("expected details to contain %q, got %q", want, d.Details)
		}
	}
}
