package httpclient

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/resilience"
	"github.com/kbukum/fuel/security"
	"github.com/kbukum/fuel/validation"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{
		Retry:          &resilience.RetryConfig{MaxAttempts: 2},
		CircuitBreaker: &resilience.CircuitBreakerConfig{MaxFailures: 3},
		RateLimiter:    &resilience.RateLimiterConfig{Rate: 5, Burst: 5},
		Bulkhead:       &resilience.BulkheadConfig{MaxConcurrent: 4},
	}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name http, got %q", cfg.Name)
	}
	if cfg.Protocol != ProtocolHTTP1 {
		t.Errorf("expected protocol http1, got %q", cfg.Protocol)
	}
	if cfg.Retry.RetryIf == nil || cfg.CircuitBreaker.IsFailure == nil {
		t.Error("expected retry and failure predicates to be set")
	}
	for label, name := range map[string]string{
		"circuit breaker": cfg.CircuitBreaker.Name,
		"rate limiter":    cfg.RateLimiter.Name,
		"bulkhead":        cfg.Bulkhead.Name,
	} {
		if name != "http" {
			t.Errorf("%s: expected name http, got %q", label, name)
		}
	}
}

func TestConfig_ApplyDefaults_SharedResilienceConfigs(t *testing.T) {
	breaker := &resilience.CircuitBreakerConfig{MaxFailures: 3}
	limiter := &resilience.RateLimiterConfig{Rate: 5, Burst: 5}
	bulkhead := &resilience.BulkheadConfig{MaxConcurrent: 4}
	retry := &resilience.RetryConfig{MaxAttempts: 2}

	cards := Config{Name: "cards", Retry: retry, CircuitBreaker: breaker, RateLimiter: limiter, Bulkhead: bulkhead}
	decks := Config{Name: "decks", Retry: retry, CircuitBreaker: breaker, RateLimiter: limiter, Bulkhead: bulkhead}
	cards.ApplyDefaults()
	decks.ApplyDefaults()

	if cards.CircuitBreaker.Name != "cards" || decks.CircuitBreaker.Name != "decks" {
		t.Errorf("expected breaker names cards and decks, got %q and %q", cards.CircuitBreaker.Name, decks.CircuitBreaker.Name)
	}
	if cards.RateLimiter.Name != "cards" || decks.Bulkhead.Name != "decks" {
		t.Errorf("expected per-client names, got %q and %q", cards.RateLimiter.Name, decks.Bulkhead.Name)
	}
	if breaker.Name != "" || limiter.Name != "" || bulkhead.Name != "" {
		t.Error("expected the shared configs to stay untouched")
	}
	if retry.RetryIf != nil || breaker.IsFailure != nil {
		t.Error("expected the shared predicates to stay unset")
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Name: "api", Timeout: 10 * time.Second, Protocol: ProtocolH2C}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second || cfg.Name != "api" || cfg.Protocol != ProtocolH2C {
		t.Errorf("expected explicit values kept, got %+v", cfg)
	}
}

func TestConfig_RetryIfSkipsStatusAndConfigErrors(t *testing.T) {
	cfg := Config{Retry: &resilience.RetryConfig{}}
	cfg.ApplyDefaults()
	if !cfg.Retry.RetryIf(apperrors.Network(nil)) {
		t.Error("expected network errors to be retried")
	}
	if cfg.Retry.RetryIf(apperrors.InvalidTarget("x", "bad")) {
		t.Error("expected INVALID_TARGET not to be retried")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{Timeout: 10 * time.Second}},
		{name: "valid base url", cfg: Config{BaseURL: "https://api.example.com/v1"}},
		{name: "negative timeout", cfg: Config{Timeout: -1}, wantErr: "timeout"},
		{name: "bad base url", cfg: Config{BaseURL: "not a url"}, wantErr: "base_url"},
		{name: "unknown protocol", cfg: Config{Protocol: "spdy"}, wantErr: "protocol"},
		{name: "tls cert without key", cfg: Config{TLS: &security.TLSConfig{CertFile: "cert.pem"}}, wantErr: "tls"},
		{name: "h2c with tls", cfg: Config{Protocol: ProtocolH2C, TLS: &security.TLSConfig{SkipVerify: true}}, wantErr: "protocol"},
		{name: "bearer without token", cfg: Config{Auth: &AuthConfig{Type: AuthBearer}}, wantErr: "auth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.IsInvalidConfig(err) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if !hasFieldPrefix(err, tt.wantErr) {
				t.Errorf("expected a field error under %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func hasFieldPrefix(err error, prefix string) bool {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	fields, _ := appErr.Details["fields"].([]validation.FieldError)
	for _, f := range fields {
		if strings.HasPrefix(f.Field, prefix) {
			return true
		}
	}
	return false
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxAttempts <= 0 {
		t.Error("expected positive MaxAttempts")
	}
	if cfg.RetryIf == nil {
		t.Error("expected RetryIf to be set")
	}
}

func TestDefaultResilienceConfigs(t *testing.T) {
	if cfg := DefaultCircuitBreakerConfig("test"); cfg.Name != "test" || cfg.IsFailure == nil {
		t.Errorf("unexpected circuit breaker config %+v", cfg)
	}
	if cfg := DefaultRateLimiterConfig("test"); cfg.Name != "test" {
		t.Errorf("expected name 'test', got %q", cfg.Name)
	}
	if cfg := DefaultBulkheadConfig("test"); cfg.Name != "test" || cfg.MaxConcurrent <= 0 {
		t.Errorf("unexpected bulkhead config %+v", cfg)
	}
}
