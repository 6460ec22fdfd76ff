package httpclient

import (
	"time"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/resilience"
	"github.com/kbukum/fuel/validation"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "http"
)

// Protocol selects the wire protocol of the default engine.
type Protocol string

const (
	// ProtocolHTTP1 negotiates HTTP/1.1, or HTTP/2 over TLS via ALPN.
	ProtocolHTTP1 Protocol = "http1"
	// ProtocolH2C speaks cleartext HTTP/2 with prior knowledge.
	ProtocolH2C Protocol = "h2c"
)

// Config configures the HTTP client and its default engine.
type Config struct {
	// Name identifies the client in logs, spans and metrics. Defaults to "http".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL resolves relative request targets.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`

	// Timeout bounds one exchange, body read included for buffered calls.
	// Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Protocol is "http1" (default) or "h2c".
	Protocol Protocol `yaml:"protocol" mapstructure:"protocol" validate:"omitempty,oneof=http1 h2c"`

	// UserAgent overrides the default "fuel/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to requests that do not set them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RequestID adds an X-Request-ID header to every request.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// MaxIdleConnsPerHost tunes the connection pool. Zero keeps the transport default.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host" validate:"gte=0"`

	// Auth configures authentication applied to all requests.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures engine retries of network failures. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`

	// RateLimiter configures rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`

	// Bulkhead bounds the number of calls in flight. Nil disables it.
	Bulkhead *resilience.BulkheadConfig `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults. The
// resilience configs are copied first, so a config shared by several
// clients is never written to.
func (c *Config) ApplyDefaults() {
	c.Retry = clone(c.Retry)
	c.CircuitBreaker = clone(c.CircuitBreaker)
	c.RateLimiter = clone(c.RateLimiter)
	c.Bulkhead = clone(c.Bulkhead)
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Protocol == "" {
		c.Protocol = ProtocolHTTP1
	}
	if c.Retry != nil && c.Retry.RetryIf == nil {
		c.Retry.RetryIf = apperrors.IsRetryable
	}
	if c.CircuitBreaker != nil {
		if c.CircuitBreaker.Name == "" {
			c.CircuitBreaker.Name = c.Name
		}
		if c.CircuitBreaker.IsFailure == nil {
			c.CircuitBreaker.IsFailure = apperrors.IsNetwork
		}
	}
	if c.RateLimiter != nil && c.RateLimiter.Name == "" {
		c.RateLimiter.Name = c.Name
	}
	if c.Bulkhead != nil && c.Bulkhead.Name == "" {
		c.Bulkhead.Name = c.Name
	}
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Validate checks that the configuration is valid. Failures are INVALID_CONFIG.
func (c *Config) Validate() error {
	v := validation.New()
	v.Merge("", validation.Validate(c))
	if c.TLS != nil {
		v.Merge("tls", c.TLS.Validate())
		v.Custom(!(c.Protocol == ProtocolH2C && c.TLS.IsEnabled()), "protocol", "h2c is cleartext and cannot be combined with tls")
	}
	if c.Auth != nil {
		c.Auth.validate(v)
	}
	return v.Err()
}

// DefaultRetryConfig returns a retry config that retries network failures only.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = apperrors.IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns a circuit breaker config that counts network failures.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = apperrors.IsNetwork
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}

// DefaultBulkheadConfig returns a default bulkhead config.
func DefaultBulkheadConfig(name string) *resilience.BulkheadConfig {
	cfg := resilience.DefaultBulkheadConfig(name)
	return &cfg
}
