package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/fuel/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "John")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "   ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New().OneOf("protocol", "h2c", []string{"http1", "h2c"})
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}
	v = New().OneOf("protocol", "", []string{"http1", "h2c"})
	if v.HasErrors() {
		t.Error("empty value should be skipped")
	}
	v = New().OneOf("protocol", "h3", []string{"http1", "h2c"})
	if !v.HasErrors() || !strings.Contains(v.Errors()[0].Message, "http1, h2c") {
		t.Errorf("expected one-of error, got %v", v.Errors())
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	v := New()
	v.Custom(false, "auth.token", "is required for bearer auth")
	v.AddError("timeout", "must be positive")
	err := v.Err()
	if !apperrors.IsInvalidConfig(err) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
	if !strings.Contains(err.Error(), "auth.token: is required for bearer auth; timeout: must be positive") {
		t.Errorf("unexpected message: %v", err)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected AppError")
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field details, got %v", appErr.Details["fields"])
	}
}

type tlsSettings struct {
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file" validate:"required_with=CertFile"`
}

type sampleConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,http_url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Protocol   string        `mapstructure:"protocol" validate:"omitempty,oneof=http1 h2c"`
	MaxRetries int           `yaml:"max_retries" validate:"min=0,max=10"`
	TLS        tlsSettings   `mapstructure:"tls"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    sampleConfig
		fields []string
	}{
		{"valid", sampleConfig{BaseURL: "https://api.example.com", Timeout: time.Second, Protocol: "h2c"}, nil},
		{"zero", sampleConfig{}, nil},
		{"bad url", sampleConfig{BaseURL: "ftp://files.example.com"}, []string{"base_url"}},
		{"negative timeout", sampleConfig{Timeout: -time.Second}, []string{"timeout"}},
		{"unknown protocol", sampleConfig{Protocol: "h3"}, []string{"protocol"}},
		{"yaml tag name", sampleConfig{MaxRetries: 11}, []string{"max_retries"}},
		{"nested", sampleConfig{TLS: tlsSettings{CertFile: "c.pem"}}, []string{"tls.key_file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !apperrors.IsInvalidConfig(err) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			for _, f := range tt.fields {
				if !strings.Contains(err.Error(), f+":") {
					t.Errorf("expected field %q in %v", f, err)
				}
			}
		})
	}
}

func TestValidatorMerge(t *testing.T) {
	v := New()
	v.Merge("http", Validate(sampleConfig{Timeout: -1}))
	v.Merge("codec", errors.New("unknown codec"))
	v.Merge("ignored", nil)

	got := v.Errors()
	if len(got) != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}
	if got[0].Field != "http.timeout" {
		t.Errorf("expected http.timeout, got %q", got[0].Field)
	}
	if got[1].Field != "codec" || got[1].Message != "unknown codec" {
		t.Errorf("unexpected merged error %+v", got[1])
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxRetries"); got != "max_retries" {
		t.Errorf("expected max_retries, got %q", got)
	}
}
