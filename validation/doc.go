// Package validation checks fuel configuration structs. Failures surface as
// INVALID_CONFIG errors carrying per-field details.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string        `mapstructure:"base_url" validate:"omitempty,http_url"`
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(token != "", "auth.token", "is required for bearer auth")
//	err := v.Err()
package validation
