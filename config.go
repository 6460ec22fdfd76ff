package fuel

import (
	"github.com/kbukum/fuel/codec/stdjson"
	"github.com/kbukum/fuel/config"
	"github.com/kbukum/fuel/httpclient"
	"github.com/kbukum/fuel/logger"
	"github.com/kbukum/fuel/validation"
)

// Config configures the process-wide client.
//
//	codec: jsoniter
//	codec_options:
//	  case_sensitive: true
//	http:
//	  base_url: https://api.example.com
//	  timeout: 10s
//	logging:
//	  level: debug
type Config struct {
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`

	// Codec names the default decoder provider. Defaults to "stdjson".
	Codec string `yaml:"codec" mapstructure:"codec"`

	// CodecOptions are passed to the codec's factory. Empty uses the
	// codec's shared default instance.
	CodecOptions map[string]any `yaml:"codec_options" mapstructure:"codec_options"`

	// Logging, when set, gives the client its own logger instead of the
	// global one.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.HTTP.ApplyDefaults()
	if c.Codec == "" {
		c.Codec = stdjson.Name
	}
	if c.hasLogging() {
		c.Logging.ApplyDefaults()
	}
}

// Validate checks the configuration. Failures are INVALID_CONFIG.
func (c *Config) Validate() error {
	v := validation.New()
	v.Merge("http", c.HTTP.Validate())
	v.Required("codec", c.Codec)
	if c.hasLogging() {
		v.Merge("logging", c.Logging.Validate())
	}
	return v.Err()
}

func (c *Config) hasLogging() bool {
	return c.Logging != (logger.Config{})
}

// LoadConfig reads name.{yml,yaml,json,toml} and NAME_* environment
// variables into a Config, then applies defaults and validates it.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.Load(name, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
