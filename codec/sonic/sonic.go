// Package sonic decodes JSON bodies with github.com/bytedance/sonic, a
// JIT-backed decoder for amd64 and arm64. Other platforms fall back to a
// compatible implementation inside sonic.
package sonic

import (
	"context"
	"sync"

	bytesonic "github.com/bytedance/sonic"

	"github.com/kbukum/fuel/codec"
)

// Name is the registry name of this codec.
const Name = "sonic"

func init() {
	codec.RegisterFactory(Name, Factory)
}

// Option configures a Provider.
type Option func(*Provider)

// Std matches encoding/json behavior: strings are copied out of the body
// and validated as UTF-8.
func Std() Option {
	return func(p *Provider) {
		p.config.EscapeHTML = true
		p.config.SortMapKeys = true
		p.config.CompactMarshaler = true
		p.config.CopyString = true
		p.config.ValidateString = true
	}
}

// DisallowUnknownFields fails decoding when the body has a field the
// target struct does not.
func DisallowUnknownFields() Option {
	return func(p *Provider) { p.config.DisallowUnknownFields = true }
}

// UseNumber decodes numbers into interface values as json.Number.
func UseNumber() Option {
	return func(p *Provider) { p.config.UseNumber = true }
}

// Provider builds decoders on a frozen sonic API.
type Provider struct {
	config bytesonic.Config
	api    bytesonic.API
}

var _ codec.Provider = (*Provider)(nil)

// New creates a provider with the given options.
func New(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	p.api = p.config.Froze()
	return p
}

// Default returns the shared provider with no options set.
var Default = sync.OnceValue(func() *Provider { return New() })

// Factory builds a provider from option values: std,
// disallow_unknown_fields and use_number.
func Factory(cfg map[string]any) (codec.Provider, error) {
	if cfg == nil {
		return Default(), nil
	}
	o := codec.Options(cfg)
	if err := o.Check("std", "disallow_unknown_fields", "use_number"); err != nil {
		return nil, err
	}
	flags := []struct {
		key string
		opt Option
	}{
		{"std", Std()},
		{"disallow_unknown_fields", DisallowUnknownFields()},
		{"use_number", UseNumber()},
	}
	var opts []Option
	for _, f := range flags {
		ok, err := o.Bool(f.key)
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, f.opt)
		}
	}
	return New(opts...), nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return true }

// Decoder returns a decoder for t.
func (p *Provider) Decoder(t codec.Type) (codec.Decoder, error) {
	return codec.NewDecoder(t, p.api.Unmarshal)
}
