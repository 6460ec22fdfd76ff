// Package ugorji decodes JSON bodies with the JsonHandle of
// github.com/ugorji/go/codec.
package ugorji

import (
	"bytes"
	"context"
	"errors"
	"sync"

	ugcodec "github.com/ugorji/go/codec"

	"github.com/kbukum/fuel/codec"
)

// Name is the registry name of this codec.
const Name = "ugorji"

func init() {
	codec.RegisterFactory(Name, Factory)
}

// Option configures a Provider.
type Option func(*Provider)

// WithTagKey reads field names from the given struct tags, in order.
// The default is "codec" then "json".
func WithTagKey(keys ...string) Option {
	return func(p *Provider) { p.tagKeys = keys }
}

// ErrorIfNoField fails decoding when the body has a field the target
// struct does not.
func ErrorIfNoField() Option {
	return func(p *Provider) { p.handle.ErrorIfNoField = true }
}

// Provider builds decoders on a private JsonHandle. The handle is fully
// configured before first use and is safe for concurrent decoding.
type Provider struct {
	handle  ugcodec.JsonHandle
	tagKeys []string
}

var _ codec.Provider = (*Provider)(nil)

// New creates a provider with the given options.
func New(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.tagKeys) > 0 {
		p.handle.TypeInfos = ugcodec.NewTypeInfos(p.tagKeys)
	}
	return p
}

// Default returns the shared provider with no options set.
var Default = sync.OnceValue(func() *Provider { return New() })

// Factory builds a provider from option values: tag_key and
// error_if_no_field.
func Factory(cfg map[string]any) (codec.Provider, error) {
	if cfg == nil {
		return Default(), nil
	}
	o := codec.Options(cfg)
	if err := o.Check("tag_key", "error_if_no_field"); err != nil {
		return nil, err
	}
	var opts []Option
	tagKey, err := o.String("tag_key")
	if err != nil {
		return nil, err
	}
	if tagKey != "" {
		opts = append(opts, WithTagKey(tagKey))
	}
	strict, err := o.Bool("error_if_no_field")
	if err != nil {
		return nil, err
	}
	if strict {
		opts = append(opts, ErrorIfNoField())
	}
	return New(opts...), nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return true }

// Decoder returns a decoder for t.
func (p *Provider) Decoder(t codec.Type) (codec.Decoder, error) {
	return codec.NewDecoder(t, p.unmarshal)
}

var errTrailingData = errors.New("invalid character after top-level value")

func (p *Provider) unmarshal(data []byte, v any) error {
	dec := ugcodec.NewDecoderBytes(data, &p.handle)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if n := dec.NumBytesRead(); n < len(data) && len(bytes.TrimSpace(data[n:])) > 0 {
		return errTrailingData
	}
	return nil
}
