// Package gojson decodes JSON bodies with github.com/goccy/go-json, a
// drop-in encoding/json replacement with a faster decoder.
package gojson

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"

	"github.com/kbukum/fuel/codec"
)

// Name is the registry name of this codec.
const Name = "gojson"

func init() {
	codec.RegisterFactory(Name, Factory)
}

// Option configures a Provider.
type Option func(*Provider)

// DisallowUnknownFields fails decoding when the body has a field the
// target struct does not.
func DisallowUnknownFields() Option {
	return func(p *Provider) { p.disallowUnknown = true }
}

// UseNumber decodes numbers into interface values as json.Number.
func UseNumber() Option {
	return func(p *Provider) { p.useNumber = true }
}

// Provider builds go-json decoders.
type Provider struct {
	disallowUnknown bool
	useNumber       bool
}

var _ codec.Provider = (*Provider)(nil)

// New creates a provider with the given options.
func New(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Default returns the shared provider with no options set.
var Default = sync.OnceValue(func() *Provider { return New() })

// Factory builds a provider from option values: disallow_unknown_fields
// and use_number.
func Factory(cfg map[string]any) (codec.Provider, error) {
	if cfg == nil {
		return Default(), nil
	}
	o := codec.Options(cfg)
	if err := o.Check("disallow_unknown_fields", "use_number"); err != nil {
		return nil, err
	}
	var opts []Option
	if ok, err := o.Bool("disallow_unknown_fields"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, DisallowUnknownFields())
	}
	if ok, err := o.Bool("use_number"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, UseNumber())
	}
	return New(opts...), nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return true }

// Decoder returns a decoder for t.
func (p *Provider) Decoder(t codec.Type) (codec.Decoder, error) {
	return codec.NewDecoder(t, p.unmarshal)
}

var errInvalidJSON = errors.New("invalid JSON document")

func (p *Provider) unmarshal(data []byte, v any) error {
	if !json.Valid(data) {
		return errInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if p.disallowUnknown {
		dec.DisallowUnknownFields()
	}
	if p.useNumber {
		dec.UseNumber()
	}
	return dec.Decode(v)
}
