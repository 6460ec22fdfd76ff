// Package yaml decodes YAML bodies with github.com/goccy/go-yaml. JSON is a
// subset of YAML, so this codec also reads JSON bodies.
package yaml

import (
	"context"
	"sync"

	goyaml "github.com/goccy/go-yaml"

	"github.com/kbukum/fuel/codec"
)

// Name is the registry name of this codec.
const Name = "yaml"

func init() {
	codec.RegisterFactory(Name, Factory)
}

// Option configures a Provider.
type Option func(*Provider)

// Strict fails decoding when the body has a field the target struct does
// not.
func Strict() Option {
	return func(p *Provider) { p.options = append(p.options, goyaml.DisallowUnknownField()) }
}

// UseJSONUnmarshaler calls UnmarshalJSON on types that implement
// json.Unmarshaler but not the YAML unmarshaler interfaces.
func UseJSONUnmarshaler() Option {
	return func(p *Provider) { p.options = append(p.options, goyaml.UseJSONUnmarshaler()) }
}

// Provider builds go-yaml decoders.
type Provider struct {
	options []goyaml.DecodeOption
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

// Factory builds a provider from option values: strict and
// use_json_unmarshaler.
func Factory(cfg map[string]any) (codec.Provider, error) {
	if cfg == nil {
		return Default(), nil
	}
	o := codec.Options(cfg)
	if err := o.Check("strict", "use_json_unmarshaler"); err != nil {
		return nil, err
	}
	var opts []Option
	strict, err := o.Bool("strict")
	if err != nil {
		return nil, err
	}
	if strict {
		opts = append(opts, Strict())
	}
	useJSON, err := o.Bool("use_json_unmarshaler")
	if err != nil {
		return nil, err
	}
	if useJSON {
		opts = append(opts, UseJSONUnmarshaler())
	}
	return New(opts...), nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return true }

// Decoder returns a decoder for t.
func (p *Provider) Decoder(t codec.Type) (codec.Decoder, error) {
	return codec.NewDecoder(t, p.unmarshal)
}

func (p *Provider) unmarshal(data []byte, v any) error {
	return goyaml.UnmarshalWithOptions(data, v, p.options...)
}
