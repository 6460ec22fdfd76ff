// Package jsoniter decodes JSON bodies with github.com/json-iterator/go.
//
// Each Provider owns a frozen jsoniter configuration, so naming strategies
// and type decoders registered on one provider never leak into another.
package jsoniter

import (
	"context"
	"reflect"
	"sync"
	"unsafe"

	jsonit "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"

	"github.com/kbukum/fuel/codec"
)

// Name is the registry name of this codec.
const Name = "jsoniter"

func init() {
	codec.RegisterFactory(Name, Factory)
}

// Option configures a Provider.
type Option func(*Provider)

// WithTagKey reads field names from the given struct tag instead of "json".
func WithTagKey(key string) Option {
	return func(p *Provider) { p.config.TagKey = key }
}

// CaseSensitive matches object keys to field names exactly.
func CaseSensitive() Option {
	return func(p *Provider) { p.config.CaseSensitive = true }
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

// WithTypeDecoder decodes every value of type T with fn. fn reads exactly
// one value from iter and reports failures with iter.ReportError.
func WithTypeDecoder[T any](fn func(iter *jsonit.Iterator) T) Option {
	return func(p *Provider) {
		p.decoders[reflect.TypeFor[T]()] = typeDecoder[T](fn)
	}
}

type typeDecoder[T any] func(iter *jsonit.Iterator) T

func (d typeDecoder[T]) Decode(ptr unsafe.Pointer, iter *jsonit.Iterator) {
	*(*T)(ptr) = d(iter)
}

// typeExtension serves the registered type decoders to one frozen API.
type typeExtension struct {
	jsonit.DummyExtension
	decoders map[reflect.Type]jsonit.ValDecoder
}

func (e *typeExtension) CreateDecoder(typ reflect2.Type) jsonit.ValDecoder {
	return e.decoders[typ.Type1()]
}

// Provider builds decoders on a private jsoniter API.
type Provider struct {
	config   jsonit.Config
	decoders map[reflect.Type]jsonit.ValDecoder
	api      jsonit.API
}

var _ codec.Provider = (*Provider)(nil)

// New creates a provider. Without options it behaves like
// jsoniter.ConfigCompatibleWithStandardLibrary.
func New(opts ...Option) *Provider {
	p := &Provider{
		config: jsonit.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		},
		decoders: make(map[reflect.Type]jsonit.ValDecoder),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.api = p.config.Froze()
	if len(p.decoders) > 0 {
		p.api.RegisterExtension(&typeExtension{decoders: p.decoders})
	}
	return p
}

// Default returns the shared provider with no options set.
var Default = sync.OnceValue(func() *Provider { return New() })

// Factory builds a provider from option values: tag_key, case_sensitive,
// disallow_unknown_fields and use_number. Type decoders can only be set
// with New.
func Factory(cfg map[string]any) (codec.Provider, error) {
	if cfg == nil {
		return Default(), nil
	}
	o := codec.Options(cfg)
	if err := o.Check("tag_key", "case_sensitive", "disallow_unknown_fields", "use_number"); err != nil {
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
	flags := []struct {
		key string
		opt Option
	}{
		{"case_sensitive", CaseSensitive()},
		{"disallow_unknown_fields", DisallowUnknownFields()},
		{"use_number", UseNumber()},
	}
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
