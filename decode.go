package fuel

import (
	"context"

	"github.com/kbukum/fuel/codec"
	"github.com/kbukum/fuel/httpclient"
)

// DecodeOption customizes how As and Decode pick a decoder.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	typ      codec.Type
	provider codec.Provider
	decoder  codec.Decoder
}

// WithType sets the target descriptor, e.g. codec.SliceOf(codec.TypeOf[Card]()).
// It defaults to the type parameter of As.
func WithType(t codec.Type) DecodeOption {
	return func(o *decodeOptions) { o.typ = t }
}

// WithProvider decodes with p instead of the configured codec.
func WithProvider(p codec.Provider) DecodeOption {
	return func(o *decodeOptions) { o.provider = p }
}

// WithDecoder decodes with a pre-built decoder. No provider is consulted.
func WithDecoder(d codec.Decoder) DecodeOption {
	return func(o *decodeOptions) { o.decoder = d }
}

// As waits for call and decodes its body into T. A call that fails or is
// cancelled returns its error and nothing is decoded. Status codes are not
// inspected.
func As[T any](ctx context.Context, call *httpclient.Call, opts ...DecodeOption) (T, error) {
	var zero T
	resp, err := call.Await(ctx)
	if err != nil {
		return zero, err
	}
	defer resp.Close()
	return Decode[T](resp, opts...)
}

// Decode decodes src into T with the configured codec unless an option
// says otherwise.
func Decode[T any](src codec.BodySource, opts ...DecodeOption) (T, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.decoder != nil {
		return codec.DecodeWith[T](src, o.decoder)
	}
	p := o.provider
	if p == nil {
		inst, err := load()
		if err != nil {
			var zero T
			return zero, err
		}
		p = inst.codec
	}
	return codec.Decode[T](src, o.typ, p)
}

// Text waits for call and returns its body uninterpreted.
func Text(ctx context.Context, call *httpclient.Call) (string, error) {
	resp, err := call.Await(ctx)
	if err != nil {
		return "", err
	}
	defer resp.Close()
	return resp.Text()
}
