package codec

import (
	"fmt"
	"reflect"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/provider"
)

// Decoder turns body bytes into a value of one fixed Type. Decoders are
// safe for concurrent use and can be built once and reused.
type Decoder interface {
	Type() Type
	Decode(data []byte) (any, error)
}

// Provider builds decoders for one codec. A provider that cannot handle a
// type returns an error; callers never fall back to another provider.
type Provider interface {
	provider.Provider
	Decoder(t Type) (Decoder, error)
}

// Unmarshaler is the shape of most codec entry points, e.g. json.Unmarshal.
type Unmarshaler func(data []byte, v any) error

type unmarshalDecoder struct {
	t  Type
	fn Unmarshaler
}

// NewDecoder returns a Decoder that allocates a new value of t and fills it
// with fn. Erased types and kinds no codec can fill are rejected with
// UNSUPPORTED_TYPE.
func NewDecoder(t Type, fn Unmarshaler) (Decoder, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, apperrors.UnsupportedType(t.String(), "nil unmarshal function")
	}
	return &unmarshalDecoder{t: t, fn: fn}, nil
}

func (d *unmarshalDecoder) Type() Type { return d.t }

func (d *unmarshalDecoder) Decode(data []byte) (any, error) {
	v := reflect.New(d.t.rt)
	if err := d.fn(data, v.Interface()); err != nil {
		return nil, apperrors.Decode(d.t.String(), err)
	}
	return v.Elem().Interface(), nil
}

type funcDecoder[T any] struct {
	fn func([]byte) (T, error)
}

// DecoderFunc adapts a hand-written function into a Decoder for T.
func DecoderFunc[T any](fn func(data []byte) (T, error)) Decoder {
	return funcDecoder[T]{fn: fn}
}

func (d funcDecoder[T]) Type() Type { return TypeOf[T]() }

func (d funcDecoder[T]) Decode(data []byte) (any, error) {
	return d.fn(data)
}

// DecoderFor builds a decoder for T from p, for callers that cache
// decoders across many calls.
func DecoderFor[T any](p Provider) (Decoder, error) {
	return resolve(TypeOf[T](), p)
}

func resolve(t Type, p Provider) (Decoder, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.UnsupportedType(t.String(), "no codec provider")
	}
	dec, err := p.Decoder(t)
	if err != nil {
		if apperrors.CodeOf(err) != "" {
			return nil, err
		}
		return nil, apperrors.UnsupportedType(t.String(), fmt.Sprintf("%s: %v", p.Name(), err)).WithCause(err)
	}
	if dec == nil {
		return nil, apperrors.UnsupportedType(t.String(), p.Name()+": no decoder")
	}
	return dec, nil
}

func checkType(t Type) error {
	if t.IsZero() {
		return apperrors.UnsupportedType(t.String(), "missing type")
	}
	if t.Erased() {
		return apperrors.UnsupportedType(t.String(), "element type is erased; describe it with TypeOf or SliceOf/MapOf/PointerOf")
	}
	if rt := t.Unsupported(); rt != nil {
		return apperrors.UnsupportedType(t.String(), fmt.Sprintf("%s values cannot be decoded", rt.Kind()))
	}
	return nil
}
