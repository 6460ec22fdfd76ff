package codec

import (
	"bytes"
	"errors"
	"fmt"

	apperrors "github.com/kbukum/fuel/errors"
)

// BodySource supplies the bytes to decode. *httpclient.Response implements it.
type BodySource interface {
	Bytes() ([]byte, error)
}

// BytesSource is a BodySource over an in-memory body.
type BytesSource []byte

func (b BytesSource) Bytes() ([]byte, error) { return b, nil }

var errEmptyBody = errors.New("empty body")

// Decode resolves a decoder for t from p and decodes src into T. A zero t
// means TypeOf[T](). t must be assignable to T; T may be an interface when
// t carries the concrete shape.
func Decode[T any](src BodySource, t Type, p Provider) (T, error) {
	var zero T
	if t.IsZero() {
		t = TypeOf[T]()
	}
	if !assignableTo[T](t) {
		return zero, mismatch[T](t)
	}
	dec, err := resolve(t, p)
	if err != nil {
		return zero, err
	}
	return decodeBody[T](src, dec)
}

// DecodeWith decodes src with a pre-built decoder, skipping resolution.
func DecodeWith[T any](src BodySource, dec Decoder) (T, error) {
	var zero T
	if dec == nil {
		return zero, apperrors.UnsupportedType(TypeOf[T]().String(), "nil decoder")
	}
	if !assignableTo[T](dec.Type()) {
		return zero, mismatch[T](dec.Type())
	}
	return decodeBody[T](src, dec)
}

func decodeBody[T any](src BodySource, dec Decoder) (T, error) {
	var zero T
	t := dec.Type()
	if src == nil {
		return zero, apperrors.Decode(t.String(), errEmptyBody)
	}
	data, err := src.Bytes()
	if err != nil {
		if apperrors.CodeOf(err) != "" {
			return zero, err
		}
		return zero, apperrors.Decode(t.String(), err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if t.Nullable() {
			return zero, nil
		}
		return zero, apperrors.Decode(t.String(), fmt.Errorf("%w or null for non-nullable type", errEmptyBody))
	}

	v, err := dec.Decode(data)
	if err != nil {
		if apperrors.CodeOf(err) != "" {
			return zero, err
		}
		return zero, apperrors.Decode(t.String(), err)
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, apperrors.Decode(t.String(), fmt.Errorf("decoder returned %T", v))
	}
	return out, nil
}

func mismatch[T any](t Type) error {
	return apperrors.UnsupportedType(t.String(), fmt.Sprintf("cannot decode into %s", TypeOf[T]()))
}
