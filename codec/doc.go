// Package codec decodes response bodies into caller-specified Go types.
//
// A Type is a reified descriptor of the target. Generic containers keep
// their element types, so a list of cards is described as
//
//	codec.SliceOf(codec.TypeOf[Card]())
//
// rather than a bare slice of interfaces. Descriptors whose element type is
// unknown are rejected with UNSUPPORTED_TYPE instead of guessed.
//
// A Provider wraps one codec library and builds a Decoder per Type. The
// subpackages stdjson, gojson, jsoniter, sonic, ugorji and yaml each provide
// one, register it in DefaultRegistry when imported, and expose a lazily
// built Default instance. Providers are never swapped implicitly: Decode
// uses exactly the provider it is given.
//
// Decode resolves a decoder on every call; DecodeWith takes a decoder built
// once with DecoderFor and skips resolution:
//
//	dec, err := codec.DecoderFor[[]Card](jsoniter.New(jsoniter.CaseSensitive()))
//	...
//	cards, err := codec.DecodeWith[[]Card](resp, dec)
package codec
