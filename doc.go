// Package fuel is a small HTTP client facade: issue a request against a URL
// or a path, run it as a cancellable call, and decode the body into a Go
// type through a pluggable codec.
//
//	call, err := fuel.Get(ctx, "https://deckofcards.example.com/cards", nil)
//	if err != nil {
//		return err // INVALID_TARGET, nothing was sent
//	}
//	cards, err := fuel.As[[]Card](ctx, call)
//
// Errors carry a code from package errors: INVALID_TARGET, NETWORK_ERROR,
// CANCELED, UNSUPPORTED_TYPE or DECODE_ERROR, so callers can tell a request
// that never left from one that failed on the wire or one whose body did
// not decode.
//
// The process-wide client is built lazily from a zero Config. Use Configure
// or LoadConfig to set a base URL, timeouts, resilience policies and the
// default codec. Every codec under codec/ is registered by importing this
// package.
package fuel
