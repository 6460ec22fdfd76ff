// Package provider defines the small generic contracts shared by fuel's
// pluggable parts: the HTTP engine and the codec providers.
//
//   - Provider: a named backend that can report availability.
//   - RequestResponse[I, O]: one input, one output (an HTTP exchange).
//   - Registry[T]: named factories plus cached instances.
//   - Middleware[I, O] and Chain: wrappers around a RequestResponse.
//
// Usage:
//
//	reg := provider.NewRegistry[codec.Provider]()
//	reg.RegisterFactory("stdjson", stdjson.Factory)
//	p, err := reg.Create("stdjson", map[string]any{"use_number": true})
//
//	engine := provider.Chain(
//	    provider.WithLogging[*httpclient.Request, *httpclient.Response](log),
//	)(adapter)
package provider
