package httpclient

import "context"

// Engine performs one HTTP exchange. Cancelling ctx aborts the in-flight
// exchange. Status codes are not interpreted: any response that arrives is
// returned without error. Implementations must be safe for concurrent use.
type Engine interface {
	Submit(ctx context.Context, req *Request) (*Response, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, req *Request) (*Response, error)

// Submit calls f(ctx, req).
func (f EngineFunc) Submit(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
