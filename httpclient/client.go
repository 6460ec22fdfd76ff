package httpclient

import (
	"context"
	"time"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/logger"
	"github.com/kbukum/fuel/provider"
	"github.com/kbukum/fuel/resilience"
)

// Client ties a Builder to an Engine. Verb methods build the request
// synchronously, so an INVALID_TARGET error is returned before anything
// runs, then start a buffered Call.
type Client struct {
	name      string
	builder   *Builder
	engine    Engine
	adapter   *Adapter
	bulkhead  *resilience.Bulkhead
	requestID bool
	log       *logger.Logger

	adapterOpts []Option
	middleware  []provider.Middleware[*Request, *Response]
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithEngine replaces the default Adapter engine.
func WithEngine(e Engine) ClientOption {
	return func(c *Client) { c.engine = e }
}

// WithAdapterOptions passes options to the default Adapter.
func WithAdapterOptions(opts ...Option) ClientOption {
	return func(c *Client) { c.adapterOpts = append(c.adapterOpts, opts...) }
}

// WithMiddleware wraps the default Adapter in provider middleware, applied
// in order. It has no effect together with WithEngine.
func WithMiddleware(mw ...provider.Middleware[*Request, *Response]) ClientOption {
	return func(c *Client) { c.middleware = append(c.middleware, mw...) }
}

// WithClientLogger sets the logger for call events.
func WithClientLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client from cfg. Unless WithEngine is given, the
// engine is an Adapter built from the same config.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	builder, err := NewBuilder(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		name:      cfg.Name,
		builder:   builder,
		requestID: cfg.RequestID,
		log:       logger.Get("fuel.httpclient"),
	}
	if cfg.Bulkhead != nil {
		c.bulkhead = resilience.NewBulkhead(*cfg.Bulkhead)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		a, err := New(cfg, append([]Option{WithLogger(c.log)}, c.adapterOpts...)...)
		if err != nil {
			return nil, err
		}
		c.adapter = a
		c.engine = a
		if len(c.middleware) > 0 {
			c.engine = ProviderEngine(provider.Chain(c.middleware...)(a))
		}
	}
	return c, nil
}

// Build creates a request against this client's base URL.
func (c *Client) Build(method Method, target any, body *Body, opts ...RequestOption) (*Request, error) {
	if c.requestID {
		opts = append([]RequestOption{WithRequestID()}, opts...)
	}
	return c.builder.Build(method, target, body, opts...)
}

// Request builds and starts a call with any method.
func (c *Client) Request(ctx context.Context, method Method, target any, body *Body, opts ...RequestOption) (*Call, error) {
	req, err := c.Build(method, target, body, opts...)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req), nil
}

// Get starts a GET call. body is usually nil; a non-nil body is sent as is.
func (c *Client) Get(ctx context.Context, target any, body *Body, opts ...RequestOption) (*Call, error) {
	return c.Request(ctx, MethodGet, target, body, opts...)
}

// Post starts a POST call.
func (c *Client) Post(ctx context.Context, target any, body *Body, opts ...RequestOption) (*Call, error) {
	return c.Request(ctx, MethodPost, target, body, opts...)
}

// Put starts a PUT call.
func (c *Client) Put(ctx context.Context, target any, body *Body, opts ...RequestOption) (*Call, error) {
	return c.Request(ctx, MethodPut, target, body, opts...)
}

// Patch starts a PATCH call.
func (c *Client) Patch(ctx context.Context, target any, body *Body, opts ...RequestOption) (*Call, error) {
	return c.Request(ctx, MethodPatch, target, body, opts...)
}

// Delete starts a DELETE call. body may be nil.
func (c *Client) Delete(ctx context.Context, target any, body *Body, opts ...RequestOption) (*Call, error) {
	return c.Request(ctx, MethodDelete, target, body, opts...)
}

// Do starts a call for a built request.
func (c *Client) Do(ctx context.Context, req *Request, opts ...CallOption) *Call {
	log := c.log.WithContext(ctx)
	if id := req.Header(HeaderRequestID); id != "" {
		log = log.WithFields(logger.Fields(logger.FieldRequestID, id))
	}
	log.Debug("call started", logger.CallFields(string(req.Method()), req.URL(), 0))

	callOpts := make([]CallOption, 0, len(opts)+2)
	if c.bulkhead != nil {
		callOpts = append(callOpts, WithBulkhead(c.bulkhead))
	}
	callOpts = append(callOpts, func(o *callOptions) {
		o.observe = func(resp *Response, err error, elapsed time.Duration) {
			c.logResult(log, req, resp, err, elapsed)
		}
	})
	callOpts = append(callOpts, opts...)
	return Go(ctx, c.engine, req, callOpts...)
}

// Execute runs a request and waits for the response.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, req).Await(ctx)
}

func (c *Client) logResult(log *logger.Logger, req *Request, resp *Response, err error, elapsed time.Duration) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	fields := logger.MergeWithDuration(logger.CallFields(string(req.Method()), req.URL(), status), elapsed)
	switch {
	case apperrors.IsCanceled(err):
		log.Debug("call canceled", fields)
	case err != nil:
		log.Warn("call failed", logger.MergeWithError(fields, err))
	default:
		log.Debug("call completed", fields)
	}
}

// Name returns the client name.
func (c *Client) Name() string { return c.name }

// Builder returns the client's request builder.
func (c *Client) Builder() *Builder { return c.builder }

// Engine returns the engine calls are submitted to.
func (c *Client) Engine() Engine { return c.engine }

// Close releases the default adapter's idle connections.
func (c *Client) Close(ctx context.Context) error {
	if c.adapter != nil {
		return c.adapter.Close(ctx)
	}
	return nil
}
