package httpclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/resilience"
)

var errNoResponse = errors.New("engine returned no response")

// CallOption customizes how a Call runs.
type CallOption func(*callOptions)

type callOptions struct {
	streaming bool
	bulkhead  *resilience.Bulkhead
	observe   func(resp *Response, err error, elapsed time.Duration)
}

// WithStreaming hands the live response body to the caller instead of
// buffering it. The caller must Close the response.
func WithStreaming() CallOption {
	return func(o *callOptions) { o.streaming = true }
}

// WithBulkhead admits the call through b before it is submitted.
func WithBulkhead(b *resilience.Bulkhead) CallOption {
	return func(o *callOptions) { o.bulkhead = b }
}

// Call is one in-flight request. It runs on its own goroutine and submits
// the request to the engine exactly once: no retries, no status inspection.
// A cancelled Call resolves to a CANCELED error and never yields a response.
type Call struct {
	req    *Request
	cancel context.CancelFunc
	done   chan struct{}

	resp *Response
	err  error
}

// Go starts req on engine and returns immediately. Cancelling ctx cancels
// the call.
func Go(ctx context.Context, engine Engine, req *Request, opts ...CallOption) *Call {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Call{
		req:    req,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go c.run(ctx, engine, o)
	return c
}

func (c *Call) run(ctx context.Context, engine Engine, o callOptions) {
	start := time.Now()
	defer close(c.done)

	var (
		resp    *Response
		err     error
		release = func() {}
	)
	if o.bulkhead != nil {
		var admitErr error
		if release, admitErr = o.bulkhead.Acquire(ctx); admitErr != nil {
			release, err = func() {}, rejected(admitErr)
		}
	}
	if err == nil {
		resp, err = c.submit(ctx, engine, o.streaming)
	}

	switch {
	case ctx.Err() != nil:
		err = apperrors.Canceled(ctx.Err())
	case err != nil && apperrors.CodeOf(err) == "":
		err = apperrors.Network(err)
	}
	if err != nil {
		if resp != nil {
			_ = resp.Close()
		}
		resp = nil
	}

	// A streamed body keeps the exchange and its bulkhead slot until closed.
	if err == nil && o.streaming && resp.body != nil {
		resp.body = &closeHook{ReadCloser: resp.body, hook: func() {
			c.cancel()
			release()
		}}
	} else {
		c.cancel()
		release()
	}

	c.resp, c.err = resp, err
	if o.observe != nil {
		o.observe(resp, err, time.Since(start))
	}
}

func (c *Call) submit(ctx context.Context, engine Engine, streaming bool) (*Response, error) {
	resp, err := engine.Submit(ctx, c.req)
	if err != nil {
		return resp, err
	}
	if resp == nil {
		return nil, errNoResponse
	}
	if !streaming {
		// Drain while the exchange is still cancellable so the
		// connection is released before the caller sees the result.
		if _, err := resp.Bytes(); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func rejected(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Canceled(err)
	}
	appErr := apperrors.Network(err).WithDetail("rejected", true)
	appErr.Retryable = false
	return appErr
}

// Request returns the request this call submits.
func (c *Call) Request() *Request { return c.req }

// Done is closed once the call has resolved.
func (c *Call) Done() <-chan struct{} { return c.done }

// Cancel aborts the call. It is a no-op once the call has resolved.
func (c *Call) Cancel() { c.cancel() }

// Await blocks until the call resolves and returns its result. If ctx ends
// first, the call is cancelled and Await waits for it to settle.
func (c *Call) Await(ctx context.Context) (*Response, error) {
	select {
	case <-c.done:
	case <-ctx.Done():
		c.cancel()
		<-c.done
	}
	return c.resp, c.err
}

// closeHook runs hook once when a streamed body is closed.
type closeHook struct {
	io.ReadCloser
	hook func()
	once sync.Once
}

func (b *closeHook) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(b.hook)
	return err
}
