package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/fuel/component"
)

// Component wraps a Client with lifecycle management.
type Component struct {
	client *Client
	config Config
	opts   []ClientOption
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP client component.
// The client is created lazily in Start().
func NewComponent(cfg Config, opts ...ClientOption) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.config.Name
}

// Start builds the client.
func (c *Component) Start(_ context.Context) error {
	client, err := NewClient(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop closes the client and releases idle connections.
func (c *Component) Stop(ctx context.Context) error {
	if c.client != nil {
		return c.client.Close(ctx)
	}
	return nil
}

// Health reports unhealthy before Start and while the circuit breaker is open.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.client == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case c.client.adapter != nil && !c.client.adapter.IsAvailable(ctx):
		h.Status = component.StatusUnhealthy
		h.Message = "circuit open"
	}
	return h
}

// Describe returns a one-line summary of the client configuration.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("%s timeout=%s protocol=%s", c.config.BaseURL, c.config.Timeout, c.config.Protocol)
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: details,
	}
}

// Client returns the underlying client. Must be called after Start().
func (c *Component) Client() *Client {
	return c.client
}
