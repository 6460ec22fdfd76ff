package fuel

import (
	"context"
	"sync"

	"github.com/kbukum/fuel/codec"
	_ "github.com/kbukum/fuel/codec/gojson"
	_ "github.com/kbukum/fuel/codec/jsoniter"
	_ "github.com/kbukum/fuel/codec/sonic"
	_ "github.com/kbukum/fuel/codec/stdjson"
	_ "github.com/kbukum/fuel/codec/ugorji"
	_ "github.com/kbukum/fuel/codec/yaml"
	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/httpclient"
	"github.com/kbukum/fuel/logger"
)

const componentName = "fuel"

type instance struct {
	client *httpclient.Client
	codec  codec.Provider
}

var (
	mu      sync.Mutex
	current *instance
)

// New builds a client and resolves its codec from cfg without touching the
// process-wide default.
func New(cfg Config, opts ...httpclient.ClientOption) (*httpclient.Client, codec.Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	p, err := resolveCodec(cfg)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Get(componentName)
	if cfg.hasLogging() {
		log = logger.New(&cfg.Logging, cfg.Logging.ServiceName).WithComponent(componentName)
	}
	client, err := httpclient.NewClient(cfg.HTTP, append([]httpclient.ClientOption{httpclient.WithClientLogger(log)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("client configured", logger.Fields("client", cfg.HTTP.Name, "codec", cfg.Codec, "base_url", cfg.HTTP.BaseURL))
	return client, p, nil
}

func resolveCodec(cfg Config) (codec.Provider, error) {
	if len(cfg.CodecOptions) > 0 {
		return codec.DefaultRegistry().Create(cfg.Codec, cfg.CodecOptions)
	}
	return codec.Lookup(cfg.Codec)
}

// Configure replaces the process-wide client and default codec. The
// previous client's idle connections are released.
func Configure(cfg Config, opts ...httpclient.ClientOption) error {
	client, p, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	swap(&instance{client: client, codec: p})
	return nil
}

// SetDefault replaces the process-wide client, keeping the default codec.
// The previous client's idle connections are released. A nil client is
// rejected with INVALID_CONFIG.
func SetDefault(c *httpclient.Client) error {
	if c == nil {
		return apperrors.InvalidConfig("fuel: nil client")
	}
	inst, err := load()
	if err != nil {
		return err
	}
	swap(&instance{client: c, codec: inst.codec})
	return nil
}

// SetCodec replaces the default codec provider used by As. A nil provider
// is rejected with INVALID_CONFIG.
func SetCodec(p codec.Provider) error {
	if p == nil {
		return apperrors.InvalidConfig("fuel: nil codec provider")
	}
	inst, err := load()
	if err != nil {
		return err
	}
	swap(&instance{client: inst.client, codec: p})
	return nil
}

func swap(next *instance) {
	mu.Lock()
	prev := current
	current = next
	mu.Unlock()
	if prev != nil && prev.client != next.client {
		_ = prev.client.Close(context.Background())
	}
}

// load returns the current instance, building one from a zero Config on
// first use.
func load() (*instance, error) {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return current, nil
	}
	client, p, err := New(Config{})
	if err != nil {
		return nil, err
	}
	current = &instance{client: client, codec: p}
	return current, nil
}

// Default returns the process-wide client.
func Default() (*httpclient.Client, error) {
	inst, err := load()
	if err != nil {
		return nil, err
	}
	return inst.client, nil
}

// Request starts a call on the default client.
func Request(ctx context.Context, method httpclient.Method, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	inst, err := load()
	if err != nil {
		return nil, err
	}
	return inst.client.Request(ctx, method, target, body, opts...)
}

// Get starts a GET call on the default client. target is a URL or a path
// relative to the configured base URL.
func Get(ctx context.Context, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	return Request(ctx, httpclient.MethodGet, target, body, opts...)
}

// Post starts a POST call on the default client.
func Post(ctx context.Context, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	return Request(ctx, httpclient.MethodPost, target, body, opts...)
}

// Put starts a PUT call on the default client.
func Put(ctx context.Context, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	return Request(ctx, httpclient.MethodPut, target, body, opts...)
}

// Patch starts a PATCH call on the default client.
func Patch(ctx context.Context, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	return Request(ctx, httpclient.MethodPatch, target, body, opts...)
}

// Delete starts a DELETE call on the default client.
func Delete(ctx context.Context, target any, body *httpclient.Body, opts ...httpclient.RequestOption) (*httpclient.Call, error) {
	return Request(ctx, httpclient.MethodDelete, target, body, opts...)
}
