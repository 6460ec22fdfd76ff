package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/logger"
	"github.com/kbukum/fuel/observability"
	"github.com/kbukum/fuel/resilience"
	"github.com/kbukum/fuel/version"
)

// Adapter is the default Engine, built on net/http. It applies default
// headers, auth and TLS, and owns the retry, circuit breaker and rate
// limiting policy. Every exchange gets a client span and request metrics.
type Adapter struct {
	httpClient *http.Client
	config     Config
	headers    []Header
	userAgent  string
	cb         *resilience.CircuitBreaker
	rl         *resilience.RateLimiter

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	tracer         trace.Tracer
	metrics        *observability.Metrics
	log            *logger.Logger
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithTransport replaces the round tripper built from the config.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Adapter) { a.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Adapter) { a.meterProvider = mp }
}

// WithLogger sets the logger used for retry and circuit events.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config:    cfg,
		headers:   sortedHeaders(cfg.Headers),
		userAgent: cfg.UserAgent,
		log:       logger.Get("fuel.httpclient"),
	}
	if a.userAgent == "" {
		a.userAgent = version.UserAgent()
	}
	for _, opt := range opts {
		opt(a)
	}

	a.tracer = observability.Tracer(a.tracerProvider)
	metrics, err := observability.NewMetrics(observability.Meter(a.meterProvider))
	if err != nil {
		a.log.Warn("metrics disabled", logger.MergeWithError(nil, err))
	} else {
		a.metrics = metrics
	}

	if cfg.CircuitBreaker != nil {
		cbCfg := *cfg.CircuitBreaker
		if cbCfg.OnStateChange == nil {
			cbCfg.OnStateChange = func(name string, from, to resilience.State) {
				a.log.Warn("circuit breaker state changed", logger.Fields("client", name, "from", from.String(), "to", to.String()))
			}
		}
		a.cb = resilience.NewCircuitBreaker(cbCfg)
	}
	if cfg.RateLimiter != nil {
		a.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return a, nil
}

// Submit performs the exchange, retrying network failures when retry is
// configured. Request bodies are byte slices, so every attempt replays the
// same body.
func (a *Adapter) Submit(ctx context.Context, req *Request) (*Response, error) {
	if a.config.Retry == nil {
		return a.attempt(ctx, req)
	}
	retryCfg := *a.config.Retry
	if retryCfg.OnRetry == nil {
		retryCfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
			a.log.WithContext(ctx).Warn("retrying request", logger.MergeWithError(logger.Fields(
				logger.FieldMethod, string(req.Method()),
				logger.FieldURL, req.URL(),
				"attempt", attempt,
				"backoff", backoff.String(),
			), err))
		}
	}
	resp, err := resilience.Retry(ctx, retryCfg, func(int) (*Response, error) {
		return a.attempt(ctx, req)
	})
	if err != nil && ctx.Err() != nil && !apperrors.IsCanceled(err) {
		return nil, apperrors.Canceled(ctx.Err())
	}
	return resp, err
}

// attempt runs one exchange through the rate limiter and circuit breaker.
func (a *Adapter) attempt(ctx context.Context, req *Request) (*Response, error) {
	if a.rl != nil {
		if err := a.rl.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, apperrors.Canceled(ctx.Err())
			}
			return nil, apperrors.Network(err)
		}
	}

	if a.cb == nil {
		return a.exchange(ctx, req)
	}
	var resp *Response
	err := a.cb.Execute(func() error {
		var execErr error
		resp, execErr = a.exchange(ctx, req)
		return execErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		openErr := apperrors.Network(err)
		openErr.Retryable = false
		return nil, openErr
	}
	return resp, err
}

// exchange sends the request once.
func (a *Adapter) exchange(ctx context.Context, req *Request) (*Response, error) {
	method := string(req.Method())
	target := req.Target()
	ctx, span := observability.StartClientSpan(ctx, a.tracer, method,
		observability.AttrClientName.String(a.config.Name),
		observability.AttrRequestMethod.String(method),
		observability.AttrURLFull.String(target.Redacted()),
		observability.AttrServerAddress.String(target.Hostname()),
	)
	defer span.End()

	start := time.Now()
	a.metrics.RecordRequestStart(ctx, a.config.Name, method)

	resp, err := a.roundTrip(ctx, req)
	if err != nil {
		code := string(apperrors.CodeOf(err))
		observability.SetSpanError(span, err, code)
		a.metrics.RecordRequestEnd(ctx, a.config.Name, method, code, 0, time.Since(start))
		return nil, err
	}
	span.SetAttributes(observability.AttrResponseStatus.Int(resp.StatusCode))
	a.metrics.RecordRequestEnd(ctx, a.config.Name, method, "ok", resp.StatusCode, time.Since(start))
	return resp, nil
}

func (a *Adapter) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return fromHTTP(resp), nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body.Content)
	}
	httpReq, err := http.NewRequestWithContext(ctx, string(req.method), req.target.String(), body)
	if err != nil {
		return nil, apperrors.InvalidTarget(req.target.String(), "cannot build request").WithCause(err)
	}

	for _, h := range req.headers {
		httpReq.Header.Set(h.Name, h.Value)
	}
	for _, h := range a.headers {
		if httpReq.Header.Get(h.Name) == "" {
			httpReq.Header.Set(h.Name, h.Value)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.userAgent)
	}
	if req.body != nil && req.body.ContentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.body.ContentType)
	}
	a.config.Auth.apply(httpReq)
	observability.InjectHeaders(ctx, httpReq.Header)
	return httpReq, nil
}

// classify maps a net/http failure to a fuel error.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.Canceled(ctxErr)
	}
	if apperrors.CodeOf(err) != "" {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NetworkTimeout(err)
	}
	return apperrors.Network(err)
}

func sortedHeaders(m map[string]string) []Header {
	headers := make([]Header, 0, len(m))
	for name, value := range m {
		headers = append(headers, Header{Name: name, Value: value})
	}
	sort.Slice(headers, func(i, j int) bool { return headers[i].Name < headers[j].Name })
	return headers
}

// Name returns the adapter name (implements provider.Provider).
func (a *Adapter) Name() string {
	return a.config.Name
}

// IsAvailable reports false while the circuit breaker is open (implements provider.Provider).
func (a *Adapter) IsAvailable(_ context.Context) bool {
	if a.cb != nil {
		return a.cb.State() != resilience.StateOpen
	}
	return true
}

// Execute is Submit under the provider.RequestResponse name.
func (a *Adapter) Execute(ctx context.Context, req *Request) (*Response, error) {
	return a.Submit(ctx, req)
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Config returns the adapter's configuration with defaults applied.
func (a *Adapter) Config() Config {
	return a.config
}
