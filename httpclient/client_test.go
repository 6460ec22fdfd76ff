package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/logger"
	"github.com/kbukum/fuel/provider"
	"github.com/kbukum/fuel/resilience"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(r.URL.RequestURI() + "|" + string(data)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Verbs(t *testing.T) {
	srv := echoServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	body := TextBody("hi")

	tests := []struct {
		method Method
		start  func() (*Call, error)
		want   string
	}{
		{MethodGet, func() (*Call, error) { return c.Get(ctx, "cards", nil) }, "/api/cards|"},
		{MethodPost, func() (*Call, error) { return c.Post(ctx, "/cards", body) }, "/api/cards|hi"},
		{MethodPut, func() (*Call, error) { return c.Put(ctx, "cards/1", body) }, "/api/cards/1|hi"},
		{MethodPatch, func() (*Call, error) { return c.Patch(ctx, "cards/1", body) }, "/api/cards/1|hi"},
		{MethodDelete, func() (*Call, error) { return c.Delete(ctx, "cards/1", nil, WithQueryParam("force", "true")) }, "/api/cards/1?force=true|"},
		{MethodGet, func() (*Call, error) { return c.Request(ctx, MethodGet, srv.URL+"/abs", nil) }, "/abs|"},
		{MethodGet, func() (*Call, error) { return c.Get(ctx, "search", TextBody("4C")) }, "/api/search|4C"},
		{MethodDelete, func() (*Call, error) { return c.Delete(ctx, "cards/2", body) }, "/api/cards/2|hi"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			call, err := tt.start()
			if err != nil {
				t.Fatal(err)
			}
			resp, err := call.Await(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if got := resp.Header.Get("X-Method"); got != string(tt.method) {
				t.Errorf("expected method %s, got %s", tt.method, got)
			}
			if text, _ := resp.Text(); text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, text)
			}
		})
	}
}

func TestClient_InvalidTargetIsSynchronous(t *testing.T) {
	var submits atomic.Int32
	c, err := NewClient(Config{}, WithEngine(EngineFunc(func(context.Context, *Request) (*Response, error) {
		submits.Add(1)
		return nil, nil
	})))
	if err != nil {
		t.Fatal(err)
	}
	call, err := c.Get(context.Background(), "relative/path", nil)
	if call != nil || !apperrors.IsInvalidTarget(err) {
		t.Fatalf("expected INVALID_TARGET and no call, got %v, %v", call, err)
	}
	if submits.Load() != 0 {
		t.Error("engine must not be called for an invalid target")
	}
}

func TestClient_RequestID(t *testing.T) {
	srv := echoServer(t)
	c, err := NewClient(Config{RequestID: true})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := mustAwait(c.Get(context.Background(), srv.URL, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}

	resp, err = mustAwait(c.Get(context.Background(), srv.URL, nil, WithHeader(HeaderRequestID, "fixed")))
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("X-Request-ID"); got != "fixed" {
		t.Errorf("expected caller request id kept, got %q", got)
	}
}

func mustAwait(call *Call, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	return call.Await(context.Background())
}

func TestClient_Execute(t *testing.T) {
	srv := echoServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	req, err := c.Build(MethodPost, "/x", BytesBody([]byte("raw"), "application/octet-stream"))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.Execute(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if text, _ := resp.Text(); text != "/x|raw" {
		t.Errorf("expected /x|raw, got %q", text)
	}
	if c.Engine() == nil || c.Builder().BaseURL.String() != srv.URL {
		t.Error("expected engine and builder to be exposed")
	}
	if err := c.Close(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestClient_CustomEngine(t *testing.T) {
	var seen *Request
	c, err := NewClient(Config{Name: "fake", BaseURL: "http://example.com"}, WithEngine(EngineFunc(
		func(_ context.Context, req *Request) (*Response, error) {
			seen = req
			return NewResponse(204, nil, nil), nil
		})))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := mustAwait(c.Delete(context.Background(), "items/9", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 204 || seen.URL() != "http://example.com/items/9" {
		t.Errorf("unexpected exchange %d %s", resp.StatusCode, seen.URL())
	}
	if c.Name() != "fake" {
		t.Errorf("expected fake, got %q", c.Name())
	}
	if err := c.Close(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestClient_Bulkhead(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	engine := EngineFunc(func(context.Context, *Request) (*Response, error) {
		started <- struct{}{}
		<-release
		return NewResponse(200, nil, nil), nil
	})
	c, err := NewClient(Config{
		BaseURL:  "http://example.com",
		Bulkhead: &resilience.BulkheadConfig{MaxConcurrent: 1, MaxWait: -1},
	}, WithEngine(engine))
	if err != nil {
		t.Fatal(err)
	}

	first, err := c.Get(context.Background(), "/a", nil)
	if err != nil {
		t.Fatal(err)
	}
	<-started
	_, err = mustAwait(c.Get(context.Background(), "/b", nil))
	if !errors.Is(err, resilience.ErrBulkheadFull) {
		t.Errorf("expected bulkhead rejection, got %v", err)
	}
	close(release)
	if _, err := first.Await(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestClient_LogsCallOutcome(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	c, err := NewClient(Config{BaseURL: "http://example.com"},
		WithClientLogger(log),
		WithEngine(EngineFunc(func(context.Context, *Request) (*Response, error) {
			return nil, errors.New("refused")
		})))
	if err != nil {
		t.Fatal(err)
	}

	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	if _, err := mustAwait(c.Get(ctx, "/down", nil)); !apperrors.IsNetwork(err) {
		t.Fatalf("expected NETWORK_ERROR, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"call started"`, `"call failed"`, `"request_id":"req-1"`, `"url":"http://example.com/down"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %s, got %s", want, out)
		}
	}
}

func TestClient_Middleware(t *testing.T) {
	srv := echoServer(t)
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	c, err := NewClient(Config{Name: "cards", BaseURL: srv.URL},
		WithClientLogger(logger.Nop()),
		WithMiddleware(provider.WithLogging[*Request, *Response](log)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mustAwait(c.Get(context.Background(), "/deck", nil)); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, `"provider execute ok"`) || !strings.Contains(out, `"provider":"cards"`) {
		t.Errorf("expected middleware log line, got %s", out)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "::not-a-url"}); !apperrors.IsInvalidConfig(err) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}
