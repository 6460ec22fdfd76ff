package sse

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/httpclient"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error { b.closed = true; return nil }

func readAll(t *testing.T, stream string) []Event {
	t.Helper()
	r := NewReader(&trackingBody{Reader: strings.NewReader(stream)})
	defer r.Close()
	var events []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		events = append(events, *ev)
	}
}

func TestReader_Next(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []Event
	}{
		{"single", "data: hello world\n\n", []Event{{Data: "hello world"}}},
		{"two events", "data: first\n\ndata: second\n\n", []Event{{Data: "first"}, {Data: "second"}}},
		{"typed", "event: deal\ndata: 4C\n\n", []Event{{Type: "deal", Data: "4C"}}},
		{"multi-line data", "data: line1\ndata: line2\ndata: line3\n\n", []Event{{Data: "line1\nline2\nline3"}}},
		{"comments skipped", ": keepalive\ndata: hello\n\n", []Event{{Data: "hello"}}},
		{"no space after colon", "data:no-space\n\n", []Event{{Data: "no-space"}}},
		{"crlf lines", "event: deal\r\ndata: AH\r\n\r\n", []Event{{Type: "deal", Data: "AH"}}},
		{"retry", "retry: 1500\ndata: x\n\n", []Event{{Data: "x", Retry: 1500 * time.Millisecond}}},
		{"bad retry ignored", "retry: soon\ndata: x\n\n", []Event{{Data: "x"}}},
		{"id carries over", "id: 7\ndata: a\n\ndata: b\n\n", []Event{{Data: "a", ID: "7"}, {Data: "b", ID: "7"}}},
		{"event without data dropped", "event: ping\n\ndata: a\n\n", []Event{{Data: "a"}}},
		{"unterminated last event", "data: tail", []Event{{Data: "tail"}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, readAll(t, tt.stream)); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_LastEventID(t *testing.T) {
	r := NewReader(&trackingBody{Reader: strings.NewReader("id: 41\ndata: a\n\nid: 42\ndata: b\n\n")})
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if got := r.LastEventID(); got != "42" {
		t.Errorf("expected last id 42, got %q", got)
	}
}

func TestReader_Close(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("")}
	if err := NewReader(body).Close(); err != nil {
		t.Fatal(err)
	}
	if !body.closed {
		t.Error("expected body closed")
	}
}

func TestOpen_StreamingCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "event: deal\ndata: 4C\n\n")
		w.(http.Flusher).Flush()
		<-release
		io.WriteString(w, "event: deal\ndata: AH\n\n")
	}))
	t.Cleanup(srv.Close)
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	c, err := httpclient.NewClient(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	req, err := c.Build(httpclient.MethodGet, "/deal", nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	events, err := Open(ctx, c.Do(ctx, req, httpclient.WithStreaming()))
	if err != nil {
		t.Fatal(err)
	}
	defer events.Close()

	// The first event arrives while the server is still holding the stream.
	ev, err := events.Next()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Data != "4C" {
		t.Errorf("expected 4C, got %q", ev.Data)
	}
	unblock()
	if ev, err = events.Next(); err != nil || ev.Data != "AH" {
		t.Errorf("expected AH, got %v, %v", ev, err)
	}
	if _, err := events.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestOpen_CallError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := httpclient.EngineFunc(func(ctx context.Context, _ *httpclient.Request) (*httpclient.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c, err := httpclient.NewClient(httpclient.Config{BaseURL: "http://cards.test"}, httpclient.WithEngine(engine))
	if err != nil {
		t.Fatal(err)
	}
	call, err := c.Get(ctx, "/deal", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(context.Background(), call); !apperrors.IsCanceled(err) {
		t.Errorf("expected CANCELED, got %v", err)
	}
}
