// Package sse reads Server-Sent Events from a streaming call.
//
//	call := client.Do(ctx, req, httpclient.WithStreaming())
//	events, err := sse.Open(ctx, call)
//	if err != nil {
//		return err
//	}
//	defer events.Close()
//	for {
//		ev, err := events.Next()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
package sse

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/fuel/httpclient"
)

const maxLineSize = 1 << 20

// Event is a single server-sent event.
type Event struct {
	// Type comes from the "event:" field. Empty for plain messages.
	Type string
	// Data joins the event's "data:" lines with newlines.
	Data string
	// ID is the last event id seen on the stream, including this event.
	ID string
	// Retry is the reconnection delay the server asked for, if any.
	Retry time.Duration
}

// Reader reads events from a response stream.
type Reader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
	lastID  string
}

// NewReader reads events from body. Close closes body.
func NewReader(body io.ReadCloser) *Reader {
	s := bufio.NewScanner(body)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Reader{scanner: s, body: body}
}

// Open waits for call and reads events from its body. Start the call with
// httpclient.WithStreaming so events arrive as the server sends them.
func Open(ctx context.Context, call *httpclient.Call) (*Reader, error) {
	resp, err := call.Await(ctx)
	if err != nil {
		return nil, err
	}
	body, err := resp.Stream()
	if err != nil {
		_ = resp.Close()
		return nil, err
	}
	return NewReader(body), nil
}

// Next returns the next event, or io.EOF when the stream ends.
func (r *Reader) Next() (*Event, error) {
	var (
		ev   Event
		data []string
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if len(data) > 0 {
				return r.finish(&ev, data), nil
			}
			ev = Event{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value := parseLine(line)
		switch field {
		case "data":
			data = append(data, value)
		case "event":
			ev.Type = value
		case "id":
			if !strings.ContainsRune(value, 0) {
				r.lastID = value
			}
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				ev.Retry = time.Duration(ms) * time.Millisecond
			}
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		return r.finish(&ev, data), nil
	}
	return nil, io.EOF
}

func (r *Reader) finish(ev *Event, data []string) *Event {
	ev.Data = strings.Join(data, "\n")
	ev.ID = r.lastID
	return ev
}

// LastEventID returns the last id the server sent.
func (r *Reader) LastEventID() string { return r.lastID }

// Close closes the underlying stream.
func (r *Reader) Close() error {
	return r.body.Close()
}

func parseLine(line string) (field, value string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
