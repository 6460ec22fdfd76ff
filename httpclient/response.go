package httpclient

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	apperrors "github.com/kbukum/fuel/errors"
)

// ErrBodyConsumed is returned when a streamed response body is read again.
var ErrBodyConsumed = errors.New("httpclient: response body already consumed")

// Response is the raw result of one exchange. 4xx and 5xx are valid
// responses, not errors. The body is owned by the Response: read it with
// Bytes (buffered, repeatable) or take it once with Stream.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the status line text, e.g. "200 OK".
	Status string
	// Header holds the response headers.
	Header http.Header
	// Proto is the protocol version, e.g. "HTTP/1.1" or "HTTP/2.0".
	Proto string

	mu       sync.Mutex
	body     io.ReadCloser
	data     []byte
	buffered bool
	taken    bool
}

// NewResponse wraps a status, headers and body. A nil body is empty.
// Engines other than Adapter use this to build responses.
func NewResponse(statusCode int, header http.Header, body io.ReadCloser) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     header,
		Proto:      "HTTP/1.1",
		body:       body,
	}
}

func fromHTTP(resp *http.Response) *Response {
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Proto:      resp.Proto,
		body:       resp.Body,
	}
}

// Bytes reads the whole body, closes it and caches the result. Later calls
// return the cached bytes. After Stream handed the body over it fails with
// ErrBodyConsumed.
func (r *Response) Bytes() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferLocked()
}

func (r *Response) bufferLocked() ([]byte, error) {
	if r.buffered {
		return r.data, nil
	}
	if r.taken {
		return nil, ErrBodyConsumed
	}
	if r.body == nil {
		r.buffered = true
		return nil, nil
	}
	data, err := io.ReadAll(r.body)
	_ = r.body.Close()
	r.body = nil
	if err != nil {
		r.taken = true
		return nil, readError(err)
	}
	r.data = data
	r.buffered = true
	return data, nil
}

// Stream hands the body over to the caller, who must close it. A buffered
// body is returned as a reader over the cached bytes. An unbuffered body is
// handed over once; any later Stream or Bytes fails with ErrBodyConsumed.
func (r *Response) Stream() (io.ReadCloser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buffered {
		return io.NopCloser(bytes.NewReader(r.data)), nil
	}
	if r.taken {
		return nil, ErrBodyConsumed
	}
	r.taken = true
	body := r.body
	r.body = nil
	if body == nil {
		return http.NoBody, nil
	}
	return body, nil
}

func readError(err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	wrapped := fmt.Errorf("read response body: %w", err)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NetworkTimeout(wrapped)
	}
	return apperrors.Network(wrapped)
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	data, err := r.Bytes()
	return string(data), err
}

// Buffered reports whether the body has been read into memory.
func (r *Response) Buffered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffered
}

// Close releases the body without reading it. Cached bytes stay readable.
// Close is idempotent.
func (r *Response) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.body == nil {
		return nil
	}
	err := r.body.Close()
	r.body = nil
	if !r.buffered {
		r.taken = true
	}
	return err
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// ContentType returns the Content-Type response header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}
