package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Method is an HTTP method supported by the request builder.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// Header is a single request header. Requests keep headers in insertion order.
type Header struct {
	Name  string
	Value string
}

// Body is an outbound request body with its declared content type.
type Body struct {
	Content     []byte
	ContentType string
}

// BytesBody returns a body with the given content type.
func BytesBody(content []byte, contentType string) *Body {
	return &Body{Content: slices.Clone(content), ContentType: contentType}
}

// TextBody returns a text/plain body.
func TextBody(s string) *Body {
	return &Body{Content: []byte(s), ContentType: "text/plain; charset=utf-8"}
}

// JSONBody encodes v as an application/json body.
func JSONBody(v any) (*Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json body: %w", err)
	}
	return &Body{Content: data, ContentType: "application/json"}, nil
}

// Len returns the body size in bytes; zero for a nil body.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Content)
}

// Request is an immutable description of one HTTP exchange. Its target is
// always an absolute http(s) URL. Build one with Builder.Build.
type Request struct {
	method  Method
	target  *url.URL
	headers []Header
	body    *Body
}

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// Target returns a copy of the absolute target URL.
func (r *Request) Target() *url.URL {
	u := *r.target
	if u.User != nil {
		user := *u.User
		u.User = &user
	}
	return &u
}

// URL returns the target URL as a string.
func (r *Request) URL() string { return r.target.String() }

// Headers returns a copy of the request headers in insertion order.
func (r *Request) Headers() []Header { return slices.Clone(r.headers) }

// Header returns the first value of the named header, case-insensitively.
func (r *Request) Header(name string) string {
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Body returns a copy of the body, or nil when the request has none.
func (r *Request) Body() *Body {
	if r.body == nil {
		return nil
	}
	return &Body{Content: slices.Clone(r.body.Content), ContentType: r.body.ContentType}
}

// HasBody reports whether the request carries a body.
func (r *Request) HasBody() bool { return r.body != nil }

// String returns "METHOD url".
func (r *Request) String() string {
	return string(r.method) + " " + r.target.String()
}
