package httpclient

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/fuel/errors"
)

// HeaderRequestID carries the request id set by WithRequestID.
const HeaderRequestID = "X-Request-ID"

// RequestOption customizes a request while it is being built.
type RequestOption func(*Request)

// WithHeader sets a header, replacing an earlier value with the same name.
func WithHeader(name, value string) RequestOption {
	return func(r *Request) { r.setHeader(name, value) }
}

// WithQueryParam appends a query parameter to the target URL.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		q := r.target.Query()
		q.Add(key, value)
		r.target.RawQuery = q.Encode()
	}
}

// WithRequestID sets X-Request-ID to a random UUID unless one is already set.
func WithRequestID() RequestOption {
	return func(r *Request) {
		if r.Header(HeaderRequestID) == "" {
			r.setHeader(HeaderRequestID, uuid.NewString())
		}
	}
}

// Builder turns a URL or path plus an optional body into a Request.
// Relative targets resolve against BaseURL. Headers are applied to every
// request before per-call options. Build does no I/O.
type Builder struct {
	BaseURL *url.URL
	Headers []Header
}

// NewBuilder creates a Builder. An empty baseURL means only absolute
// targets can be built.
func NewBuilder(baseURL string) (*Builder, error) {
	if baseURL == "" {
		return &Builder{}, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.InvalidConfig(fmt.Sprintf("invalid base URL %q", baseURL)).WithCause(err)
	}
	if reason := checkAbsolute(u); reason != "" {
		return nil, apperrors.InvalidConfig(fmt.Sprintf("invalid base URL %q: %s", baseURL, reason))
	}
	return &Builder{BaseURL: u}, nil
}

// Build creates a Request. target is a *url.URL, url.URL or string; anything
// that cannot be resolved to an absolute http(s) URL fails with INVALID_TARGET.
// A body on GET or DELETE is passed through.
func (b *Builder) Build(method Method, target any, body *Body, opts ...RequestOption) (*Request, error) {
	u, err := b.resolve(target)
	if err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, apperrors.InvalidTarget(u.String(), fmt.Sprintf("unsupported method %q", method))
	}

	req := &Request{method: method, target: u}
	for _, h := range b.Headers {
		req.setHeader(h.Name, h.Value)
	}
	if body != nil {
		req.body = &Body{Content: slices.Clone(body.Content), ContentType: body.ContentType}
		if body.ContentType != "" && req.Header("Content-Type") == "" {
			req.setHeader("Content-Type", body.ContentType)
		}
	}
	for _, opt := range opts {
		opt(req)
	}
	return req, nil
}

func (b *Builder) resolve(target any) (*url.URL, error) {
	var (
		u   *url.URL
		raw string
	)
	switch t := target.(type) {
	case *url.URL:
		if t == nil {
			return nil, apperrors.InvalidTarget("", "nil URL")
		}
		c := *t
		u, raw = &c, t.String()
	case url.URL:
		u, raw = &t, t.String()
	case string:
		raw = t
		parsed, err := url.Parse(strings.TrimSpace(t))
		if err != nil {
			return nil, apperrors.InvalidTarget(t, "cannot parse").WithCause(err)
		}
		u = parsed
	default:
		return nil, apperrors.InvalidTarget(fmt.Sprint(target), fmt.Sprintf("unsupported target type %T", target))
	}

	if !u.IsAbs() {
		if b == nil || b.BaseURL == nil {
			return nil, apperrors.InvalidTarget(raw, "relative target without a base URL")
		}
		u = joinBase(b.BaseURL, u)
	}
	if reason := checkAbsolute(u); reason != "" {
		return nil, apperrors.InvalidTarget(raw, reason)
	}
	return u, nil
}

// joinBase resolves ref against base, treating the base path as a directory:
// "/api" + "users" and "/api" + "/users" both give "/api/users".
func joinBase(base, ref *url.URL) *url.URL {
	if ref.Host != "" {
		return base.ResolveReference(ref)
	}
	out := *base
	if p := ref.EscapedPath(); p != "" {
		out = *base.JoinPath(p)
		if !strings.HasPrefix(out.Path, "/") {
			out.Path = "/" + out.Path
			if out.RawPath != "" {
				out.RawPath = "/" + out.RawPath
			}
		}
	}
	if ref.RawQuery != "" || ref.ForceQuery {
		out.RawQuery = ref.RawQuery
	}
	out.Fragment = ref.Fragment
	out.RawFragment = ref.RawFragment
	return &out
}

func checkAbsolute(u *url.URL) string {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return "missing scheme"
	default:
		return fmt.Sprintf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "missing host"
	}
	return ""
}

func (r *Request) setHeader(name, value string) {
	for i, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			r.headers[i].Value = value
			return
		}
	}
	r.headers = append(r.headers, Header{Name: name, Value: value})
}
