package httpclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"

	apperrors "github.com/kbukum/fuel/errors"
)

// newTransport builds the round tripper for cfg.Protocol.
func newTransport(cfg Config) (http.RoundTripper, error) {
	if cfg.Protocol == ProtocolH2C {
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		}, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxIdleConnsPerHost > 0 {
		transport.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, apperrors.InvalidConfig("tls").WithCause(err)
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}
	return transport, nil
}
