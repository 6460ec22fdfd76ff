// Package security holds the TLS settings the fuel HTTP engine applies to its
// transport: custom roots, client certificates for mTLS, server name override.
//
//	cfg := security.TLSConfig{CAFile: "/etc/fuel/ca.pem"}
//	tlsConfig, err := cfg.Build()
package security
