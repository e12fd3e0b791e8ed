// Package transport builds the shared HTTP client used by http_get probes.
package transport

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
)

// ErrBadCACertificate indicates the extra CA file held no parseable PEM data.
var ErrBadCACertificate = errors.New("transport: no certificates parsed from CA file")

// Config controls TLS for outbound probe requests.
type Config struct {
	// CAFile optionally names a PEM bundle appended to the system roots,
	// for targets serving certificates from a private CA.
	CAFile string

	// InsecureSkipVerify disables server certificate verification.
	// Intended for probing targets with self-signed certificates.
	InsecureSkipVerify bool
}

// NewClient builds an HTTP client speaking HTTP/1.1 and, over TLS, HTTP/2.
// The client carries no request timeout; each probe attempt bounds its own
// request through its context.
func NewClient(cfg Config) (*http.Client, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		roots = x509.NewCertPool()
	}
	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("transport: read CA file: %w", err)
		}
		if !roots.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: %s", ErrBadCACertificate, cfg.CAFile)
		}
	}

	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			RootCAs:            roots,
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("transport: enable http/2: %w", err)
	}

	return &http.Client{Transport: t}, nil
}
