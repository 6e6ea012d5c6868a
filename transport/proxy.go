package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

const (
	maxIdleConnsPerHost = 20
	dialTimeout         = 30 * time.Second
)

// proxyEnvVars are consulted in order; the first non-empty value wins.
var proxyEnvVars = []string{"ALL_PROXY", "HTTPS_PROXY", "HTTP_PROXY"}

// socksProxyFromEnv returns the SOCKS proxy URL designated by the environment,
// or nil when the first set proxy variable is not a socks URL.
func socksProxyFromEnv(getenv func(string) string) (*url.URL, error) {
	var raw string
	for _, name := range proxyEnvVars {
		if raw = getenv(name); raw != "" {
			break
		}
		if raw = getenv(strings.ToLower(name)); raw != "" {
			break
		}
	}

	if !strings.HasPrefix(raw, "socks") {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid socks proxy url %q: %w", raw, err)
	}
	return u, nil
}

// newHTTPTransport builds the pooled transport shared by every request of a Client.
// A socks proxy from the environment takes precedence over HTTP(S) proxy discovery.
func newHTTPTransport() (*http.Transport, error) {
	dialer := &net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}

	t := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	socksURL, err := socksProxyFromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	if socksURL == nil {
		return t, nil
	}

	socks, err := proxy.FromURL(socksURL, dialer)
	if err != nil {
		return nil, fmt.Errorf("failed to create socks dialer: %w", err)
	}

	t.Proxy = nil
	if cd, ok := socks.(proxy.ContextDialer); ok {
		t.DialContext = cd.DialContext
	} else {
		t.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return socks.Dial(network, addr)
		}
	}

	return t, nil
}
