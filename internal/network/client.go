// Package network builds the outbound HTTP clients: an SSRF-hardened
// client for feed fetching and proxying, and an optionally proxied
// client for origin passthrough.
package network

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
	"golang.org/x/net/proxy"
)

// NewSafeClient returns an HTTP client that refuses private, loopback,
// link-local and metadata destinations at the dialer level, so DNS
// rebinding cannot bypass the host allowlist.
func NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return safeurl.Client(config).Client
}

// NewOriginClient returns the client used to proxy the fronted site.
// proxyURL may be empty, an http(s) proxy, or a socks5 URL.
func NewOriginClient(proxyURL string, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if proxyURL != "" {
		client.Transport = newTransportWithProxy(proxyURL)
	}
	return client
}

// newTransportWithProxy supports SOCKS proxies via x/net/proxy and
// plain HTTP proxies via http.ProxyURL.
func newTransportWithProxy(proxyURL string) *http.Transport {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return &http.Transport{}
	}

	if strings.HasPrefix(parsed.Scheme, "socks") {
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return &http.Transport{}
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	}

	return &http.Transport{
		Proxy: http.ProxyURL(parsed),
	}
}
