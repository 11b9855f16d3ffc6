package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"xraynews/internal/allowlist"
	"xraynews/internal/config"
	"xraynews/internal/logger"
)

var (
	ErrMissingURL     = errors.New("missing url")
	ErrInvalidURL     = errors.New("invalid url")
	ErrScheme         = errors.New("only http(s) allowed")
	ErrHostNotAllowed = errors.New("host not allowed")
	ErrUpstream       = errors.New("upstream fetch failed")
)

// maxProxyBody caps how much of an upstream response the proxy will
// relay (feeds are small; anything larger is not a feed).
const maxProxyBody = 10 << 20

// ProxyResult carries a proxied upstream response body.
type ProxyResult struct {
	Status      int
	ContentType string
	Body        []byte
}

// Proxy relays allowlisted upstream feeds for clients that cannot
// fetch them directly (CORS). It enforces the same allowlist as the
// fetcher and refuses non-http(s) schemes.
type Proxy struct {
	client *http.Client
}

func NewProxy(client *http.Client) *Proxy {
	return &Proxy{client: client}
}

// Fetch validates rawURL and relays the upstream response. The
// upstream status code is passed through as-is on success.
func (p *Proxy) Fetch(ctx context.Context, rawURL string) (ProxyResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return ProxyResult{}, ErrMissingURL
	}

	target, err := url.Parse(rawURL)
	if err != nil || target.Hostname() == "" {
		return ProxyResult{}, ErrInvalidURL
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return ProxyResult{}, ErrScheme
	}
	if !allowlist.Allowed(target.Hostname()) {
		return ProxyResult{}, ErrHostNotAllowed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return ProxyResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Warn("proxy fetch failed", "module", "feed", "action", "fetch", "resource", "proxy", "result", "failed", "host", target.Hostname(), "error", err)
		return ProxyResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyBody))
	if err != nil {
		logger.Warn("proxy body read failed", "module", "feed", "action", "fetch", "resource", "proxy", "result", "failed", "host", target.Hostname(), "error", err)
		return ProxyResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return ProxyResult{
		Status:      resp.StatusCode,
		ContentType: proxyContentType(resp.Header.Get("Content-Type"), target),
		Body:        body,
	}, nil
}

// proxyContentType falls back to an XML type when the upstream omits
// one, since everything behind the allowlist serves feeds.
func proxyContentType(upstream string, target *url.URL) string {
	if upstream != "" {
		return upstream
	}
	if strings.HasSuffix(target.Path, ".xml") {
		return "application/xml; charset=utf-8"
	}
	return "application/rss+xml; charset=utf-8"
}
