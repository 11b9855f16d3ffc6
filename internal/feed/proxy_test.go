package feed_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xraynews/internal/feed"
)

func TestProxy_Fetch_MissingURL(t *testing.T) {
	proxy := feed.NewProxy(&http.Client{})

	_, err := proxy.Fetch(context.Background(), "")
	require.ErrorIs(t, err, feed.ErrMissingURL)

	_, err = proxy.Fetch(context.Background(), "   ")
	require.ErrorIs(t, err, feed.ErrMissingURL)
}

func TestProxy_Fetch_InvalidURL(t *testing.T) {
	proxy := feed.NewProxy(&http.Client{})

	_, err := proxy.Fetch(context.Background(), "://no-scheme")
	require.ErrorIs(t, err, feed.ErrInvalidURL)

	// Parses fine but has no host.
	_, err = proxy.Fetch(context.Background(), "https:///path-only")
	require.ErrorIs(t, err, feed.ErrInvalidURL)
}

func TestProxy_Fetch_SchemeRejected(t *testing.T) {
	proxy := feed.NewProxy(&http.Client{})

	_, err := proxy.Fetch(context.Background(), "ftp://www.coindesk.com/feed.xml")
	require.ErrorIs(t, err, feed.ErrScheme)

	_, err = proxy.Fetch(context.Background(), "file://www.coindesk.com/etc/passwd")
	require.ErrorIs(t, err, feed.ErrScheme)
}

func TestProxy_Fetch_HostNotAllowed(t *testing.T) {
	proxy := feed.NewProxy(&http.Client{})

	_, err := proxy.Fetch(context.Background(), "https://evil.example/feed.xml")
	require.ErrorIs(t, err, feed.ErrHostNotAllowed)
}

func TestProxy_Fetch_RelaysUpstream(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/rss+xml; charset=utf-8"}},
				Body:       io.NopCloser(strings.NewReader("<rss/>")),
				Request:    req,
			}, nil
		}),
	}
	proxy := feed.NewProxy(client)

	result, err := proxy.Fetch(context.Background(), "https://cointelegraph.com/rss")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.Status)
	require.Equal(t, "application/rss+xml; charset=utf-8", result.ContentType)
	require.Equal(t, "<rss/>", string(result.Body))
}

func TestProxy_Fetch_UpstreamStatusPassedThrough(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(strings.NewReader("gone")),
				Request:    req,
			}, nil
		}),
	}
	proxy := feed.NewProxy(client)

	result, err := proxy.Fetch(context.Background(), "https://cointelegraph.com/rss")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, result.Status)
}

func TestProxy_Fetch_ContentTypeFallback(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("<rss/>")),
				Request:    req,
			}, nil
		}),
	}
	proxy := feed.NewProxy(client)

	result, err := proxy.Fetch(context.Background(), "https://www.theblock.co/rss.xml")
	require.NoError(t, err)
	require.Equal(t, "application/xml; charset=utf-8", result.ContentType)

	result, err = proxy.Fetch(context.Background(), "https://cointelegraph.com/rss")
	require.NoError(t, err)
	require.Equal(t, "application/rss+xml; charset=utf-8", result.ContentType)
}

func TestProxy_Fetch_UpstreamFailure(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}
	proxy := feed.NewProxy(client)

	_, err := proxy.Fetch(context.Background(), "https://cointelegraph.com/rss")
	require.ErrorIs(t, err, feed.ErrUpstream)
}
