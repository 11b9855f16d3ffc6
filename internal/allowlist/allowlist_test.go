package allowlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xraynews/internal/allowlist"
)

func TestAllowed_ExactMatch(t *testing.T) {
	require.True(t, allowlist.Allowed("coindesk.com"))
	require.True(t, allowlist.Allowed("reuters.com"))
	require.True(t, allowlist.Allowed("federalreserve.gov"))
	require.True(t, allowlist.Allowed("news.google.com"))
}

func TestAllowed_Subdomain(t *testing.T) {
	require.True(t, allowlist.Allowed("sub.coindesk.com"))
	require.True(t, allowlist.Allowed("rss.nytimes.com"))
	require.True(t, allowlist.Allowed("blog.chain.link"))
	require.True(t, allowlist.Allowed("feeds.bbci.co.uk"))
}

func TestAllowed_StripsLeadingWWW(t *testing.T) {
	require.True(t, allowlist.Allowed("www.coindesk.com"))
	require.True(t, allowlist.Allowed("www.theguardian.com"))
}

func TestAllowed_RejectsLookalikes(t *testing.T) {
	// Suffix matching must not cross a label boundary.
	require.False(t, allowlist.Allowed("evil-coindesk.com"))
	require.False(t, allowlist.Allowed("notreuters.com"))
	require.False(t, allowlist.Allowed("coindesk.com.attacker.io"))
}

func TestAllowed_RejectsUnknownHosts(t *testing.T) {
	require.False(t, allowlist.Allowed("example.com"))
	require.False(t, allowlist.Allowed("localhost"))
	require.False(t, allowlist.Allowed(""))
}

func TestAllowed_CaseInsensitive(t *testing.T) {
	require.True(t, allowlist.Allowed("CoinDesk.com"))
	require.True(t, allowlist.Allowed("WWW.REUTERS.COM"))
}
