// Package allowlist gates every outbound fetch against a fixed set of
// approved upstream domains. It is used three times per request path:
// before fetching a feed, before proxying an arbitrary URL, and again
// on the self-reported source host of every parsed item.
package allowlist

import "strings"

// domains is the approved upstream set. A host passes if it equals one
// of these or is a subdomain of one.
var domains = []string{
	// Crypto
	"coindesk.com", "cointelegraph.com", "theblock.co", "decrypt.co", "messari.io",
	"cryptoslate.com", "bitcoinmagazine.com", "blockworks.co", "thedefiant.io",
	"protos.com", "ambcrypto.com", "beincrypto.com", "coingape.com", "chain.link",
	"coinpedia.org", "cryptopotato.com",
	// Markets / Business
	"reuters.com", "cnbc.com", "foxbusiness.com", "apnews.com", "wsj.com", "feeds.a.dj.com",
	"finance.yahoo.com", "ft.com", "rss.cnn.com", "nytimes.com", "marketwatch.com",
	"moneycontrol.com", "theguardian.com", "bbc.co.uk", "feeds.bbci.co.uk",
	// Macro / Official
	"federalreserve.gov", "bls.gov", "bea.gov", "home.treasury.gov",
	"ecb.europa.eu", "bankofengland.co.uk", "sec.gov",
	// Meta
	"news.google.com",
}

// Allowed reports whether host may be fetched. A leading "www." is
// stripped before comparison. Absence from the list is not an error,
// just false.
func Allowed(host string) bool {
	h := strings.TrimPrefix(strings.ToLower(host), "www.")
	for _, dom := range domains {
		if h == dom || strings.HasSuffix(h, "."+dom) {
			return true
		}
	}
	return false
}
