package feed

// Group names accepted by the aggregator. Unknown names are ignored.
const (
	GroupCrypto = "crypto"
	GroupStocks = "stocks"
	GroupMacro  = "macro"
)

// groupOrder fixes the concatenation order when several groups are
// requested. De-duplication is first-seen-wins, so this order decides
// which copy of a cross-posted story survives.
var groupOrder = []string{GroupCrypto, GroupStocks, GroupMacro}

// Groups maps a group name to its ordered feed URL list. Static
// configuration, never mutated at runtime.
type Groups map[string][]string

// DefaultGroups returns the built-in feed configuration.
func DefaultGroups() Groups {
	return Groups{
		GroupCrypto: {
			"https://www.coindesk.com/arc/outboundfeeds/rss/",
			"https://cointelegraph.com/rss",
			"https://www.theblock.co/rss.xml",
			"https://decrypt.co/feed",
			"https://messari.io/rss",
			"https://blog.chain.link/feed/",
			"https://cryptoslate.com/feed/",
			"https://bitcoinmagazine.com/feed",
			"https://blockworks.co/feeds/rss",
			"https://thedefiant.io/feed",
			"https://protos.com/feed/",
			"https://ambcrypto.com/feed/",
			"https://beincrypto.com/feed/",
			"https://coingape.com/feed/",
			"https://coinpedia.org/feed/",
			"https://cryptopotato.com/feed/",
		},
		GroupStocks: {
			"https://feeds.a.dj.com/rss/RSSMarketsMain.xml",
			"https://www.reuters.com/markets/us/rss",
			"https://www.cnbc.com/id/100003114/device/rss/rss.html",
			"https://feeds.foxbusiness.com/foxbusiness/latest",
			"https://apnews.com/hub/apf-business?output=rss",
			"https://finance.yahoo.com/news/rssindex",
			"https://www.ft.com/markets/rss",
			"https://rss.cnn.com/rss/money_latest.rss",
			"https://rss.nytimes.com/services/xml/rss/nyt/Business.xml",
			"https://www.marketwatch.com/feeds/topstories",
			"https://www.marketwatch.com/feeds/marketpulse",
			"https://www.moneycontrol.com/rss/business.xml",
			"https://www.moneycontrol.com/rss/marketreports.xml",
			"https://www.moneycontrol.com/rss/economy.xml",
			"https://www.theguardian.com/uk/business/rss",
			"http://feeds.bbci.co.uk/news/business/rss.xml",
		},
		GroupMacro: {
			"https://www.reuters.com/world/rss",
			"https://apnews.com/hub/apf-topnews?output=rss",
			"https://news.google.com/rss/search?q=market%20volatility%20OR%20stocks%20selloff%20OR%20crypto%20crash&hl=en-US&gl=US&ceid=US:en",
			"https://www.federalreserve.gov/feeds/press_all.xml",
			"https://www.bls.gov/feed/news_release.rss",
			"https://www.bea.gov/rss.xml",
			"https://home.treasury.gov/rss/press.xml",
			"https://www.ecb.europa.eu/press/rss/press.xml",
			"https://www.bankofengland.co.uk/boeapps/rss/feeds.aspx?feed=News",
			"https://www.sec.gov/cgi-bin/browse-edgar?action=getcurrent&type=8-K&output=atom",
		},
	}
}

// Expand concatenates the URL lists of the requested groups in the
// fixed crypto, stocks, macro order. Names not in the configuration
// are silently dropped; duplicates in the request have no effect.
func (g Groups) Expand(names []string) []string {
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	var urls []string
	for _, name := range groupOrder {
		if requested[name] {
			urls = append(urls, g[name]...)
		}
	}
	return urls
}

// Names returns all configured group names in concatenation order.
func (g Groups) Names() []string {
	names := make([]string, 0, len(groupOrder))
	for _, name := range groupOrder {
		if _, ok := g[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
