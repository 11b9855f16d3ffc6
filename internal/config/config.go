package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	AppName    = "xraycrypto-news"
	AppVersion = "1.0.0"
)

// UserAgent identifies every outbound fetch this service performs.
const UserAgent = "XRNewsWorker/1.0"

type Config struct {
	Addr     string
	LogLevel string

	// OriginURL is the site this service fronts; HTML requests that
	// match no API route are proxied from here and have the latest
	// brief injected. Empty disables the fallback path.
	OriginURL string
	// ProxyURL optionally routes origin fetches through an HTTP or
	// SOCKS proxy.
	ProxyURL string

	// CanonicalBase is the public base URL used in brief canonical
	// links and permalink pages.
	CanonicalBase string
	OGImage       string
	Author        string

	// RedisURL selects the Redis brief store. When empty the service
	// falls back to an embedded sqlite store at DBPath.
	RedisURL string
	DataDir  string
	DBPath   string

	// Brief generation.
	BriefProvider   string // openai or anthropic
	OpenAIKey       string
	AnthropicKey    string
	BriefBaseURL    string
	BriefModel      string
	GenerateHourUTC int
	AIRateQPS       int

	FetchTimeout time.Duration
}

func Load() Config {
	dataDir := getenv("XRNEWS_DATA_DIR", "./data")
	return Config{
		Addr:            getenv("XRNEWS_ADDR", ":8080"),
		LogLevel:        getenv("XRNEWS_LOG_LEVEL", "info"),
		OriginURL:       os.Getenv("XRNEWS_ORIGIN_URL"),
		ProxyURL:        os.Getenv("XRNEWS_PROXY_URL"),
		CanonicalBase:   getenv("XRNEWS_CANONICAL_BASE", "https://xraycrypto.io"),
		OGImage:         getenv("XRNEWS_OG_IMAGE", "https://xraycrypto.io/img/og-marketbrief.png"),
		Author:          getenv("XRNEWS_AUTHOR", "XRayCrypto News"),
		RedisURL:        os.Getenv("XRNEWS_REDIS_URL"),
		DataDir:         filepath.Clean(dataDir),
		DBPath:          filepath.Clean(getenv("XRNEWS_DB_PATH", filepath.Join(dataDir, "xraynews.db"))),
		BriefProvider:   getenv("XRNEWS_BRIEF_PROVIDER", "openai"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		BriefBaseURL:    os.Getenv("XRNEWS_BRIEF_BASE_URL"),
		BriefModel:      getenv("XRNEWS_BRIEF_MODEL", "gpt-4o-mini"),
		GenerateHourUTC: getint("XRNEWS_GENERATE_HOUR_UTC", 11),
		AIRateQPS:       getint("XRNEWS_AI_RATE_QPS", 2),
		FetchTimeout:    getduration("XRNEWS_FETCH_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
