package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"xraynews/internal/aggregate"
	"xraynews/internal/ai"
	"xraynews/internal/brief"
	"xraynews/internal/config"
	"xraynews/internal/feed"
	"xraynews/internal/handler"
	transport "xraynews/internal/http"
	"xraynews/internal/logger"
	"xraynews/internal/metrics"
	"xraynews/internal/network"
	"xraynews/internal/scheduler"
	"xraynews/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	briefStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer briefStore.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	safeClient := network.NewSafeClient(cfg.FetchTimeout)
	fetcher := feed.NewHTTPFetcher(safeClient, collector)
	groups := feed.DefaultGroups()
	engine := aggregate.NewEngine(fetcher, groups, collector)
	proxy := feed.NewProxy(safeClient)

	provider := buildProvider(cfg)
	limiter := ai.NewRateLimiter(cfg.AIRateQPS)
	briefService := brief.NewService(briefStore, provider, limiter, engine, groups, collector, cfg.CanonicalBase, cfg.OGImage, cfg.Author)

	originClient := network.NewOriginClient(cfg.ProxyURL, 30*time.Second)

	healthHandler := handler.NewHealthHandler()
	proxyHandler := handler.NewProxyHandler(proxy)
	aggregateHandler := handler.NewAggregateHandler(engine)
	briefHandler := handler.NewBriefHandler(briefStore, briefService)
	originHandler := handler.NewOriginHandler(originClient, cfg.OriginURL, briefStore)

	router := transport.NewRouter(healthHandler, proxyHandler, aggregateHandler, briefHandler, originHandler, registry)

	// The daily generation job only makes sense with a provider; manual
	// POST /marketbrief/generate still works without one and stores a
	// placeholder brief.
	var sched *scheduler.Scheduler
	if provider != nil {
		sched = scheduler.New(briefService, cfg.GenerateHourUTC)
		sched.Start()
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main", "action", "shutdown", "resource", "server", "result", "ok")
		if sched != nil {
			sched.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", "module", "main", "action", "shutdown", "resource", "server", "result", "failed", "error", err)
		}
	}()

	logger.Info("server starting", "module", "main", "action", "start", "resource", "server", "result", "ok", "addr", cfg.Addr, "service", config.AppName)
	if err := router.Start(cfg.Addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

// openStore picks Redis when a URL is configured, otherwise the
// embedded sqlite store under the data directory.
func openStore(cfg config.Config) (store.BriefStore, error) {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.OpenRedis(ctx, cfg.RedisURL)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	return store.OpenSQLite(cfg.DBPath)
}

// buildProvider returns nil when no usable provider is configured;
// brief generation then degrades to placeholder content.
func buildProvider(cfg config.Config) ai.Provider {
	apiKey := cfg.OpenAIKey
	if cfg.BriefProvider == ai.ProviderAnthropic {
		apiKey = cfg.AnthropicKey
	}

	provider, err := ai.NewProvider(ai.Config{
		Provider: cfg.BriefProvider,
		APIKey:   apiKey,
		BaseURL:  cfg.BriefBaseURL,
		Model:    cfg.BriefModel,
	})
	if err != nil {
		logger.Warn("brief provider not configured", "module", "main", "action", "init", "resource", "provider", "result", "degraded", "provider", cfg.BriefProvider, "error", err)
		return nil
	}
	return provider
}
