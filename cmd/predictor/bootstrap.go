package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stock-predictor/internal/api"
	"stock-predictor/internal/cache"
	"stock-predictor/internal/catalog"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/marketdata"
	"stock-predictor/internal/marketdata/marketdataobs"
	"stock-predictor/internal/metrics"
	"stock-predictor/internal/news"
	"stock-predictor/internal/predictor"
	"stock-predictor/internal/screener"
	"stock-predictor/internal/screener/screenerobs"
	"stock-predictor/internal/sentiment"
	"stock-predictor/internal/store"
	"stock-predictor/internal/trace"
)

// initializeSystem loads .env and starts the logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func shutdownSystem(ctx context.Context) {
	_ = trace.Shutdown(ctx)
	_ = logger.Shutdown(ctx)
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// app holds the wired pipeline shared by every subcommand.
type app struct {
	cfg      *store.Config
	cache    cache.BytesCache
	metrics  *metrics.Recorder
	engine   *predictor.Engine
	screener *screener.Screener
	observed interfaces.Screener
	catalogs *catalog.Registry
}

// newApp wires cache, data sources, scorers, screener and catalogs. workers
// overrides the configured pool size when positive.
func newApp(ctx context.Context, cfg *store.Config, workers int, progress screener.Progress) (*app, error) {
	c, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	if c == nil {
		logger.Info(ctx, "Caching disabled")
	}

	rec := metrics.New()

	data, err := marketdata.NewFromConfig(cfg.Data, c)
	if err != nil {
		return nil, fmt.Errorf("market data: %w", err)
	}
	data = marketdataobs.Wrap(data, rec)
	logger.Info(ctx, "Market data ready", "price_source", cfg.Data.PriceSource, "cache", cfg.Cache.Backend)

	var headlines interfaces.NewsSource = news.NewGoogleNews(cfg.News)
	if c != nil {
		headlines = news.NewCached(headlines, c, cache.NewsTTL)
	}

	analyzer, err := sentiment.NewAnalyzer(cfg.Sentiment.Analyzer)
	if err != nil {
		return nil, err
	}

	eng := predictor.NewEngine(cfg.Scoring, analyzer, data,
		predictor.WithNews(headlines),
		predictor.WithMetrics(rec),
		predictor.WithLabels(cfg.StatementLabels()),
	)

	if workers <= 0 {
		workers = cfg.Screener.Workers
	}
	scr := screener.New(eng,
		screener.WithWorkers(workers),
		screener.WithMetrics(rec),
		screener.WithProgress(progress),
	)

	client := api.NewClient(
		api.WithHeaders(api.BrowserHeaders()),
		api.WithTimeout(cfg.Data.Timeout),
		api.WithRetry(api.DefaultRetryConfig()),
		api.WithLogging(cfg.Data.LogHTTP),
	)

	return &app{
		cfg:      cfg,
		cache:    c,
		metrics:  rec,
		engine:   eng,
		screener: scr,
		observed: screenerobs.Wrap(scr),
		catalogs: catalog.NewRegistry(client, c, cfg.Catalogs),
	}, nil
}

func (a *app) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
