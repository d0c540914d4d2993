package app

import (
	"context"
	"fmt"

	"newsradar/internal/cache"
	"newsradar/internal/classify"
	"newsradar/internal/config"
	"newsradar/internal/dedup"
	"newsradar/internal/feed"
	"newsradar/internal/logger"
	"newsradar/internal/oracle"
	"newsradar/internal/pipeline"
	"newsradar/internal/ratelimit"
	"newsradar/internal/retry"
	"newsradar/internal/server"
)

// Run wires configuration, the oracle stack, the feed source and the HTTP
// server together, then blocks serving requests.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Debug)

	client, closeOracle, err := buildOracle(cfg)
	if err != nil {
		return fmt.Errorf("build oracle: %w", err)
	}
	if closeOracle != nil {
		defer closeOracle()
	}

	searchCfg, err := feed.LoadSearchConfig(cfg.SearchConfigPath)
	if err != nil {
		logger.Warn("search settings not loaded, using defaults", "path", cfg.SearchConfigPath, "error", err)
		searchCfg = feed.DefaultSearchConfig()
	}

	source := feed.NewSource(searchCfg)
	classifier := classify.New(client, cache.New(cfg.CacheTTL))
	analyzer := pipeline.New(source, dedup.New(client), classifier, cfg.DedupeBatchLimit)

	handler := server.NewHandler(analyzer, cfg.DefaultDays, cfg.ResultCap)
	engine := server.New(handler, cfg.AllowedOrigin)

	logger.Info("starting newsradar",
		"port", cfg.Port,
		"provider", cfg.OracleProvider,
		"result_cap", cfg.ResultCap,
	)
	return engine.Run(":" + cfg.Port)
}

// buildOracle assembles the configured backend with its middleware:
// metrics next to the backend, then per-call timeout, retry, and the daily
// budget outermost so retries stay within one budget charge.
func buildOracle(cfg *config.Config) (oracle.Client, func(), error) {
	var client oracle.Client
	var closeFn func()

	switch cfg.OracleProvider {
	case "gemini":
		g, err := oracle.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		client = g
		closeFn = g.Close
	default:
		client = oracle.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OracleTimeout)
	}

	client = oracle.WithMetrics(client)
	client = oracle.WithTimeout(client, cfg.OracleTimeout)
	if cfg.RetryAttempts > 1 {
		client = oracle.WithRetry(client, retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		})
	}
	client = oracle.WithLimit(client, ratelimit.New(cfg.MaxOracleRequests))

	return client, closeFn, nil
}
