// Package app wires configuration into the assistant's components.
package app

import (
	"context"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery-assistant/internal/api"
	"grocery-assistant/internal/assistant"
	"grocery-assistant/internal/cart"
	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/common/config"
	"grocery-assistant/internal/common/database"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/observability"
	"grocery-assistant/internal/llm"
	"grocery-assistant/internal/pricing"
	"grocery-assistant/internal/search"
	"grocery-assistant/internal/suggest"
)

// App holds the built components. Optional backends are nil when disabled
// or unreachable.
type App struct {
	Config *config.Config

	Catalog *catalog.Catalog
	Rules   catalog.RuleSet

	Estimator   *pricing.Estimator
	Recommender *suggest.Recommender
	Pricing     pricing.Service
	Suggestions suggest.Service
	Prices      *pricing.Resolver
	Search      *search.Index
	Assistant   *assistant.Assistant

	Checks map[string]api.Check

	closers []io.Closer
	logger  logger.Logger
}

// Build connects the configured backends and assembles the pipeline. Only
// an unreadable catalog file is fatal; other backends degrade with a warning.
func Build(ctx context.Context, cfg *config.Config, obs *observability.Observability, log logger.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Rules:  catalog.DefaultRules(),
		Checks: make(map[string]api.Check),
		logger: log.WithFields(map[string]interface{}{"component": "app"}),
	}

	var err error
	if a.Catalog, err = a.loadCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Info("catalog loaded", map[string]interface{}{
		"source": cfg.Assistant.CatalogSource,
		"items":  a.Catalog.Len(),
	})

	redisClient := a.connectRedis(ctx)
	a.Search = a.connectSearch(ctx)

	model, err := llm.New(ctx, cfg.APIs.LLM, log)
	if err != nil {
		a.logger.Warn("language model unavailable, using local heuristics", map[string]interface{}{
			"provider": cfg.APIs.LLM.Provider,
			"error":    err.Error(),
		})
		model = nil
	}
	if closer, ok := model.(io.Closer); ok {
		a.closers = append(a.closers, closer)
	}

	a.Estimator = pricing.NewEstimator(a.Catalog, redisClient, model, config.GetDuration(cfg.Assistant.PriceCacheTTL), log)
	a.Recommender = suggest.NewRecommender(a.Catalog, a.Rules, model, log)

	a.Pricing = a.Estimator
	if cfg.APIs.Pricing.BaseURL != "" {
		a.Pricing = pricing.NewClient(cfg.APIs.Pricing, log)
	}
	a.Suggestions = a.Recommender
	if cfg.APIs.Suggestion.BaseURL != "" {
		a.Suggestions = suggest.NewClient(cfg.APIs.Suggestion, log)
	}

	a.Prices = pricing.NewResolver(a.Catalog, a.Pricing, config.GetDuration(cfg.APIs.Pricing.Timeout), log)

	deps := assistant.Dependencies{
		Catalog:       a.Catalog,
		Rules:         a.Rules,
		Prices:        a.Prices,
		Suggestions:   a.Suggestions,
		Cart:          cart.NewMemoryStore(),
		Observability: obs,
	}
	if a.Search != nil {
		deps.Search = a.Search
	}
	a.Assistant = assistant.New(assistant.Config{
		SuggestionTimeout: config.GetDuration(cfg.APIs.Suggestion.Timeout),
	}, deps, log)

	return a, nil
}

// Server builds the HTTP surface over the app.
func (a *App) Server(log logger.Logger) *api.Server {
	return api.NewServer(a.Config.Server, api.Dependencies{
		Assistant:   a.Assistant,
		Prices:      a.Estimator,
		Suggestions: a.Recommender,
		Checks:      a.Checks,
	}, log)
}

// Close releases every backend connection.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	a.closers = nil
}

func (a *App) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cfg := a.Config
	switch cfg.Assistant.CatalogSource {
	case config.CatalogSourceFile:
		return catalog.LoadFromFile(cfg.Assistant.CatalogFile)

	case config.CatalogSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			a.logger.Warn("postgres unavailable, using built-in catalog", map[string]interface{}{"error": err.Error()})
			return catalog.Default(), nil
		}
		a.closers = append(a.closers, pg)
		a.Checks["postgres"] = pg.Ping

		loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		cat, err := catalog.LoadFromPostgres(loadCtx, pg.DB)
		if err != nil {
			a.logger.Warn("catalog load failed, using built-in catalog", map[string]interface{}{"error": err.Error()})
			return catalog.Default(), nil
		}
		return cat, nil

	default:
		return catalog.Default(), nil
	}
}

func (a *App) connectRedis(ctx context.Context) *redis.Client {
	cfg := a.Config.Database.Redis
	if !cfg.Enabled {
		return nil
	}

	rc, err := database.NewRedis(cfg)
	if err == nil {
		err = rc.Ping(ctx)
	}
	if err != nil {
		a.logger.Warn("redis unavailable, price cache disabled", map[string]interface{}{"error": err.Error()})
		if rc != nil {
			_ = rc.Close()
		}
		return nil
	}

	a.closers = append(a.closers, rc)
	a.Checks["redis"] = rc.Ping
	return rc.Client
}

func (a *App) connectSearch(ctx context.Context) *search.Index {
	cfg := a.Config.Database.Elasticsearch
	if !cfg.Enabled {
		return nil
	}

	es, err := database.NewElasticsearch(cfg)
	if err != nil {
		a.logger.Warn("elasticsearch unavailable, search fallback disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}
	a.Checks["elasticsearch"] = es.IndexReady

	index := search.NewIndex(es.Client, es.Index, es.Timeout, a.logger)
	if err := index.IndexCatalog(ctx, a.Catalog); err != nil {
		a.logger.Warn("catalog indexing failed", map[string]interface{}{"error": err.Error()})
	}
	return index
}
