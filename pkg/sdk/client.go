package atletismo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/db"
	dbRedis "github.com/kinhostella/atletismo/internal/db/redis"
	"github.com/kinhostella/atletismo/internal/domain/event"
	"github.com/kinhostella/atletismo/internal/metrics"
	"github.com/kinhostella/atletismo/internal/repository/intentcache"
	"github.com/kinhostella/atletismo/internal/repository/ranking"
	"github.com/kinhostella/atletismo/internal/transport/llm"
	askuc "github.com/kinhostella/atletismo/internal/usecase/ask"
	composeuc "github.com/kinhostella/atletismo/internal/usecase/compose"
	extractuc "github.com/kinhostella/atletismo/internal/usecase/extract"
	healthuc "github.com/kinhostella/atletismo/internal/usecase/health"
	queryuc "github.com/kinhostella/atletismo/internal/usecase/query"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Hour
)

// Internal interfaces for test substitution.
type askUseCase interface {
	Ask(ctx context.Context, question string) (askuc.Answer, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Answer is the reply to one question.
type Answer struct {
	Text     string
	Warnings []string
}

// Client is the atletismo SDK entry point.
type Client struct {
	store     db.Store
	askSvc    askUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client: loads the ranking dataset into memory and wires
// the question pipeline. The provided context is used for the initial
// cache readiness check (when a cache is configured).
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		provider: "gemini",
		timeout:  30 * time.Second,
		cacheTTL: defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.model == "" {
		cfg.model = "gemini-2.5-flash-lite"
	}
	if cfg.baseURL == "" {
		cfg.baseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	}

	if cfg.apiKey == "" {
		return nil, errors.New("atletismo: model api key required (use WithModel)")
	}
	if cfg.datasetPath == "" && cfg.datasetReader == nil {
		return nil, errors.New("atletismo: dataset required (use WithDataset or WithDatasetReader)")
	}

	table, err := loadTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("atletismo: load dataset: %w", err)
	}

	var store db.Store
	if cfg.cacheAddr != "" {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    []string{cfg.cacheAddr},
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("atletismo: create cache store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("atletismo: cache not ready: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return wireClient(table, store, cfg, obs), nil
}

func loadTable(cfg *clientConfig) (*ranking.Table, error) {
	if cfg.datasetReader != nil {
		return ranking.Parse(cfg.datasetReader)
	}
	return ranking.Load(cfg.datasetPath)
}

func wireClient(table *ranking.Table, store db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	modelClient := llm.NewClient(&llm.Config{
		APIKey:   cfg.apiKey,
		BaseURL:  cfg.baseURL,
		Model:    cfg.model,
		Provider: cfg.provider,
		Timeout:  cfg.timeout,
		Logger:   logger,
	})

	var extractor askuc.Extractor = extractuc.New(modelClient)
	if store != nil {
		extractor = intentcache.New(extractor, store, cfg.cacheTTL, metrics.IntentCacheTotal, logger)
	}
	engine := queryuc.New(event.NewResolver())
	composer := composeuc.New(modelClient)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}

	return &Client{
		store:     store,
		askSvc:    askuc.New(table, extractor, engine, composer),
		healthSvc: healthuc.New(table, modelClient, cachePinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ask answers one natural-language question about the ranking.
func (c *Client) Ask(ctx context.Context, question string) (a Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	answer, err := c.askSvc.Ask(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return Answer{Text: answer.Text, Warnings: answer.Warnings}, nil
}
