// Package intentcache caches extracted intents in a key-value store so a
// repeated question skips the language model entirely.
package intentcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/db"
	"github.com/kinhostella/atletismo/internal/domain"
	"github.com/kinhostella/atletismo/internal/domain/normalize"
)

const cacheKeyPrefix = "atletismo:intent_cache:"

// extractor is the consumer interface for the decorated stage.
type extractor interface {
	Extract(ctx context.Context, question string) (domain.Intent, error)
}

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedExtractor caches intents keyed by the normalized question text.
type CachedExtractor struct {
	inner      extractor
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner extractor,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedExtractor {
	return &CachedExtractor{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Extract returns a cached intent or calls the inner extractor. Cache
// failures are logged and never fail the request.
func (c *CachedExtractor) Extract(ctx context.Context, question string) (domain.Intent, error) {
	key := c.cacheKey(question)

	if intent, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return intent, nil
	}

	c.incCache("miss")

	intent, err := c.inner.Extract(ctx, question)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("extract intent: %w", err)
	}

	c.putToCache(ctx, key, intent)
	return intent, nil
}

func (c *CachedExtractor) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedExtractor) cacheKey(question string) string {
	h := sha256.Sum256([]byte(normalize.Apply(question)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedExtractor) getFromCache(ctx context.Context, key string) (domain.Intent, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached intent", zap.String("key", key), zap.Error(err))
		}
		return domain.Intent{}, false
	}
	if len(data) == 0 {
		return domain.Intent{}, false
	}

	var intent domain.Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		c.logger.Warn("Failed to parse cached intent", zap.String("key", key), zap.Error(err))
		return domain.Intent{}, false
	}

	return intent, true
}

func (c *CachedExtractor) putToCache(ctx context.Context, key string, intent domain.Intent) {
	data, err := json.Marshal(intent)
	if err != nil {
		c.logger.Warn("Failed to encode intent for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache intent", zap.String("key", key), zap.Error(err))
	}
}
