package mart

import (
	"context"
	"sync"
	"time"

	"analytics-service/internal/models"
	"analytics-service/internal/util"

	"go.uber.org/zap"
)

// Clock supplies the current time; injected so cache expiry is testable.
type Clock func() time.Time

// Cache keeps the loaded mart table in memory for a bounded time. Expiry is
// checked lazily on read; Invalidate drops the snapshot immediately, e.g.
// when a mart-refresh event arrives.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    Clock
	logger *zap.Logger

	mu       sync.Mutex
	table    []models.Transaction
	loadedAt time.Time
	valid    bool
}

// NewCache wraps a loader with a TTL cache. A nil clock defaults to
// time.Now.
func NewCache(loader Loader, ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		loader: loader,
		ttl:    ttl,
		now:    clock,
		logger: util.GetLogger(),
	}
}

// Table returns the cached mart table, reloading from the backing source
// when the snapshot is missing or stale. Concurrent callers share one load.
func (c *Cache) Table(ctx context.Context) ([]models.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		util.DatasetCacheHitsTotal.Inc()
		return c.table, nil
	}

	util.DatasetCacheMissesTotal.Inc()
	table, err := c.loader.Load(ctx)
	if err != nil {
		// Serve the stale snapshot if one exists rather than failing the
		// request outright.
		if c.valid {
			c.logger.Warn("Mart reload failed, serving stale snapshot", zap.Error(err))
			return c.table, nil
		}
		return nil, err
	}

	c.table = table
	c.loadedAt = c.now()
	c.valid = true
	return c.table, nil
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
	c.table = nil
	util.DatasetCacheInvalidations.Inc()
	c.logger.Info("Mart cache invalidated")
}
