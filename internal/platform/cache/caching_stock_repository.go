// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
	"mandacaru_broker/internal/feature/stocks/usecase"
	"mandacaru_broker/internal/platform/logger"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "stocks"
)

// CachingStockRepository decorates a StockRepository with Redis read-through caching.
// Writes go to the inner repository first, then drop the affected keys.
type CachingStockRepository struct {
	inner     usecase.StockRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.StockRepository = (*CachingStockRepository)(nil)

// NewCachingStockRepository decorates inner with Redis caching.
// A nil client disables caching. ttl <= 0 defaults to 5 minutes and an empty namespace to "stocks".
func NewCachingStockRepository(rdb *redis.Client, ttl time.Duration, inner usecase.StockRepository, namespace string) *CachingStockRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingStockRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll serves the full list from cache, falling back to the inner repository.
func (c *CachingStockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.allKey()
	var out []entity.Stock
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID serves a single stock from cache. Absence is never cached.
func (c *CachingStockRepository) FindByID(ctx context.Context, id string) (entity.Stock, bool, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var cached entity.Stock
	if c.get(ctx, key, &cached) && cached.ID == id {
		return cached, true, nil
	}

	stock, ok, err := c.inner.FindByID(ctx, id)
	if err != nil || !ok {
		return stock, ok, err
	}
	c.set(ctx, key, stock)
	return stock, true, nil
}

// Save writes through to the inner repository and invalidates the list and the stock's key.
func (c *CachingStockRepository) Save(ctx context.Context, stock entity.Stock) (entity.Stock, error) {
	saved, err := c.inner.Save(ctx, stock)
	if err != nil {
		return entity.Stock{}, err
	}
	c.invalidate(ctx, stock.ID)
	return saved, nil
}

// UpdatePrice writes through to the inner repository and invalidates the list and the stock's key.
func (c *CachingStockRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (bool, error) {
	ok, err := c.inner.UpdatePrice(ctx, id, price)
	if err != nil {
		return false, err
	}
	if ok {
		c.invalidate(ctx, id)
	}
	return ok, nil
}

// DeleteByID deletes through the inner repository and invalidates the list and the stock's key.
func (c *CachingStockRepository) DeleteByID(ctx context.Context, id string) error {
	if err := c.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// get decodes the cached value into dst and reports whether it was a usable hit.
func (c *CachingStockRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key (best effort).
func (c *CachingStockRepository) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Get().Warnw("cache set failed", "key", key, "error", err)
	}
}

func (c *CachingStockRepository) invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.allKey(), c.idKey(id)).Err(); err != nil {
		logger.Get().Warnw("cache invalidation failed", "id", id, "error", err)
	}
}

func (c *CachingStockRepository) allKey() string {
	return c.namespace + ":all"
}

func (c *CachingStockRepository) idKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, url.QueryEscape(id))
}
