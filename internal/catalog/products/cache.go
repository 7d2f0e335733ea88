package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

// CachedRepository decorates a Repository with a Redis cache for the product
// list, the hottest read of the sale screen. Entries are keyed by the
// repository version so any mutation naturally invalidates the previous key.
type CachedRepository struct {
	Repository

	rdb    *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedRepository wraps repo with a Redis-backed list cache.
func NewCachedRepository(repo Repository, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: repo, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedRepository) listKey() string {
	return fmt.Sprintf("catalog:products:v%d", c.Repository.Version())
}

// List serves the product list from Redis when possible. Cache failures are
// logged and fall through to the underlying repository.
func (c *CachedRepository) List(ctx context.Context) ([]ledger.Product, error) {
	key := c.listKey()

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var out []ledger.Product
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.logger.Warn("product cache entry corrupt, refetching", slog.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("product cache read failed", slog.Any("error", err))
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := c.Repository.List(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(out); err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.logger.Warn("product cache write failed", slog.Any("error", err))
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ledger.Product), nil
}
