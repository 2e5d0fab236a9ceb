package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/redisx"
)

// ListingCache holds the serialized in-stock listing under a single fixed key.
// It is a recomputable projection of Postgres: callers must treat every error
// and every miss identically and fall through to the store.
type ListingCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = redisx.TTLProductListing
	}
	return &ListingCache{RDB: rdb, TTL: ttl}
}

// Get returns the cached listing and whether it was present.
func (c *ListingCache) Get(ctx context.Context) ([]Product, bool, error) {
	b, err := c.RDB.Get(ctx, redisx.KeyProductListing).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out []Product
	if err := json.Unmarshal(b, &out); err != nil {
		// corrupt entry: behave like a miss, next Set overwrites it
		return nil, false, err
	}
	return out, true, nil
}

func (c *ListingCache) Set(ctx context.Context, products []Product) error {
	b, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, redisx.KeyProductListing, b, c.TTL).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.RDB.Del(ctx, redisx.KeyProductListing).Err()
}
