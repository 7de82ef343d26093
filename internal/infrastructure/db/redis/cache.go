package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// DocumentCache is a look-aside cache of assembled tracking documents.
// Entries expire on TTL so a stale document is at most one refresh
// interval behind the carrier.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	return &DocumentCache{client: client, ttl: ttl}
}

func cacheKey(carrier string, refType domain.RefType, refNum string) string {
	return fmt.Sprintf("track:%s:%s:%s", carrier, refType, refNum)
}

// Get returns the cached document and whether the key was present.
func (c *DocumentCache) Get(ctx context.Context, carrier string, refType domain.RefType, refNum string) (*domain.ShipmentTracking, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(carrier, refType, refNum)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var doc domain.ShipmentTracking
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the
		// next Set.
		return nil, false, nil
	}
	return &doc, true, nil
}

func (c *DocumentCache) Set(ctx context.Context, carrier string, refType domain.RefType, refNum string, doc *domain.ShipmentTracking) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(carrier, refType, refNum), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
