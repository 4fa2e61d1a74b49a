package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/explorex/internal/catalog"
	"github.com/neexbeast/explorex/internal/listing"
)

const (
	defaultTTL = time.Hour
	keyPrefix  = "listing:"
	flushBatch = 100
)

// Cache wraps a Redis client and stores rendered listing pages.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key returns the Redis key for a listing of the given kind and query.
// Each part is query-escaped, so user text cannot forge another query's key.
// The search term is lowercased because matching is case-insensitive; a nil
// category omits the c parameter, which keeps it distinct from an empty one.
func key(kind string, q listing.Query) string {
	vals := url.Values{
		"q": {strings.ToLower(q.Search)},
		"s": {string(q.Sort)},
		"v": {strconv.Itoa(q.Visible)},
	}
	if q.Category != nil {
		vals.Set("c", *q.Category)
	}
	return keyPrefix + kind + ":" + vals.Encode()
}

func get[T any](ctx context.Context, c *Cache, k string) (*listing.Page[T], error) {
	val, err := c.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", k, err)
	}

	var page listing.Page[T]
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, fmt.Errorf("unmarshaling cached page %s: %w", k, err)
	}
	return &page, nil
}

func set[T any](ctx context.Context, c *Cache, k string, page *listing.Page[T]) error {
	if page == nil {
		return nil
	}

	b, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshaling page %s: %w", k, err)
	}

	if err := c.client.Set(ctx, k, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", k, err)
	}
	return nil
}

// GetDestinations retrieves a cached destination page.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) GetDestinations(ctx context.Context, q listing.Query) (*listing.Page[catalog.Destination], error) {
	return get[catalog.Destination](ctx, c, key("destinations", q))
}

// SetDestinations stores a destination page with the configured TTL.
func (c *Cache) SetDestinations(ctx context.Context, q listing.Query, page *listing.Page[catalog.Destination]) error {
	return set(ctx, c, key("destinations", q), page)
}

// GetAgencies retrieves a cached agency page.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) GetAgencies(ctx context.Context, q listing.Query) (*listing.Page[catalog.Agency], error) {
	return get[catalog.Agency](ctx, c, key("agencies", q))
}

// SetAgencies stores an agency page with the configured TTL.
func (c *Cache) SetAgencies(ctx context.Context, q listing.Query, page *listing.Page[catalog.Agency]) error {
	return set(ctx, c, key("agencies", q), page)
}

// Flush removes every cached listing page and reports how many were deleted.
// Keys are collected with SCAN before any are deleted.
func (c *Cache) Flush(ctx context.Context) (int, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scanning cache keys: %w", err)
	}

	var deleted int
	for start := 0; start < len(keys); start += flushBatch {
		end := min(start+flushBatch, len(keys))
		n, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache flush: %w", err)
		}
		deleted += int(n)
	}
	return deleted, nil
}
