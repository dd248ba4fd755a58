package question

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	categoriesCacheKey = "trivia:categories"
	defaultCacheTTL    = 10 * time.Minute
)

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache keeps the category list in Redis. Calls go through a circuit breaker so
// an unavailable Redis degrades to direct store reads instead of adding latency.
type Cache struct {
	client  redisKV
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client redisKV, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "category-cache",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Get returns nil, nil when the key is absent.
func (c *Cache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		b, err := c.client.Get(ctx, categoriesCacheKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("read category cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("decode category cache: %w", err)
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, categoriesCacheKey, data, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("write category cache: %w", err)
	}
	return nil
}
