package question

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBankTTL = 5 * time.Minute
	bankCacheKey   = "quizduel:bank:v1"
)

// RedisCache is a read-through cache wrapping a Loader, for deployments where
// the bank lives in a shared store. Entries expire with jittered TTL and a
// singleflight group collapses concurrent misses into one loader call.
type RedisCache struct {
	client *redis.Client
	loader Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

// NewRedisCache wraps loader with Redis caching. A non-positive ttl falls back
// to the default.
func NewRedisCache(client *redis.Client, loader Loader, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultBankTTL
	}
	return &RedisCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RedisCache) Load(ctx context.Context) ([]Question, error) {
	if questions, ok := c.fromCache(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(bankCacheKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if questions, ok := c.fromCache(ctx); ok {
			return questions, nil
		}

		questions, err := c.loader.Load(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal bank: %w", err)
		}
		// Cache write failures are not fatal; the loader result stands.
		_ = c.client.Set(ctx, bankCacheKey, data, c.ttlWithJitter()).Err()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Question), nil
}

func (c *RedisCache) fromCache(ctx context.Context) ([]Question, bool) {
	data, err := c.client.Get(ctx, bankCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, len(questions) > 0
}

func (c *RedisCache) ttlWithJitter() time.Duration {
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
