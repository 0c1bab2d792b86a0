package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dutchiono/headless-markets/internal/metrics"
	"github.com/dutchiono/headless-markets/internal/models"
)

// DefaultAgentTTL is how long a cached agent lookup stays valid.
const DefaultAgentTTL = 5 * time.Minute

// missing is cached for lookups of unknown agents so misses don't pound the database.
const missing = "-"

// RedisStore handles Redis operations for agent caching and counters.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisStoreFromClient(client, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultAgentTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Client exposes the underlying client for the rate limiter.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// agentKey returns the cache key for a single agent.
func agentKey(id string) string {
	return fmt.Sprintf("agent:%s", id)
}

// GetCachedAgent returns a cached lookup. found is false on a cache miss;
// a cached negative lookup returns found=true with a nil agent.
func (s *RedisStore) GetCachedAgent(ctx context.Context, id string) (agent *models.Agent, found bool, err error) {
	start := time.Now()
	data, err := s.client.Get(ctx, agentKey(id)).Result()
	metrics.RedisLatency.Observe(time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if data == missing {
		return nil, true, nil
	}

	var a models.Agent
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

// CacheAgent stores a lookup result. A nil agent caches the miss for id.
func (s *RedisStore) CacheAgent(ctx context.Context, id string, agent *models.Agent) error {
	value := missing
	if agent != nil {
		data, err := json.Marshal(agent)
		if err != nil {
			return err
		}
		value = string(data)
	}
	return s.client.Set(ctx, agentKey(id), value, s.ttl).Err()
}

// InvalidateAgent drops the cached lookup for id.
func (s *RedisStore) InvalidateAgent(ctx context.Context, id string) error {
	return s.client.Del(ctx, agentKey(id)).Err()
}
