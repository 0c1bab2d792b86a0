package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/metrics"
	"github.com/dutchiono/headless-markets/internal/models"
)

// CachedStore wraps a DataStore with a read-through Redis cache for
// single-agent lookups. Cache failures degrade to the underlying store.
type CachedStore struct {
	DataStore
	cache  *RedisStore
	logger zerolog.Logger
}

// NewCachedStore decorates next with cache.
func NewCachedStore(next DataStore, cache *RedisStore, logger zerolog.Logger) *CachedStore {
	return &CachedStore{DataStore: next, cache: cache, logger: logger}
}

// GetAgent serves from the cache when possible and fills it on a miss.
func (s *CachedStore) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	agent, found, err := s.cache.GetCachedAgent(ctx, id)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("agent_id", id).Msg("agent cache read failed")
	case found:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return agent, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	agent, err = s.DataStore.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.CacheAgent(ctx, id, agent); err != nil {
		s.logger.Warn().Err(err).Str("agent_id", id).Msg("agent cache write failed")
	}
	return agent, nil
}

// CreateAgent writes through and drops any cached negative lookup.
func (s *CachedStore) CreateAgent(ctx context.Context, agent models.Agent) (*models.Agent, error) {
	created, err := s.DataStore.CreateAgent(ctx, agent)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

// SetAgentFlags writes through and invalidates the cached agent.
func (s *CachedStore) SetAgentFlags(ctx context.Context, id string, verified, active bool) error {
	if err := s.DataStore.SetAgentFlags(ctx, id, verified, active); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, id string) {
	if err := s.cache.InvalidateAgent(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("agent_id", id).Msg("agent cache invalidation failed")
	}
}
