package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dutchiono/headless-markets/internal/models"
)

// countingStore counts GetAgent calls that reach the backing store.
type countingStore struct {
	*MemoryStore
	gets int
}

func (s *countingStore) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	s.gets++
	return s.MemoryStore.GetAgent(ctx, id)
}

func setupCachedStore(t *testing.T) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		// Disable CLIENT SETINFO for miniredis compatibility
		DisableIndentity: true,
	})
	t.Cleanup(func() { client.Close() })

	backing := &countingStore{MemoryStore: NewMemoryStore()}
	cache := NewRedisStoreFromClient(client, time.Minute)
	return NewCachedStore(backing, cache, zerolog.Nop()), backing, mr
}

func TestCachedStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	s, backing, mr := setupCachedStore(t)

	_, err := backing.CreateAgent(ctx, models.Agent{ID: "a1", Name: "Oracle", IsVerified: true, IsActive: true})
	require.NoError(t, err)

	first, err := s.GetAgent(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, backing.gets)
	assert.True(t, mr.Exists("agent:a1"))

	second, err := s.GetAgent(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "Oracle", second.Name)
	assert.True(t, second.IsActive)
	assert.Equal(t, 1, backing.gets, "second lookup should be served from cache")
}

func TestCachedStoreCachesMisses(t *testing.T) {
	ctx := context.Background()
	s, backing, mr := setupCachedStore(t)

	for i := 0; i < 3; i++ {
		agent, err := s.GetAgent(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, agent)
	}
	assert.Equal(t, 1, backing.gets)

	v, err := mr.Get("agent:missing")
	require.NoError(t, err)
	assert.Equal(t, missing, v)
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	s, backing, mr := setupCachedStore(t)

	agent, err := s.GetAgent(ctx, "late")
	require.NoError(t, err)
	assert.Nil(t, agent)

	_, err = s.CreateAgent(ctx, models.Agent{ID: "late", IsVerified: true})
	require.NoError(t, err)
	assert.False(t, mr.Exists("agent:late"))

	agent, err = s.GetAgent(ctx, "late")
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.False(t, agent.IsActive)

	require.NoError(t, s.SetAgentFlags(ctx, "late", true, true))
	assert.False(t, mr.Exists("agent:late"))

	agent, err = s.GetAgent(ctx, "late")
	require.NoError(t, err)
	assert.True(t, agent.IsActive)
	assert.Equal(t, 3, backing.gets)
}

func TestCachedStoreTTL(t *testing.T) {
	ctx := context.Background()
	s, _, mr := setupCachedStore(t)

	_, err := s.GetAgent(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("agent:ephemeral"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("agent:ephemeral"))
}

func TestCachedStoreDegradesWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	s, backing, mr := setupCachedStore(t)

	_, err := backing.CreateAgent(ctx, models.Agent{ID: "a1"})
	require.NoError(t, err)

	mr.Close()

	agent, err := s.GetAgent(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.Equal(t, "a1", agent.ID)
}
