package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dutchiono/headless-markets/internal/models"
	"github.com/dutchiono/headless-markets/internal/store"
)

// recordingService captures the filters it is called with.
type recordingService struct {
	agents  map[string]models.Agent
	list    []models.Agent
	err     error
	filters []store.AgentFilter
}

func (s *recordingService) ListAgents(ctx context.Context, filter store.AgentFilter) ([]models.Agent, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *recordingService) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.agents[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func newTestShop(svc AgentService) *Shop {
	return NewShop(svc, zerolog.Nop())
}

func TestActiveAgentsForcesVerified(t *testing.T) {
	tests := []struct {
		name string
		opts *ListOptions
	}{
		{"nil options", nil},
		{"empty options", &ListOptions{}},
		{"category", &ListOptions{Category: "defi"}},
		{"paged search", &ListOptions{NameContains: "oracle", Skip: 5, Take: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingService{}
			_, err := newTestShop(svc).ActiveAgents(context.Background(), tt.opts)
			require.NoError(t, err)
			require.Len(t, svc.filters, 1)

			f := svc.filters[0]
			require.NotNil(t, f.IsVerified)
			assert.True(t, *f.IsVerified)
			assert.Nil(t, f.IsActive)
			if tt.opts != nil {
				assert.Equal(t, tt.opts.Category, f.Category)
				assert.Equal(t, tt.opts.NameContains, f.NameContains)
				assert.Equal(t, tt.opts.Skip, f.Skip)
				assert.Equal(t, tt.opts.Take, f.Take)
			}
		})
	}
}

func TestActiveAgentsTotalItemsIsPageLength(t *testing.T) {
	svc := &recordingService{list: []models.Agent{
		{ID: "a", IsVerified: true},
		{ID: "b", IsVerified: true},
	}}

	list, err := newTestShop(svc).ActiveAgents(context.Background(), &ListOptions{Take: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, len(list.Items), list.TotalItems)
}

func TestActiveAgentsEmptyResultIsNotNil(t *testing.T) {
	list, err := newTestShop(&recordingService{}).ActiveAgents(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Equal(t, 0, list.TotalItems)
}

func TestAgentVisibility(t *testing.T) {
	svc := &recordingService{agents: map[string]models.Agent{
		"unverified": {ID: "unverified", IsVerified: false, IsActive: true},
		"inactive":   {ID: "inactive", IsVerified: true, IsActive: false},
		"valid":      {ID: "valid", Name: "Valid Agent", IsVerified: true, IsActive: true},
	}}
	shop := newTestShop(svc)

	for _, id := range []string{"missing", "unverified", "inactive"} {
		t.Run(id, func(t *testing.T) {
			agent, err := shop.Agent(context.Background(), id)
			require.NoError(t, err)
			assert.Nil(t, agent)
		})
	}

	t.Run("valid", func(t *testing.T) {
		agent, err := shop.Agent(context.Background(), "valid")
		require.NoError(t, err)
		require.NotNil(t, agent)
		assert.Equal(t, "valid", agent.ID)
		assert.Equal(t, "Valid Agent", agent.Name)
	})
}

func TestHiddenReason(t *testing.T) {
	assert.Equal(t, HiddenNotFound, hiddenReason(nil))
	assert.Equal(t, HiddenUnverified, hiddenReason(&models.Agent{IsActive: true}))
	assert.Equal(t, HiddenUnverified, hiddenReason(&models.Agent{}))
	assert.Equal(t, HiddenInactive, hiddenReason(&models.Agent{IsVerified: true}))
	assert.Equal(t, HiddenReason(""), hiddenReason(&models.Agent{IsVerified: true, IsActive: true}))
}

func TestAgentsByCategoryFilter(t *testing.T) {
	svc := &recordingService{list: []models.Agent{
		{ID: "x", Category: "defi", IsVerified: true, IsActive: false},
	}}

	agents, err := newTestShop(svc).AgentsByCategory(context.Background(), "defi")
	require.NoError(t, err)
	require.Len(t, svc.filters, 1)

	assert.Equal(t, store.AgentFilter{Category: "defi", IsVerified: store.Bool(true)}, svc.filters[0])
	// Inactive agents pass through; only verification is enforced.
	require.Len(t, agents, 1)
	assert.False(t, agents[0].IsActive)
}

func TestServiceErrorsPropagate(t *testing.T) {
	boom := errors.New("catalog unavailable")
	shop := newTestShop(&recordingService{err: boom})
	ctx := context.Background()

	_, err := shop.ActiveAgents(ctx, nil)
	assert.ErrorIs(t, err, boom)

	agent, err := shop.Agent(ctx, "valid")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, agent)

	_, err = shop.AgentsByCategory(ctx, "defi")
	assert.ErrorIs(t, err, boom)
}

func TestShopOverMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	for _, a := range []models.Agent{
		{ID: "v1", Category: "defi", IsVerified: true, IsActive: true},
		{ID: "v2", Category: "defi", IsVerified: true, IsActive: false},
		{ID: "u1", Category: "defi", IsVerified: false, IsActive: true},
		{ID: "v3", Category: "nft", IsVerified: true, IsActive: true},
	} {
		_, err := st.CreateAgent(ctx, a)
		require.NoError(t, err)
	}
	shop := newTestShop(st)

	list, err := shop.ActiveAgents(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, list.TotalItems)

	byCat, err := shop.AgentsByCategory(ctx, "defi")
	require.NoError(t, err)
	ids := make([]string, 0, len(byCat))
	for _, a := range byCat {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"v1", "v2"}, ids)
}
