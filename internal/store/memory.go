package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dutchiono/headless-markets/internal/models"
)

// ErrAgentExists is returned when creating an agent whose ID is taken.
var ErrAgentExists = errors.New("agent already exists")

// ErrAgentNotFound is returned by updates targeting an unknown agent.
var ErrAgentNotFound = errors.New("agent not found")

// MemoryStore keeps agents in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	agents map[string]models.Agent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{agents: map[string]models.Agent{}}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) CreateAgent(ctx context.Context, agent models.Agent) (*models.Agent, error) {
	_ = ctx
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = now
	}
	agent.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agents[agent.ID]; ok {
		return nil, ErrAgentExists
	}
	s.agents[agent.ID] = agent
	out := agent
	return &out, nil
}

func (s *MemoryStore) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (s *MemoryStore) ListAgents(ctx context.Context, filter AgentFilter) ([]models.Agent, error) {
	_ = ctx
	s.mu.RLock()
	matched := make([]models.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		if matches(a, filter) {
			matched = append(matched, a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	off := filter.offset()
	if off >= len(matched) {
		return []models.Agent{}, nil
	}
	matched = matched[off:]
	if n := filter.limit(); n > 0 && n < len(matched) {
		matched = matched[:n]
	}
	return matched, nil
}

func (s *MemoryStore) SetAgentFlags(ctx context.Context, id string, verified, active bool) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[id]
	if !ok {
		return ErrAgentNotFound
	}
	a.IsVerified = verified
	a.IsActive = active
	a.UpdatedAt = time.Now().UTC()
	s.agents[id] = a
	return nil
}

func (s *MemoryStore) CountAgents(ctx context.Context) (int64, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.agents)), nil
}

func matches(a models.Agent, f AgentFilter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	if f.IsVerified != nil && a.IsVerified != *f.IsVerified {
		return false
	}
	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}
	return true
}
