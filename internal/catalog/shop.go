// Package catalog implements the customer-facing view of the agent catalog.
//
// Shop callers only ever see verified agents, and single-agent lookups also
// require the agent to be active. Callers filter with ListOptions, which has
// no trust or visibility fields; the mandatory predicate is applied here.
package catalog

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/metrics"
	"github.com/dutchiono/headless-markets/internal/models"
	"github.com/dutchiono/headless-markets/internal/store"
)

// AgentService is the catalog backend the shop view reads from.
// GetAgent returns nil, nil for an unknown id.
type AgentService interface {
	ListAgents(ctx context.Context, filter store.AgentFilter) ([]models.Agent, error)
	GetAgent(ctx context.Context, id string) (*models.Agent, error)
}

// ListOptions are the filters a shop caller may supply.
type ListOptions struct {
	Category     string
	NameContains string
	Skip         int
	Take         int
}

// AgentList is a page of shop-visible agents.
// TotalItems is the size of Items, not a count of all matching agents.
type AgentList struct {
	Items      []models.Agent `json:"items"`
	TotalItems int            `json:"total_items"`
}

// HiddenReason classifies why a single-agent lookup answered null.
type HiddenReason string

const (
	HiddenNotFound   HiddenReason = "not_found"
	HiddenUnverified HiddenReason = "unverified"
	HiddenInactive   HiddenReason = "inactive"
)

// Shop answers read-only catalog queries for customers.
type Shop struct {
	agents AgentService
	logger zerolog.Logger
}

// NewShop creates a Shop over the given backend.
func NewShop(agents AgentService, logger zerolog.Logger) *Shop {
	return &Shop{agents: agents, logger: logger}
}

// shopFilter turns caller options into a backend filter and then forces the
// verified-only predicate.
func shopFilter(opts *ListOptions) store.AgentFilter {
	var f store.AgentFilter
	if opts != nil {
		f.Category = opts.Category
		f.NameContains = opts.NameContains
		f.Skip = opts.Skip
		f.Take = opts.Take
	}
	f.IsVerified = store.Bool(true)
	return f
}

// ActiveAgents lists verified agents matching opts. opts may be nil.
func (s *Shop) ActiveAgents(ctx context.Context, opts *ListOptions) (AgentList, error) {
	metrics.ShopQueries.WithLabelValues("active_agents").Inc()

	agents, err := s.agents.ListAgents(ctx, shopFilter(opts))
	if err != nil {
		return AgentList{}, err
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	return AgentList{Items: agents, TotalItems: len(agents)}, nil
}

// Agent returns the agent with the given id if it is verified and active.
// Unknown and hidden agents both yield nil.
func (s *Shop) Agent(ctx context.Context, id string) (*models.Agent, error) {
	metrics.ShopQueries.WithLabelValues("agent").Inc()

	agent, err := s.agents.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	if reason := hiddenReason(agent); reason != "" {
		metrics.HiddenLookups.WithLabelValues(string(reason)).Inc()
		s.logger.Debug().
			Str("type", "audit").
			Str("event", "agent_hidden").
			Str("audit_id", ulid.Make().String()).
			Str("agent_id", id).
			Str("reason", string(reason)).
			Msg("agent lookup answered with null")
		return nil, nil
	}
	return agent, nil
}

// AgentsByCategory lists verified agents in category. Availability is not
// filtered here, unlike Agent.
func (s *Shop) AgentsByCategory(ctx context.Context, category string) ([]models.Agent, error) {
	metrics.ShopQueries.WithLabelValues("agents_by_category").Inc()

	agents, err := s.agents.ListAgents(ctx, store.AgentFilter{
		Category:   category,
		IsVerified: store.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	return agents, nil
}

func hiddenReason(a *models.Agent) HiddenReason {
	switch {
	case a == nil:
		return HiddenNotFound
	case !a.IsVerified:
		return HiddenUnverified
	case !a.IsActive:
		return HiddenInactive
	}
	return ""
}
