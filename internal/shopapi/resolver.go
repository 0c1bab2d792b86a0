// Package shopapi serves the shop catalog as a GraphQL API.
package shopapi

import (
	"context"
	_ "embed"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/models"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the shop schema and binds it to shop.
func NewSchema(shop *catalog.Shop) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, &Resolver{shop: shop})
}

// MustSchema is NewSchema for callers that treat a schema error as fatal.
func MustSchema(shop *catalog.Shop) *graphql.Schema {
	s, err := NewSchema(shop)
	if err != nil {
		panic(err)
	}
	return s
}

// Resolver is the root Query resolver.
type Resolver struct {
	shop *catalog.Shop
}

// agentListOptions mirrors the AgentListOptions input. It has no visibility fields.
type agentListOptions struct {
	Category     *string
	NameContains *string
	Skip         *int32
	Take         *int32
}

func (o *agentListOptions) toListOptions() *catalog.ListOptions {
	if o == nil {
		return nil
	}
	opts := &catalog.ListOptions{}
	if o.Category != nil {
		opts.Category = *o.Category
	}
	if o.NameContains != nil {
		opts.NameContains = *o.NameContains
	}
	if o.Skip != nil {
		opts.Skip = int(*o.Skip)
	}
	if o.Take != nil {
		opts.Take = int(*o.Take)
	}
	return opts
}

func (r *Resolver) ActiveAgents(ctx context.Context, args struct{ Options *agentListOptions }) (*agentListResolver, error) {
	list, err := r.shop.ActiveAgents(ctx, args.Options.toListOptions())
	if err != nil {
		return nil, err
	}
	return &agentListResolver{list: list}, nil
}

func (r *Resolver) Agent(ctx context.Context, args struct{ ID graphql.ID }) (*agentResolver, error) {
	agent, err := r.shop.Agent(ctx, string(args.ID))
	if err != nil || agent == nil {
		return nil, err
	}
	return &agentResolver{agent: *agent}, nil
}

func (r *Resolver) AgentsByCategory(ctx context.Context, args struct{ Category string }) ([]*agentResolver, error) {
	agents, err := r.shop.AgentsByCategory(ctx, args.Category)
	if err != nil {
		return nil, err
	}
	return wrapAgents(agents), nil
}

type agentListResolver struct {
	list catalog.AgentList
}

func (r *agentListResolver) Items() []*agentResolver {
	return wrapAgents(r.list.Items)
}

func (r *agentListResolver) TotalItems() int32 {
	return int32(r.list.TotalItems)
}

type agentResolver struct {
	agent models.Agent
}

func wrapAgents(agents []models.Agent) []*agentResolver {
	out := make([]*agentResolver, len(agents))
	for i := range agents {
		out[i] = &agentResolver{agent: agents[i]}
	}
	return out
}

func (r *agentResolver) ID() graphql.ID      { return graphql.ID(r.agent.ID) }
func (r *agentResolver) Name() string        { return r.agent.Name }
func (r *agentResolver) Description() string { return r.agent.Description }
func (r *agentResolver) Category() string    { return r.agent.Category }
func (r *agentResolver) IsVerified() bool    { return r.agent.IsVerified }
func (r *agentResolver) IsActive() bool      { return r.agent.IsActive }
func (r *agentResolver) CreatedAt() string   { return r.agent.CreatedAt.UTC().Format(time.RFC3339) }
func (r *agentResolver) UpdatedAt() string   { return r.agent.UpdatedAt.UTC().Format(time.RFC3339) }
