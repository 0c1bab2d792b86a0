package store

import (
	"context"

	"github.com/dutchiono/headless-markets/internal/models"
)

// MaxTake caps the page size of a single listing.
const MaxTake = 100

// AgentFilter selects agents from a DataStore. Nil flag pointers match any value.
type AgentFilter struct {
	Category     string
	NameContains string
	IsVerified   *bool
	IsActive     *bool
	Skip         int
	Take         int // <= 0 means no limit
}

// Bool returns a pointer to b, for building filters.
func Bool(b bool) *bool {
	return &b
}

// limit returns the effective page size, 0 meaning unbounded.
func (f AgentFilter) limit() int {
	if f.Take <= 0 {
		return 0
	}
	if f.Take > MaxTake {
		return MaxTake
	}
	return f.Take
}

func (f AgentFilter) offset() int {
	if f.Skip < 0 {
		return 0
	}
	return f.Skip
}

// DataStore defines the interface for persistent storage of agents.
// PostgresStore, SQLiteStore and MemoryStore implement this interface.
type DataStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Agent operations
	CreateAgent(ctx context.Context, agent models.Agent) (*models.Agent, error)
	GetAgent(ctx context.Context, id string) (*models.Agent, error)
	ListAgents(ctx context.Context, filter AgentFilter) ([]models.Agent, error)
	SetAgentFlags(ctx context.Context, id string, verified, active bool) error
	CountAgents(ctx context.Context) (int64, error)
}
