package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListAgentsQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  dialect
		filter   AgentFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			dialect: postgresDialect,
			wantSQL: "SELECT " + agentColumns + " FROM agents ORDER BY created_at, id",
		},
		{
			name:     "postgres shop category",
			dialect:  postgresDialect,
			filter:   AgentFilter{Category: "defi", IsVerified: Bool(true)},
			wantSQL:  "SELECT " + agentColumns + " FROM agents WHERE category = $1 AND is_verified = $2 ORDER BY created_at, id",
			wantArgs: []any{"defi", true},
		},
		{
			name:     "postgres offset only",
			dialect:  postgresDialect,
			filter:   AgentFilter{Skip: 4},
			wantSQL:  "SELECT " + agentColumns + " FROM agents ORDER BY created_at, id LIMIT ALL OFFSET $1",
			wantArgs: []any{4},
		},
		{
			name:     "sqlite paged search",
			dialect:  sqliteDialect,
			filter:   AgentFilter{NameContains: "50%_Bot", IsActive: Bool(false), Skip: 2, Take: 500},
			wantSQL:  "SELECT " + agentColumns + ` FROM agents WHERE LOWER(name) LIKE ? ESCAPE '\' AND is_active = ? ORDER BY created_at, id LIMIT ? OFFSET ?`,
			wantArgs: []any{`%50\%\_bot%`, false, MaxTake, 2},
		},
		{
			name:     "sqlite offset only",
			dialect:  sqliteDialect,
			filter:   AgentFilter{Skip: 1},
			wantSQL:  "SELECT " + agentColumns + " FROM agents ORDER BY created_at, id LIMIT -1 OFFSET ?",
			wantArgs: []any{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.dialect.listAgentsQuery(tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
