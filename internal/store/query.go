package store

import (
	"strconv"
	"strings"
)

const agentColumns = `id, name, description, category, is_verified, is_active, created_at, updated_at`

// dialect captures the SQL differences between the Postgres and SQLite stores.
type dialect struct {
	placeholder func(n int) string
	// noLimit is the LIMIT value used when only an offset is requested.
	noLimit string
}

var (
	postgresDialect = dialect{
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		noLimit:     "ALL",
	}
	sqliteDialect = dialect{
		placeholder: func(int) string { return "?" },
		noLimit:     "-1",
	}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listAgentsQuery builds the SELECT for ListAgents along with its arguments.
func (d dialect) listAgentsQuery(f AgentFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return d.placeholder(len(args))
	}

	if f.Category != "" {
		where = append(where, "category = "+next(f.Category))
	}
	if f.NameContains != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.NameContains)) + "%"
		where = append(where, "LOWER(name) LIKE "+next(pattern)+` ESCAPE '\'`)
	}
	if f.IsVerified != nil {
		where = append(where, "is_verified = "+next(*f.IsVerified))
	}
	if f.IsActive != nil {
		where = append(where, "is_active = "+next(*f.IsActive))
	}

	var b strings.Builder
	b.WriteString("SELECT " + agentColumns + " FROM agents")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at, id")

	limit, offset := f.limit(), f.offset()
	switch {
	case limit > 0:
		b.WriteString(" LIMIT " + next(limit))
	case offset > 0:
		b.WriteString(" LIMIT " + d.noLimit)
	}
	if offset > 0 {
		b.WriteString(" OFFSET " + next(offset))
	}
	return b.String(), args
}
