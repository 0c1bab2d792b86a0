package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dutchiono/headless-markets/internal/models"
)

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateAgent inserts a new agent record, generating an ID when none is set.
func (s *PostgresStore) CreateAgent(ctx context.Context, agent models.Agent) (*models.Agent, error) {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO agents (id, name, description, category, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+agentColumns,
		agent.ID, agent.Name, agent.Description, agent.Category, agent.IsVerified, agent.IsActive,
	)
	created, err := scanAgent(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAgentExists
		}
		return nil, err
	}
	return created, nil
}

// GetAgent retrieves an agent by ID.
func (s *PostgresStore) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	agent, err := scanAgent(s.pool.QueryRow(ctx, `
		SELECT `+agentColumns+` FROM agents WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return agent, nil
}

// ListAgents retrieves agents matching the filter, oldest first.
func (s *PostgresStore) ListAgents(ctx context.Context, filter AgentFilter) ([]models.Agent, error) {
	query, args := postgresDialect.listAgentsQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := []models.Agent{}
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	return agents, rows.Err()
}

// SetAgentFlags updates the verification and availability flags of an agent.
func (s *PostgresStore) SetAgentFlags(ctx context.Context, id string, verified, active bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE agents
		SET is_verified = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
	`, id, verified, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAgentNotFound
	}
	return nil
}

// CountAgents returns the total number of stored agents.
func (s *PostgresStore) CountAgents(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&count)
	return count, err
}

func scanAgent(row pgx.Row) (*models.Agent, error) {
	agent := &models.Agent{}
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Description,
		&agent.Category,
		&agent.IsVerified,
		&agent.IsActive,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return agent, nil
}
