package store

import (
	"context"
	"fmt"
)

// Open returns the Postgres store when databaseURL is set, running pending
// migrations first. Otherwise it opens SQLite at sqlitePath.
func Open(ctx context.Context, databaseURL, sqlitePath string) (DataStore, error) {
	if databaseURL == "" {
		s, err := NewSQLiteStore(ctx, sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	}

	if err := RunMigrations(databaseURL); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s, err := NewPostgresStore(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return s, nil
}
