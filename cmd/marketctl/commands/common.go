// Package commands implements the marketctl subcommands.
package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/config"
	"github.com/dutchiono/headless-markets/internal/store"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Logger()
}

// openStore opens the store named by the environment and wraps it with the
// Redis cache when REDIS_URL is set, so writes invalidate cached lookups.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.DataStore, func(), error) {
	db, err := store.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisURL == "" {
		return db, db.Close, nil
	}

	cache, err := store.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	closeAll := func() {
		cache.Close()
		db.Close()
	}
	return store.NewCachedStore(db, cache, logger), closeAll, nil
}
