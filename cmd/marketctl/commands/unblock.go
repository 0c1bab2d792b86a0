package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dutchiono/headless-markets/internal/api/middleware"
	"github.com/dutchiono/headless-markets/internal/config"
	"github.com/dutchiono/headless-markets/internal/store"
)

// UnblockCmd lifts an auto-block placed by the rate limiter.
var UnblockCmd = &cobra.Command{
	Use:   "unblock <ip>",
	Short: "Remove a temporary IP block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.RedisURL == "" {
			return errors.New("REDIS_URL is not set")
		}
		ctx := cmd.Context()

		rs, err := store.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer rs.Close()

		blocker := middleware.NewIPBlocker(rs.Client())
		ip := args[0]
		if !blocker.IsBlocked(ctx, ip) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not blocked\n", ip)
			return nil
		}
		blocker.Unblock(ctx, ip)
		fmt.Fprintf(cmd.OutOrStdout(), "unblocked %s\n", ip)
		return nil
	},
}
