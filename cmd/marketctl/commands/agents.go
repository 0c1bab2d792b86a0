package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/config"
	"github.com/dutchiono/headless-markets/internal/models"
)

var listCategory string

// AgentsCmd groups agent inspection commands.
var AgentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Inspect catalog agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents as the shop shows them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := newLogger(cfg)
		ctx := cmd.Context()

		db, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		return listAgents(ctx, cmd.OutOrStdout(), catalog.NewShop(db, logger), listCategory)
	},
}

func init() {
	agentsListCmd.Flags().StringVar(&listCategory, "category", "", "Only agents in this category")
	AgentsCmd.AddCommand(agentsListCmd)
}

func listAgents(ctx context.Context, out io.Writer, shop *catalog.Shop, category string) error {
	var agents []models.Agent
	if category != "" {
		res, err := shop.AgentsByCategory(ctx, category)
		if err != nil {
			return err
		}
		agents = res
	} else {
		res, err := shop.ActiveAgents(ctx, nil)
		if err != nil {
			return err
		}
		agents = res.Items
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tACTIVE")
	for _, a := range agents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", a.ID, a.Name, a.Category, a.IsActive)
	}
	fmt.Fprintf(tw, "\n%d agents\n", len(agents))
	return tw.Flush()
}
