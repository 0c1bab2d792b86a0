package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dutchiono/headless-markets/internal/config"
	"github.com/dutchiono/headless-markets/internal/models"
	"github.com/dutchiono/headless-markets/internal/store"
)

var seedFile string

// SeedCmd loads agents from a YAML file into the store.
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog from a YAML file",
	Long: `Seed the catalog from a YAML file.

Agents that already exist keep their record and have their verified and
active flags updated from the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		agents, err := loadAgents(f)
		if err != nil {
			return fmt.Errorf("%s: %w", seedFile, err)
		}

		cfg := config.Load()
		logger := newLogger(cfg)
		ctx := cmd.Context()

		db, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := seedAgents(ctx, db, agents, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d agents (%d created, %d updated)\n",
			res.Created+res.Updated, res.Created, res.Updated)
		return nil
	},
}

func init() {
	SeedCmd.Flags().StringVarP(&seedFile, "file", "f", "agents.yaml", "YAML file with an agents list")
}

type seedFileFormat struct {
	Agents []models.Agent `yaml:"agents"`
}

// loadAgents decodes a seed file. Every agent needs an id so that reseeding
// is idempotent.
func loadAgents(r io.Reader) ([]models.Agent, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc seedFileFormat
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Agents))
	for i, a := range doc.Agents {
		if a.ID == "" {
			return nil, fmt.Errorf("agent %d: missing id", i)
		}
		if a.Name == "" {
			return nil, fmt.Errorf("agent %q: missing name", a.ID)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("agent %q: duplicate id", a.ID)
		}
		seen[a.ID] = true
	}
	return doc.Agents, nil
}

type seedResult struct {
	Created int
	Updated int
}

func seedAgents(ctx context.Context, db store.DataStore, agents []models.Agent, logger zerolog.Logger) (seedResult, error) {
	var res seedResult
	for _, a := range agents {
		_, err := db.CreateAgent(ctx, a)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, store.ErrAgentExists):
			if err := db.SetAgentFlags(ctx, a.ID, a.IsVerified, a.IsActive); err != nil {
				return res, fmt.Errorf("update %s: %w", a.ID, err)
			}
			res.Updated++
		default:
			return res, fmt.Errorf("create %s: %w", a.ID, err)
		}
		logger.Debug().
			Str("agent_id", a.ID).
			Bool("verified", a.IsVerified).
			Bool("active", a.IsActive).
			Msg("seeded agent")
	}
	return res, nil
}
