package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dutchiono/headless-markets/cmd/marketctl/commands"
)

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Headless Markets catalog CLI",
	Long:  `Command line interface for seeding and inspecting the Headless Markets agent catalog.`,
}

func init() {
	rootCmd.AddCommand(commands.SeedCmd)
	rootCmd.AddCommand(commands.AgentsCmd)
	rootCmd.AddCommand(commands.UnblockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
