package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Manage the configured search queries",
}

var queriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the search queries in run order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := requireServices()
		if err != nil {
			return err
		}
		cfg, err := collectorConfig(svc, false)
		if err != nil {
			return err
		}
		for i, q := range cfg.Queries {
			cmd.Printf("%d. %s\n", i+1, q)
		}
		return nil
	},
}

var queriesSetCmd = &cobra.Command{
	Use:   "set <query>...",
	Short: "Replace the search queries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := requireServices()
		if err != nil {
			return err
		}
		if svc.Settings == nil {
			return fmt.Errorf("settings service not configured")
		}
		if err := svc.Settings.SetQueries(args); err != nil {
			return fmt.Errorf("failed to save queries: %w", err)
		}
		cmd.Printf("Saved %d queries.\n", len(args))
		return nil
	},
}

func init() {
	queriesCmd.AddCommand(queriesListCmd)
	queriesCmd.AddCommand(queriesSetCmd)
	rootCmd.AddCommand(queriesCmd)
}
