package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent collection runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := requireServices()
		if err != nil {
			return err
		}
		if svc.History == nil {
			return fmt.Errorf("history not configured")
		}

		runs, err := svc.History.Recent(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(runs) == 0 {
			cmd.Println("No runs recorded.")
			return nil
		}

		cmd.Println(titleStyle.Render("Recent runs"))
		for _, run := range runs {
			status := "ok"
			if !run.Success {
				status = "FAILED"
			}
			cmd.Printf("  %s  %-6s  %4d repos  %2d queries  %d waits  %s\n",
				run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				status,
				run.Records,
				run.QueriesIssued,
				run.Waits,
				run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond))
			if run.Error != "" {
				cmd.Printf("      %s\n", mutedStyle.Render(run.Error))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
