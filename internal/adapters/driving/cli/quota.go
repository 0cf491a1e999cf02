package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show the remaining GitHub search quota",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := requireServices()
		if err != nil {
			return err
		}
		if svc.Quotas == nil {
			return fmt.Errorf("quota service not configured")
		}

		cfg, err := collectorConfig(svc, true)
		if err != nil {
			return err
		}
		quotas, err := svc.Quotas(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		quota, err := quotas.CheckQuota(ctx)
		if err != nil {
			return fmt.Errorf("failed to check quota: %w", err)
		}

		cmd.Printf("Search quota: %d/%d remaining\n", quota.Remaining, quota.Limit)
		if !quota.ResetAt.IsZero() {
			cmd.Printf("Resets at:    %s\n", quota.ResetAt.Local().Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}
