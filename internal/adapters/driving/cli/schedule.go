package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/logger"
)

var scheduleCron string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Collect on a cron schedule until interrupted",
	Long: `Runs a collection on every tick of a cron expression (standard five
fields or a descriptor such as @daily or "@every 6h"). A tick that fires
while a run is still active is skipped. Failed runs are logged and recorded
in history; the scheduler keeps going.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := requireServices()
		if err != nil {
			return err
		}
		if svc.Collectors == nil || svc.Schedulers == nil {
			return fmt.Errorf("scheduler not configured")
		}

		cfg, err := collectorConfig(svc, true)
		if err != nil {
			return err
		}
		spec := svc.Settings.CronSpec()
		if cmd.Flags().Changed("cron") {
			spec = scheduleCron
		}

		collector, err := svc.Collectors(cfg, nil)
		if err != nil {
			return err
		}
		scheduler, err := svc.Schedulers(spec, collector, func(result domain.RunResult) {
			if result.Succeeded() {
				cmd.Printf("Saved %d repositories to %s\n", result.Count, cfg.OutputPath)
			} else {
				cmd.Printf("Run failed: %v\n", result.Err)
			}
		})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger.SetTimestamps(true)
		cmd.Printf("Collecting on schedule %q. Press Ctrl+C to stop.\n", spec)
		return scheduler.Start(ctx)
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron expression (default: scheduler.cron setting)")
	rootCmd.AddCommand(scheduleCmd)
}
