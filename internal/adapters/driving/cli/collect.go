package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
)

var (
	collectQueries  []string
	collectMaxItems int
	collectOutput   string
)

// isTerminal reports whether w is a terminal, so progress can be redrawn
// in place.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search GitHub and write a fresh snapshot",
	Long: `Runs every configured search query in order, deduplicates repositories
across queries, stops at the item cap and writes a star-sorted snapshot.
An empty result leaves any existing snapshot untouched and exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringArrayVar(&collectQueries, "query", nil, "search query (repeatable, replaces configured queries)")
	collectCmd.Flags().IntVarP(&collectMaxItems, "max-items", "n", 0, "maximum repositories to collect")
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "snapshot output path")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Collectors == nil {
		return fmt.Errorf("collector not configured")
	}

	cfg, err := collectorConfig(svc, true)
	if err != nil {
		return err
	}
	if err := applyCollectFlags(cmd, &cfg); err != nil {
		return err
	}

	// cmd.Printf writes to OutOrStderr, so that is the stream to check.
	var progress driving.ProgressFunc
	if isTerminal(cmd.OutOrStderr()) {
		progress = func(collected, capacity int) {
			cmd.Printf("\rCollected %d/%d", collected, capacity)
		}
	}

	collector, err := svc.Collectors(cfg, progress)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := collector.Run(ctx)
	if progress != nil {
		cmd.Println()
	}
	return reportResult(cmd, cfg, result)
}

// applyCollectFlags overrides configuration with explicitly set flags.
func applyCollectFlags(cmd *cobra.Command, cfg *domain.CollectorConfig) error {
	if cmd.Flags().Changed("query") {
		cfg.Queries = collectQueries
	}
	if cmd.Flags().Changed("max-items") {
		cfg.MaxItems = collectMaxItems
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = collectOutput
	}
	return cfg.Validate()
}

func reportResult(cmd *cobra.Command, cfg domain.CollectorConfig, result domain.RunResult) error {
	elapsed := result.EndedAt.Sub(result.StartedAt).Round(time.Millisecond)
	stats := result.Stats

	if !result.Succeeded() {
		cmd.Printf("Collection failed after %s (%d queries, %d pages).\n",
			elapsed, stats.QueriesIssued, stats.PagesFetched)
		return fmt.Errorf("collection failed: %w", result.Err)
	}

	cmd.Printf("Saved %d repositories to %s\n", result.Count, cfg.OutputPath)
	cmd.Printf("  queries: %d  pages: %d  duplicates: %d  skipped: %d  waits: %d  time: %s\n",
		stats.QueriesIssued, stats.PagesFetched, stats.Duplicates, stats.Skipped, stats.Waits, elapsed)
	return nil
}
