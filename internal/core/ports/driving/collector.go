package driving

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// Collector runs one collection end to end.
type Collector interface {
	// Run collects, deduplicates and persists a snapshot.
	// Every failure is reported through the result, never as a panic.
	Run(ctx context.Context) domain.RunResult
}

// ProgressFunc is called after each record is added to a run.
type ProgressFunc func(collected, capacity int)

// CollectorFactory builds a Collector for a validated configuration.
// progress may be nil.
type CollectorFactory func(cfg domain.CollectorConfig, progress ProgressFunc) (Collector, error)

// QuotaService reports the current search quota.
type QuotaService interface {
	CheckQuota(ctx context.Context) (domain.Quota, error)
}

// QuotaFactory builds a QuotaService for a configuration.
type QuotaFactory func(cfg domain.CollectorConfig) (QuotaService, error)
