package driving

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// Scheduler runs collections unattended.
type Scheduler interface {
	// Start runs scheduled collections.
	// Blocks until context is cancelled.
	Start(ctx context.Context) error
}

// SchedulerFactory builds a Scheduler for a cron expression.
// onResult is called after every run and may be nil.
type SchedulerFactory func(spec string, collector Collector, onResult func(domain.RunResult)) (Scheduler, error)
