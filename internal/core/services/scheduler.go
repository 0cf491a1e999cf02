package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyKeep is how many runs the scheduler retains in history.
const historyKeep = 100

// Scheduler runs collections on a cron schedule.
// Runs never overlap: a tick that fires while a run is active is skipped.
type Scheduler struct {
	spec      string
	schedule  cron.Schedule
	collector driving.Collector
	runs      driven.RunStore
	onResult  func(domain.RunResult)

	mu      sync.Mutex
	running bool
}

// NewScheduler validates spec (standard five-field cron or a descriptor
// such as "@daily") and creates a scheduler. runs and onResult are optional.
func NewScheduler(
	spec string,
	collector driving.Collector,
	runs driven.RunStore,
	onResult func(domain.RunResult),
) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: cron %q: %v", domain.ErrInvalidInput, spec, err)
	}
	return &Scheduler{
		spec:      spec,
		schedule:  schedule,
		collector: collector,
		runs:      runs,
		onResult:  onResult,
	}, nil
}

// Start blocks until ctx is done, running the collector on every tick.
// Failed runs are logged and do not stop the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(logger.Printer())),
	))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.RunOnce(ctx)
	}))

	logger.Info("Scheduler started (%s)", s.spec)
	c.Start()

	<-ctx.Done()

	// Wait for an in-flight run to finish.
	<-c.Stop().Done()
	logger.Info("Scheduler stopped")
	return nil
}

// RunOnce performs a single collection and prunes history.
func (s *Scheduler) RunOnce(ctx context.Context) domain.RunResult {
	result := s.collector.Run(ctx)
	if result.Succeeded() {
		logger.Info("Scheduled run %s saved %d repositories", result.ID, result.Count)
	} else {
		logger.Error("Scheduled run %s failed: %v", result.ID, result.Err)
	}

	if s.runs != nil {
		if err := s.runs.Prune(context.WithoutCancel(ctx), historyKeep); err != nil {
			logger.Warn("Failed to prune run history: %v", err)
		}
	}

	if s.onResult != nil {
		s.onResult(result)
	}
	return result
}

// Running reports whether Start is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
