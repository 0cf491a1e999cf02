package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// Ensure CollectionOrchestrator implements the interface.
var _ driving.Collector = (*CollectionOrchestrator)(nil)

// CollectionOrchestrator owns the lifecycle of a collection run:
// Idle -> Collecting -> {Saving -> Done} | Aborted.
type CollectionOrchestrator struct {
	queries    domain.QuerySpec
	maxItems   int
	aggregator *QueryAggregator
	writer     *SnapshotWriter
	runs       driven.RunStore
	clock      driven.Clock

	state   domain.RunState
	history []domain.RunState
}

// NewCollectionOrchestrator wires a run from a validated configuration.
// runs is optional; without it no history is recorded.
func NewCollectionOrchestrator(
	cfg domain.CollectorConfig,
	search driven.SearchService,
	snapshots driven.SnapshotStore,
	runs driven.RunStore,
	clock driven.Clock,
	progress driving.ProgressFunc,
) (*CollectionOrchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if search == nil || snapshots == nil || clock == nil {
		return nil, fmt.Errorf("%w: search, snapshot store and clock are required", domain.ErrInvalidInput)
	}

	queries, err := domain.NewQuerySpec(cfg.Queries)
	if err != nil {
		return nil, err
	}

	governor := NewRateGovernor(search, clock, cfg.RateFloor, cfg.WaitMargin, cfg.MaxWaits)

	return &CollectionOrchestrator{
		queries:    queries,
		maxItems:   cfg.MaxItems,
		aggregator: NewQueryAggregator(search, governor, cfg.MarkerFile, cfg.PerPage, cfg.MaxPages, progress),
		writer:     NewSnapshotWriter(snapshots, clock),
		runs:       runs,
		clock:      clock,
		state:      domain.RunStateIdle,
	}, nil
}

// Run performs one collection. It always returns a result; any abort is
// reported as a Failure carrying the cause.
func (o *CollectionOrchestrator) Run(ctx context.Context) domain.RunResult {
	result := domain.RunResult{
		ID:        uuid.NewString(),
		StartedAt: o.clock.Now(),
	}
	o.history = nil

	run := domain.NewCollectionRun(o.maxItems)
	o.transition(domain.RunStateCollecting)
	logger.Info("Collecting up to %d repositories with %d queries", o.maxItems, len(o.queries))

	err := o.aggregator.Collect(ctx, o.queries, run)
	result.Stats = run.Stats
	if err != nil {
		return o.finish(ctx, result, fmt.Errorf("collect: %w", err))
	}

	o.transition(domain.RunStateSaving)
	snapshot, err := o.writer.Write(ctx, run.Records)
	if err != nil {
		return o.finish(ctx, result, err)
	}

	result.Outcome = domain.RunSuccess
	result.Count = len(snapshot.Repositories)
	logger.Info("Saved %d repositories (%d duplicates, %d skipped)",
		result.Count, run.Stats.Duplicates, run.Stats.Skipped)
	return o.finish(ctx, result, nil)
}

// State returns the current lifecycle state.
func (o *CollectionOrchestrator) State() domain.RunState {
	return o.state
}

// Transitions returns the states entered during the last run, in order.
func (o *CollectionOrchestrator) Transitions() []domain.RunState {
	return append([]domain.RunState(nil), o.history...)
}

func (o *CollectionOrchestrator) finish(ctx context.Context, result domain.RunResult, err error) domain.RunResult {
	if err != nil {
		result.Outcome = domain.RunFailure
		result.Err = err
		o.transition(domain.RunStateAborted)
		logger.Error("Collection aborted: %v", err)
	} else {
		o.transition(domain.RunStateDone)
	}
	result.EndedAt = o.clock.Now()

	if o.runs != nil {
		// History is best effort and never changes the outcome.
		if recErr := o.runs.Record(context.WithoutCancel(ctx), domain.NewRunRecord(result)); recErr != nil {
			logger.Warn("Failed to record run %s: %v", result.ID, recErr)
		}
	}
	return result
}

func (o *CollectionOrchestrator) transition(state domain.RunState) {
	logger.Debug("Run state: %s -> %s", o.state, state)
	o.state = state
	o.history = append(o.history, state)
}
