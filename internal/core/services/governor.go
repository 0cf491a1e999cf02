package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// RateGovernor blocks callers until the search quota is safe to consume.
type RateGovernor struct {
	probe    driven.QuotaProbe
	clock    driven.Clock
	floor    int
	margin   time.Duration
	maxWaits int

	last domain.Quota
}

// NewRateGovernor creates a governor that waits whenever the remaining
// quota is at or below floor. At most maxWaits waits are performed per call.
func NewRateGovernor(probe driven.QuotaProbe, clock driven.Clock, floor int, margin time.Duration, maxWaits int) *RateGovernor {
	return &RateGovernor{
		probe:    probe,
		clock:    clock,
		floor:    floor,
		margin:   margin,
		maxWaits: maxWaits,
	}
}

// EnsureCapacity returns once the quota is above the floor.
// Probe failures and a quota that never recovers surface as *domain.RateCheckError.
func (g *RateGovernor) EnsureCapacity(ctx context.Context) (domain.CapacityOutcome, error) {
	outcome := domain.CapacityReady

	for waits := 0; ; waits++ {
		quota, err := g.probe.CheckQuota(ctx)
		if err != nil {
			return outcome, &domain.RateCheckError{Err: err}
		}
		g.last = quota
		logger.Debug("Search quota: %d/%d remaining, resets %s",
			quota.Remaining, quota.Limit, quota.ResetAt.Format(time.RFC3339))

		if quota.Remaining > g.floor {
			return outcome, nil
		}

		if waits >= g.maxWaits {
			return outcome, &domain.RateCheckError{
				Err: fmt.Errorf("%w after %d waits (%d remaining)", domain.ErrQuotaExhausted, waits, quota.Remaining),
			}
		}

		wait := quota.ResetAt.Sub(g.clock.Now())
		if wait < 0 {
			wait = 0
		}
		wait += g.margin

		logger.Warn("Search quota low (%d remaining). Waiting %s for reset", quota.Remaining, wait.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return outcome, &domain.RateCheckError{Err: ctx.Err()}
		case <-g.clock.After(wait):
		}
		outcome = domain.CapacityWaitedThenReady
	}
}

// LastQuota returns the most recently observed quota.
func (g *RateGovernor) LastQuota() domain.Quota {
	return g.last
}
