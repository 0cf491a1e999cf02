package services

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// CapacityGate is consulted before every search request.
// *RateGovernor implements it.
type CapacityGate interface {
	EnsureCapacity(ctx context.Context) (domain.CapacityOutcome, error)
	LastQuota() domain.Quota
}

// QueryAggregator walks each query's result pages and accumulates
// deduplicated records into a run until its cap is met.
type QueryAggregator struct {
	search     driven.SearchService
	gate       CapacityGate
	markerFile string
	perPage    int
	maxPages   int
	progress   driving.ProgressFunc
	normalize  func(domain.SearchHit, string) (domain.RepositoryRecord, error)
}

// NewQueryAggregator creates an aggregator. progress may be nil.
func NewQueryAggregator(
	search driven.SearchService,
	gate CapacityGate,
	markerFile string,
	perPage, maxPages int,
	progress driving.ProgressFunc,
) *QueryAggregator {
	return &QueryAggregator{
		search:     search,
		gate:       gate,
		markerFile: markerFile,
		perPage:    perPage,
		maxPages:   maxPages,
		progress:   progress,
		normalize:  domain.NormalizeHit,
	}
}

// Collect issues queries strictly in order. Once the run is full, paging
// stops and later queries are skipped. Rate check and query failures abort
// the whole collection; bad hits are skipped.
func (a *QueryAggregator) Collect(ctx context.Context, queries domain.QuerySpec, run *domain.CollectionRun) error {
	for i, query := range queries {
		if run.Full() {
			logger.Info("Item cap %d reached, skipping %d remaining queries", run.Cap, len(queries)-i)
			return nil
		}

		logger.Section("Query " + query)
		run.Stats.QueriesIssued++
		if err := a.collectQuery(ctx, query, run); err != nil {
			return err
		}
	}
	return nil
}

func (a *QueryAggregator) collectQuery(ctx context.Context, query string, run *domain.CollectionRun) error {
	page := 1
	for fetched := 0; fetched < a.maxPages; fetched++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		outcome, err := a.gate.EnsureCapacity(ctx)
		run.Quota = a.gate.LastQuota()
		if err != nil {
			return err
		}
		if outcome == domain.CapacityWaitedThenReady {
			run.Stats.Waits++
		}

		result, err := a.search.SearchPage(ctx, domain.SearchRequest{
			Query:   query,
			Order:   domain.PopularityOrder,
			Page:    page,
			PerPage: a.perPage,
		})
		if err != nil {
			return &domain.QueryExecutionError{Query: query, Page: page, Err: err}
		}
		run.Stats.PagesFetched++
		logger.Debug("Page %d: %d hits (%d reported)", page, len(result.Hits), result.Total)

		if err := a.accumulate(result.Hits, run); err != nil {
			return &domain.QueryExecutionError{Query: query, Page: page, Err: err}
		}

		if run.Full() || len(result.Hits) == 0 || result.NextPage == 0 {
			return nil
		}
		page = result.NextPage
	}

	logger.Debug("Stopped %q after %d pages", query, a.maxPages)
	return nil
}

// accumulate adds hits to run. Hits that fail normalization are skipped;
// any other error aborts.
func (a *QueryAggregator) accumulate(hits []domain.SearchHit, run *domain.CollectionRun) error {
	for _, hit := range hits {
		if run.Full() {
			return nil
		}
		if run.Seen(hit.FullName) {
			run.Stats.Duplicates++
			logger.Debug("Duplicate: %s", hit.FullName)
			continue
		}

		rec, err := a.normalize(hit, a.markerFile)
		if err != nil {
			if !domain.IsRecoverable(err) {
				return err
			}
			run.Stats.Skipped++
			logger.Warn("Skipping hit: %v", err)
			continue
		}

		if run.Add(rec) && a.progress != nil {
			a.progress(len(run.Records), run.Cap)
		}
	}
	return nil
}
