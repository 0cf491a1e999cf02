package domain

import "time"

// RunState is a collection run's lifecycle position.
type RunState string

const (
	RunStateIdle       RunState = "idle"
	RunStateCollecting RunState = "collecting"
	RunStateSaving     RunState = "saving"
	RunStateDone       RunState = "done"
	RunStateAborted    RunState = "aborted"
)

// CapacityOutcome reports how the rate governor cleared a request.
type CapacityOutcome int

const (
	// CapacityReady means quota was available immediately.
	CapacityReady CapacityOutcome = iota

	// CapacityWaitedThenReady means the governor slept for a reset first.
	CapacityWaitedThenReady
)

func (o CapacityOutcome) String() string {
	if o == CapacityWaitedThenReady {
		return "waited-then-ready"
	}
	return "ready"
}

// CollectionRun is the transient state of one execution.
type CollectionRun struct {
	// Cap is the maximum number of records to collect.
	Cap int

	// Quota is the last observed quota.
	Quota Quota

	// Records are the deduplicated records in discovery order.
	Records []RepositoryRecord

	// Stats counts work done during the run.
	Stats RunStats

	seen map[string]struct{}
}

// RunStats counts the work performed by a run.
type RunStats struct {
	QueriesIssued int
	PagesFetched  int
	Duplicates    int
	Skipped       int
	Waits         int
}

// NewCollectionRun creates an empty run bounded by capacity.
func NewCollectionRun(capacity int) *CollectionRun {
	return &CollectionRun{
		Cap:  capacity,
		seen: make(map[string]struct{}),
	}
}

// Full reports whether the cap has been reached.
func (r *CollectionRun) Full() bool {
	return len(r.Records) >= r.Cap
}

// Seen reports whether identity has already been collected.
func (r *CollectionRun) Seen(identity string) bool {
	_, ok := r.seen[IdentityKey(identity)]
	return ok
}

// Add appends rec unless its identity was already collected or the cap is
// met. It reports whether the record was added.
func (r *CollectionRun) Add(rec RepositoryRecord) bool {
	if r.Full() {
		return false
	}
	key := IdentityKey(rec.Identity)
	if _, ok := r.seen[key]; ok {
		r.Stats.Duplicates++
		return false
	}
	r.seen[key] = struct{}{}
	r.Records = append(r.Records, rec)
	return true
}

// RunOutcome distinguishes success from failure.
type RunOutcome int

const (
	RunFailure RunOutcome = iota
	RunSuccess
)

// RunResult is the explicit outcome of a collection run.
type RunResult struct {
	ID        string
	Outcome   RunOutcome
	Count     int
	Err       error
	StartedAt time.Time
	EndedAt   time.Time
	Stats     RunStats
}

// Succeeded reports whether the run persisted a snapshot.
func (r RunResult) Succeeded() bool {
	return r.Outcome == RunSuccess
}

// RunRecord is the persisted history entry for a run.
type RunRecord struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	Success       bool
	Error         string
	Records       int
	QueriesIssued int
	Waits         int
}

// NewRunRecord converts a result into a history entry.
func NewRunRecord(r RunResult) RunRecord {
	rec := RunRecord{
		ID:            r.ID,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		Success:       r.Succeeded(),
		Records:       r.Count,
		QueriesIssued: r.Stats.QueriesIssued,
		Waits:         r.Stats.Waits,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}
