package domain

import (
	"sort"
	"time"
)

// Snapshot is the persisted, point-in-time result set of a run.
type Snapshot struct {
	GeneratedAt  time.Time
	Repositories []RepositoryRecord
}

// NewSnapshot sorts a copy of records and stamps it with generatedAt.
func NewSnapshot(records []RepositoryRecord, generatedAt time.Time) Snapshot {
	return Snapshot{
		GeneratedAt:  generatedAt.UTC(),
		Repositories: SortRecords(records),
	}
}

// SortRecords returns a copy ordered by stars descending, ties broken by
// identity ascending.
func SortRecords(records []RepositoryRecord) []RepositoryRecord {
	sorted := make([]RepositoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stars != sorted[j].Stars {
			return sorted[i].Stars > sorted[j].Stars
		}
		return sorted[i].Identity < sorted[j].Identity
	})
	return sorted
}
