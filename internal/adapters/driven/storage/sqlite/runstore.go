package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Record inserts a run, replacing any earlier row with the same ID.
func (s *runStore) Record(ctx context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO collection_runs (id, started_at, ended_at, success, error, records, queries_issued, waits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			success = excluded.success,
			error = excluded.error,
			records = excluded.records,
			queries_issued = excluded.queries_issued,
			waits = excluded.waits
	`, run.ID, run.StartedAt.UnixNano(), nullableUnixNano(run.EndedAt),
		boolToInt(run.Success), nullString(run.Error),
		run.Records, run.QueriesIssued, run.Waits)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first.
// A negative limit returns every run.
func (s *runStore) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, success, error, records, queries_issued, waits
		FROM collection_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// Prune keeps only the keep most recent runs.
func (s *runStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return nil
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM collection_runs
		WHERE id NOT IN (
			SELECT id FROM collection_runs
			ORDER BY started_at DESC, id DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

func scanRun(rows *sql.Rows) (domain.RunRecord, error) {
	var run domain.RunRecord
	var startedAt int64
	var endedAt sql.NullInt64
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&run.ID, &startedAt, &endedAt, &success, &errMsg,
		&run.Records, &run.QueriesIssued, &run.Waits); err != nil {
		return run, fmt.Errorf("scanning run: %w", err)
	}

	run.StartedAt = time.Unix(0, startedAt).UTC()
	if endedAt.Valid {
		run.EndedAt = time.Unix(0, endedAt.Int64).UTC()
	}
	run.Success = success == 1
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return run, nil
}

// nullableUnixNano returns nil for zero time.
func nullableUnixNano(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UnixNano()
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
