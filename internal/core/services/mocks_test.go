package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// fakeClock is a clock.Mock that advances by the requested duration as
// soon as a wait starts. Governor waits then complete on the calling
// goroutine, and the mock's time still moves exactly as a real wait would.
type fakeClock struct {
	*clock.Mock

	mu     sync.Mutex
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	mock := clock.NewMock()
	mock.Set(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	return &fakeClock{Mock: mock}
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()

	ch := c.Mock.After(d)
	c.Mock.Add(d)
	return ch
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type searchCall struct {
	Request domain.SearchRequest
	At      time.Time
}

// fakeSearch serves scripted pages per query and a scripted quota sequence.
type fakeSearch struct {
	clock     driven.Clock
	pages     map[string][]domain.SearchPage
	quotas    []domain.Quota
	quotaErr  error
	searchErr map[string]error

	quotaCalls int
	calls      []searchCall
}

func newFakeSearch(clock driven.Clock) *fakeSearch {
	return &fakeSearch{
		clock:     clock,
		pages:     make(map[string][]domain.SearchPage),
		searchErr: make(map[string]error),
	}
}

func (f *fakeSearch) CheckQuota(context.Context) (domain.Quota, error) {
	f.quotaCalls++
	if f.quotaErr != nil {
		return domain.Quota{}, f.quotaErr
	}
	if len(f.quotas) == 0 {
		return domain.Quota{Remaining: 30, Limit: 30, ResetAt: f.clock.Now().Add(time.Minute)}, nil
	}
	q := f.quotas[0]
	if len(f.quotas) > 1 {
		f.quotas = f.quotas[1:]
	}
	return q, nil
}

func (f *fakeSearch) SearchPage(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	f.calls = append(f.calls, searchCall{Request: req, At: f.clock.Now()})
	if err := f.searchErr[req.Query]; err != nil {
		return nil, err
	}
	pages := f.pages[req.Query]
	if req.Page < 1 || req.Page > len(pages) {
		return &domain.SearchPage{}, nil
	}
	page := pages[req.Page-1]
	return &page, nil
}

// script sets the pages for query, chaining NextPage between them.
func (f *fakeSearch) script(query string, pages ...[]domain.SearchHit) {
	out := make([]domain.SearchPage, len(pages))
	for i, hits := range pages {
		out[i] = domain.SearchPage{Hits: hits, Total: len(hits)}
		if i+1 < len(pages) {
			out[i].NextPage = i + 2
		}
	}
	f.pages[query] = out
}

func (f *fakeSearch) queriesIssued() []string {
	var out []string
	for _, c := range f.calls {
		if len(out) == 0 || out[len(out)-1] != c.Request.Query {
			out = append(out, c.Request.Query)
		}
	}
	return out
}

func hit(name string, stars int) domain.SearchHit {
	return domain.SearchHit{
		FullName: name,
		HTMLURL:  "https://github.com/" + name,
		Stars:    stars,
	}
}

func identities(records []domain.RepositoryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Identity
	}
	return out
}

// failingSnapshotStore rejects every write.
type failingSnapshotStore struct {
	err error
}

func (s *failingSnapshotStore) Write(context.Context, domain.Snapshot) error { return s.err }
func (s *failingSnapshotStore) Read(context.Context) (*domain.Snapshot, error) {
	return nil, domain.ErrNotFound
}
func (s *failingSnapshotStore) Path() string { return "/data/snapshot.json" }

// failingRunStore rejects every history write.
type failingRunStore struct{}

func (failingRunStore) Record(context.Context, domain.RunRecord) error { return errors.New("disk full") }
func (failingRunStore) Recent(context.Context, int) ([]domain.RunRecord, error) {
	return nil, errors.New("disk full")
}
func (failingRunStore) Prune(context.Context, int) error { return errors.New("disk full") }
