// Package feed maintains the observable, paginated list of reports behind
// one screen's query: free-text search, status/category filters and sort
// order, with incremental load-more and full refresh.
package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// DefaultDebounce is the delay applied to free-text query changes before a
// network call is issued.
const DefaultDebounce = 350 * time.Millisecond

// Query is the current combination of search text, filters and sort order.
type Query struct {
	Search   string
	Status   models.Status
	Category models.Category
	Sort     api.SortOrder
}

// searching reports whether the free-text search takes precedence over the
// filter and plain feed calls.
func (q Query) searching() bool {
	return strings.TrimSpace(q.Search) != ""
}

// filtered reports whether a filter-only (first page, no pagination) call
// applies.
func (q Query) filtered() bool {
	return q.Status != "" || q.Category != ""
}

// Synchronizer owns the report list for one query. All exported methods are
// safe for concurrent use. Results that arrive after a newer refresh, or
// after Close, are discarded.
type Synchronizer struct {
	mu sync.Mutex

	client api.Client
	log    logging.Logger
	limit  int

	query      Query
	items      []models.Report
	page       int
	totalPages int

	loadingMore bool
	refreshing  bool
	lastErr     error

	// gen increments on every refresh and on Close; in-flight completions
	// compare their snapshot against it and drop stale results.
	gen    uint64
	closed bool

	debouncer   *Debouncer
	subscribers []func()
}

// New builds a synchronizer fetching limit items per page. debounce
// controls the free-text coalescing delay; use DefaultDebounce outside
// tests.
func New(client api.Client, log logging.Logger, limit int, debounce time.Duration) *Synchronizer {
	return &Synchronizer{
		client:    client,
		log:       log.With("component", "feed"),
		limit:     limit,
		debouncer: NewDebouncer(debounce),
	}
}

// Subscribe registers fn to run after every state change. Callbacks run
// outside the synchronizer lock.
func (s *Synchronizer) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Synchronizer) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// fetch issues the network call for the given query and page, honoring the
// precedence rule: search wins over filters, filters win over the plain
// paginated feed.
func (s *Synchronizer) fetch(ctx context.Context, q Query, page int) (*models.FeedPage, error) {
	opts := api.ListOptions{Page: page, Limit: s.limit, Sort: q.Sort}
	filter := api.FeedFilter{Status: q.Status, Category: q.Category}

	switch {
	case q.searching():
		return s.client.SearchReports(ctx, strings.TrimSpace(q.Search), filter, opts)
	case q.filtered():
		// Filtered listings are first-page-only; no pagination.
		opts.Page = 1
		return s.client.FilterReports(ctx, filter, opts)
	default:
		return s.client.GetReports(ctx, opts)
	}
}

// Refresh replaces the list with page-1 results for the current query and
// resets the pagination cursor. On failure the items are left untouched and
// the error is retained for Err/Retry.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	myGen := s.gen
	q := s.query
	s.refreshing = true
	s.mu.Unlock()
	s.notify()

	resp, err := s.fetch(ctx, q, 1)

	s.mu.Lock()
	if s.closed || s.gen != myGen {
		// A newer refresh superseded this one, or the owner went away.
		s.mu.Unlock()
		return nil
	}
	s.refreshing = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		s.log.Warn(ctx, "refresh failed", "error", err)
		return err
	}

	s.items = resp.Reports
	s.page = 1
	if q.searching() || q.filtered() {
		s.totalPages = 1
	} else if resp.TotalPages > 0 {
		s.totalPages = resp.TotalPages
	} else {
		s.totalPages = 1
	}
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// LoadMore fetches the next page and appends its results, preserving order.
// It is a no-op when the last page is already loaded or another load is in
// flight. Appends are dropped if a refresh replaced the list in the
// meantime. No de-duplication is performed on append; overlapping page
// windows from the backend surface as duplicates.
func (s *Synchronizer) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.loadingMore || s.refreshing || s.page >= s.totalPages {
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	myGen := s.gen
	q := s.query
	next := s.page + 1
	s.mu.Unlock()
	s.notify()

	resp, err := s.fetch(ctx, q, next)

	s.mu.Lock()
	s.loadingMore = false
	if s.closed || s.gen != myGen {
		// Stale append: a refresh already replaced the list.
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		s.log.Warn(ctx, "load more failed", "page", next, "error", err)
		return err
	}

	s.items = append(s.items, resp.Reports...)
	s.page = next
	if resp.TotalPages > 0 {
		s.totalPages = resp.TotalPages
	}
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// Retry re-runs the fetch for the current query with the same parameters.
// It deliberately restarts from page one rather than re-requesting the page
// that failed; a failed append is recovered by the next LoadMore instead.
func (s *Synchronizer) Retry(ctx context.Context) error {
	return s.Refresh(ctx)
}

// SetSearch updates the free-text query. The resulting refresh is debounced:
// only the last value within the window triggers a network call. Passing the
// current value still reschedules, mirroring keystroke behavior.
func (s *Synchronizer) SetSearch(ctx context.Context, text string) {
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.query.Search = text
		s.mu.Unlock()

		_ = s.Refresh(ctx)
	})
}

// SetStatus changes the status filter and refreshes immediately.
func (s *Synchronizer) SetStatus(ctx context.Context, status models.Status) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", api.ErrInvalidQuery, status)
	}
	s.mu.Lock()
	s.query.Status = status
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetCategory changes the category filter and refreshes immediately.
func (s *Synchronizer) SetCategory(ctx context.Context, category models.Category) error {
	if category != "" && !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", api.ErrInvalidQuery, category)
	}
	s.mu.Lock()
	s.query.Category = category
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetSort changes the sort order and refreshes immediately.
func (s *Synchronizer) SetSort(ctx context.Context, sort api.SortOrder) error {
	if sort != "" && !sort.Valid() {
		return fmt.Errorf("%w: sort must be asc or desc", api.ErrInvalidQuery)
	}
	s.mu.Lock()
	s.query.Sort = sort
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Close tears the synchronizer down: pending debounces are cancelled and
// any in-flight completions are ignored.
func (s *Synchronizer) Close() {
	s.debouncer.Stop()
	s.mu.Lock()
	s.closed = true
	s.gen++
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Synchronizer) Items() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Report, len(s.items))
	copy(out, s.items)
	return out
}

// Query returns the current query combination.
func (s *Synchronizer) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Synchronizer) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Synchronizer) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

// Searching reports whether a free-text search currently drives the list.
func (s *Synchronizer) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query.searching()
}

// LoadingMore reports whether a pagination load is in flight.
func (s *Synchronizer) LoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}

// Err returns the error from the most recent failed fetch, or nil.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
