// Package pins keeps the authoritative set of report ids pinned by the
// current user, decoupled from any feed list: a toggle performed on one
// screen is visible on every other without a refetch.
package pins

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// loadPageSize is the page size used when walking the pinned-report listing.
const loadPageSize = 50

// Reconciler owns the pinned-id set. Screens subscribe to membership
// changes instead of trusting the possibly stale pinned flag embedded in a
// previously fetched Report.
type Reconciler struct {
	mu sync.Mutex

	client api.Client
	sess   *session.Session
	log    logging.Logger

	ids         map[int64]struct{}
	subscribers []func()
}

func New(client api.Client, sess *session.Session, log logging.Logger) *Reconciler {
	return &Reconciler{
		client: client,
		sess:   sess,
		log:    log.With("component", "pins"),
		ids:    make(map[int64]struct{}),
	}
}

// Subscribe registers fn to run after every membership change. Callbacks
// run outside the reconciler lock.
func (r *Reconciler) Subscribe(fn func()) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()
}

func (r *Reconciler) notify() {
	r.mu.Lock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Load replaces the set with the authoritative pinned list for the current
// user, walking every page. Called on startup and on screen focus.
func (r *Reconciler) Load(ctx context.Context) error {
	userID, err := r.sess.UserID()
	if err != nil {
		return err
	}

	fresh := make(map[int64]struct{})
	for page := 1; ; page++ {
		resp, err := r.client.GetPinnedReports(ctx, userID, api.ListOptions{Page: page, Limit: loadPageSize})
		if err != nil {
			return fmt.Errorf("load pinned reports: %w", err)
		}
		for _, rep := range resp.Reports {
			fresh[rep.ID] = struct{}{}
		}
		if page >= resp.TotalPages {
			break
		}
	}

	r.mu.Lock()
	r.ids = fresh
	r.mu.Unlock()
	r.notify()
	return nil
}

// Pinned reports whether the given report id is pinned by the current user.
func (r *Reconciler) Pinned(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// Snapshot returns the pinned ids in ascending order.
func (r *Reconciler) Snapshot() []int64 {
	r.mu.Lock()
	out := make([]int64, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Toggle optimistically flips the membership of id, then issues the
// matching pin/unpin call. On failure the local flip is reverted before the
// error is returned, so the set never drifts from the backend for long.
func (r *Reconciler) Toggle(ctx context.Context, id int64) error {
	userID, err := r.sess.UserID()
	if err != nil {
		return err
	}

	r.mu.Lock()
	_, wasPinned := r.ids[id]
	if wasPinned {
		delete(r.ids, id)
	} else {
		r.ids[id] = struct{}{}
	}
	r.mu.Unlock()
	r.notify()

	if wasPinned {
		err = r.client.UnpinReport(ctx, userID, id)
	} else {
		err = r.client.PinReport(ctx, userID, id)
	}
	if err == nil {
		return nil
	}

	// Revert the optimistic flip.
	r.mu.Lock()
	if wasPinned {
		r.ids[id] = struct{}{}
	} else {
		delete(r.ids, id)
	}
	r.mu.Unlock()
	r.notify()

	r.log.Warn(ctx, "pin toggle failed, reverted", "report_id", id, "error", err)
	return fmt.Errorf("toggle pin: %w", err)
}

// Reset drops all local state, e.g. on logout.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	r.ids = make(map[int64]struct{})
	r.mu.Unlock()
	r.notify()
}
