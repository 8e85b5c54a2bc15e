package cli

import (
	"context"
	"fmt"

	"github.com/dvelez2005/civicwatch/internal/client/api"
)

// Pin toggles the pinned state of a report.
func (a *App) Pin(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	if err := a.pins.Toggle(ctx, id); err != nil {
		return a.handleErr(ctx, err)
	}
	if a.pins.Pinned(id) {
		printlnFn(fmt.Sprintf("Report #%d pinned.", id))
	} else {
		printlnFn(fmt.Sprintf("Report #%d unpinned.", id))
	}
	return nil
}

// Pinned prints the current user's pinned reports.
func (a *App) Pinned(ctx context.Context) error {
	userID, err := a.sess.UserID()
	if err != nil {
		return err
	}

	page, err := a.client.GetPinnedReports(ctx, userID, api.ListOptions{Page: 1, Limit: a.config.PageSize})
	if err != nil {
		return a.handleErr(ctx, err)
	}

	if len(page.Reports) == 0 {
		printlnFn("No pinned reports.")
		return nil
	}
	for _, r := range page.Reports {
		printlnFn(a.formatRow(r))
	}
	return nil
}
