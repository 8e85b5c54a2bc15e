package cli

import (
	"context"
	"fmt"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/models"
)

// List refreshes the feed for the current query and prints it.
func (a *App) List(ctx context.Context) error {
	if err := a.feed.Refresh(ctx); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

// Search sets the free-text query. The refresh itself is debounced inside
// the synchronizer, so rendering happens on the next list command; an empty
// text clears the search.
func (a *App) Search(ctx context.Context, text string) error {
	a.feed.SetSearch(ctx, text)
	if text == "" {
		printlnFn("Search cleared.")
	} else {
		printlnFn(fmt.Sprintf("Searching for %q ...", text))
	}
	return nil
}

// Statuses prints the status values the backend accepts for filtering.
func (a *App) Statuses(ctx context.Context) error {
	statuses, err := a.reports.StatusOptions(ctx)
	if err != nil {
		return a.handleErr(ctx, err)
	}
	for _, s := range statuses {
		printlnFn("  " + string(s))
	}
	printlnFn("Use: status <value> to filter, status - to clear")
	return nil
}

// FilterStatus sets or clears ("-") the status filter and prints the result.
func (a *App) FilterStatus(ctx context.Context, value string) error {
	status := models.Status(value)
	if value == "-" {
		status = ""
	}
	if err := a.feed.SetStatus(ctx, status); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

// FilterCategory sets or clears ("-") the category filter and prints the result.
func (a *App) FilterCategory(ctx context.Context, value string) error {
	category := models.Category(value)
	if value == "-" {
		category = ""
	}
	if err := a.feed.SetCategory(ctx, category); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

// Sort changes the sort order and prints the refreshed feed.
func (a *App) Sort(ctx context.Context, value string) error {
	if err := a.feed.SetSort(ctx, api.SortOrder(value)); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

// More loads the next feed page and prints the grown list.
func (a *App) More(ctx context.Context) error {
	if err := a.feed.LoadMore(ctx); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

// Retry re-runs the last failed fetch with identical parameters.
func (a *App) Retry(ctx context.Context) error {
	if err := a.feed.Retry(ctx); err != nil {
		return a.handleErr(ctx, err)
	}
	a.renderFeed()
	return nil
}

func (a *App) renderFeed() {
	items := a.feed.Items()
	if len(items) == 0 {
		printlnFn("No reports.")
		return
	}
	for _, r := range items {
		printlnFn(a.formatRow(r))
	}
	printlnFn(fmt.Sprintf("Page %d of %d", a.feed.Page(), a.feed.TotalPages()))
}

func (a *App) formatRow(r models.Report) string {
	marker := " "
	if a.pins.Pinned(r.ID) {
		marker = "*"
	}
	return fmt.Sprintf("%s #%-5d [%-11s] %-14s %s", marker, r.ID, r.Status, r.Category, r.Title)
}
