package cli

import (
	"context"
	"fmt"

	"github.com/dvelez2005/civicwatch/internal/client/models"
)

// Stats prints the global aggregate summary.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.reports.Stats(ctx)
	if err != nil {
		return a.handleErr(ctx, err)
	}

	printlnFn(fmt.Sprintf("Average resolution time: %.1f days", stats.AvgResolutionDays))
	printLeaderboard("Top departments by resolved reports", stats.TopDepartmentsResolved)
	printLeaderboard("Top reporters", stats.TopUsersReports)
	printLeaderboard("Top admins by validations", stats.TopAdminsValidated)
	printLeaderboard("Top admins by resolutions", stats.TopAdminsResolved)
	return nil
}

func printLeaderboard(title string, rows []models.NamedCount) {
	if len(rows) == 0 {
		return
	}
	printlnFn(title + ":")
	for i, row := range rows {
		printlnFn(fmt.Sprintf("  %d. %s (%d)", i+1, row.Name, row.Count))
	}
}
