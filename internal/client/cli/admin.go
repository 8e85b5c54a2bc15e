package cli

import (
	"context"
	"fmt"
)

// Validate marks a report as accepted for work. Admin only.
func (a *App) Validate(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.reports.Validate(ctx, id); err != nil {
		return a.handleErr(ctx, err)
	}
	printlnFn(fmt.Sprintf("Report #%d validated.", id))
	return nil
}

// Resolve marks a report as fixed. Admin only.
func (a *App) Resolve(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.reports.Resolve(ctx, id); err != nil {
		return a.handleErr(ctx, err)
	}
	printlnFn(fmt.Sprintf("Report #%d resolved.", id))
	return nil
}

// Deny rejects a report. Admin only.
func (a *App) Deny(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	if err := a.reports.Deny(ctx, id); err != nil {
		return a.handleErr(ctx, err)
	}
	printlnFn(fmt.Sprintf("Report #%d denied.", id))
	return nil
}
