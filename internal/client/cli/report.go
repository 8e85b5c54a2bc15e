package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dvelez2005/civicwatch/internal/client/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid report id %q", s)
	}
	return id, nil
}

// Show fetches and displays a single report.
func (a *App) Show(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	r, err := a.reports.Get(ctx, id)
	if err != nil {
		return a.handleErr(ctx, err)
	}

	printlnFn(fmt.Sprintf("#%d %s", r.ID, r.Title))
	printlnFn("Status:  ", string(r.Status))
	printlnFn("Category:", string(r.Category))
	printlnFn("Reported:", r.CreatedAt.Format(time.DateTime))
	if r.OccurredOn != nil {
		printlnFn("Occurred:", r.OccurredOn.Format(time.DateOnly))
	}
	if r.Location != nil {
		printlnFn("Location:", *r.Location)
	}
	if r.ImageURL != nil {
		printlnFn("Image:   ", *r.ImageURL)
	}
	if r.Rating != nil {
		printlnFn("Rating:  ", strconv.Itoa(*r.Rating))
	}
	if a.pins.Pinned(r.ID) {
		printlnFn("Pinned")
	}
	printlnFn(r.Description)
	return nil
}

// Report runs the interactive submission flow: title, description, category,
// optional occurrence date and image, then submit. Entered values survive a
// failed submit and are offered again on the next attempt.
func (a *App) Report(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		a.form.SetTitle(title)
	}

	description, err := GetMultiline(a.reader, "Enter description (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		a.form.SetDescription(description)
	}

	category, err := getSimpleText(a.reader, fmt.Sprintf("Enter category %v (empty for %s)", models.Categories(), models.CategoryOther), os.Stdout)
	if err != nil {
		return err
	}
	if err := a.form.SetCategory(models.Category(category)); err != nil {
		return err
	}

	occurred, err := getSimpleText(a.reader, "When did this occur? (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		return err
	}
	if occurred != "" {
		day, err := time.Parse(time.DateOnly, occurred)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", occurred)
		}
		a.form.SetOccurredOn(day)
	}

	imagePath, err := getSimpleText(a.reader, "Attach image file (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath != "" {
		a.form.SetImagePath(imagePath)
	}

	report, err := a.form.Submit(ctx)
	if err != nil {
		return a.handleErr(ctx, err)
	}

	printlnFn(fmt.Sprintf("Report #%d submitted.", report.ID))
	return a.feed.Refresh(ctx)
}

// Rate records a satisfaction rating on a resolved report.
func (a *App) Rate(ctx context.Context, idArg, ratingArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingArg)
	if err != nil {
		return fmt.Errorf("invalid rating %q", ratingArg)
	}

	if err := a.reports.Rate(ctx, id, rating); err != nil {
		return a.handleErr(ctx, err)
	}
	printlnFn("Thanks for the feedback!")
	return nil
}
