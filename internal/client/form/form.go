// Package form holds the state of an in-progress report submission: the
// draft fields, their validation, and the submit flow that turns a draft
// into a created report.
package form

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/filex"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

const (
	// MaxTitleLen and MaxDescriptionLen mirror the backend column limits,
	// counted in characters rather than bytes.
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// ValidationError names the offending field so the UI can highlight it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Draft is the current field values of the form. OccurredOn left zero means
// "now at submit time".
type Draft struct {
	Title       string
	Description string
	Category    models.Category
	LocationID  *int64
	ImagePath   string
	OccurredOn  time.Time
}

// Form accumulates a report draft and submits it. Safe for concurrent use.
// The draft survives a failed submit unchanged; a successful submit resets
// it to defaults.
type Form struct {
	mu sync.Mutex

	client     api.Client
	sess       *session.Session
	log        logging.Logger
	uploadBase string

	draftID string
	draft   Draft

	// nowFn and readImageFn are test seams.
	nowFn       func() time.Time
	readImageFn func(path string) ([]byte, string, error)
}

// New builds an empty form. uploadBase is the storage prefix image bytes
// are PUT under; empty disables attachments.
func New(client api.Client, sess *session.Session, log logging.Logger, uploadBase string) *Form {
	return &Form{
		client:      client,
		sess:        sess,
		log:         log.With("component", "form"),
		uploadBase:  strings.TrimRight(uploadBase, "/"),
		draftID:     uuid.NewString(),
		nowFn:       time.Now,
		readImageFn: filex.ReadImage,
	}
}

// DraftID identifies this draft across log lines and the upload object key.
func (f *Form) DraftID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draftID
}

// Snapshot returns a copy of the current draft fields.
func (f *Form) Snapshot() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	f.draft.Title = title
	f.mu.Unlock()
}

func (f *Form) SetDescription(description string) {
	f.mu.Lock()
	f.draft.Description = description
	f.mu.Unlock()
}

func (f *Form) SetCategory(category models.Category) error {
	if category != "" && !category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	f.mu.Lock()
	f.draft.Category = category
	f.mu.Unlock()
	return nil
}

func (f *Form) SetLocation(locationID int64) {
	f.mu.Lock()
	f.draft.LocationID = &locationID
	f.mu.Unlock()
}

func (f *Form) SetImagePath(path string) {
	f.mu.Lock()
	f.draft.ImagePath = path
	f.mu.Unlock()
}

func (f *Form) SetOccurredOn(t time.Time) {
	f.mu.Lock()
	f.draft.OccurredOn = t
	f.mu.Unlock()
}

// Clear resets every field to its default and starts a fresh draft id.
func (f *Form) Clear() {
	f.mu.Lock()
	f.draft = Draft{}
	f.draftID = uuid.NewString()
	f.mu.Unlock()
}

// Validate checks the draft without touching the network. The first failing
// field is reported.
func (f *Form) Validate() error {
	d := f.Snapshot()
	return validate(d, f.uploadBase)
}

func validate(d Draft, uploadBase string) error {
	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case utf8.RuneCountInString(title) > MaxTitleLen:
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", MaxTitleLen)}
	}

	description := strings.TrimSpace(d.Description)
	switch {
	case description == "":
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	case utf8.RuneCountInString(description) > MaxDescriptionLen:
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)}
	}

	if d.Category != "" && !d.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", d.Category)}
	}
	if d.ImagePath != "" && uploadBase == "" {
		return &ValidationError{Field: "image", Reason: "image uploads are not configured"}
	}
	return nil
}

// Submit validates the draft, uploads the attached image if any, and creates
// the report under the authenticated user. The draft resets only when the
// backend accepted it; on any failure the fields stay as entered so the user
// can correct and resubmit.
func (f *Form) Submit(ctx context.Context) (*models.Report, error) {
	f.mu.Lock()
	d := f.draft
	draftID := f.draftID
	f.mu.Unlock()

	if err := validate(d, f.uploadBase); err != nil {
		return nil, err
	}

	userID, err := f.sess.UserID()
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if d.ImagePath != "" {
		data, contentType, err := f.readImageFn(d.ImagePath)
		if err != nil {
			return nil, &ValidationError{Field: "image", Reason: err.Error()}
		}
		url := f.uploadBase + "/" + draftID
		if err := f.client.UploadImage(ctx, url, data, contentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = &url
	}

	occurredOn := d.OccurredOn
	if occurredOn.IsZero() {
		occurredOn = f.nowFn()
	}
	category := d.Category
	if category == "" {
		category = models.CategoryOther
	}

	report, err := f.client.CreateReport(ctx, api.CreateReportRequest{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    category,
		LocationID:  d.LocationID,
		ImageURL:    imageURL,
		OccurredOn:  occurredOn,
		UserID:      userID,
	})
	if err != nil {
		f.log.Warn(ctx, "report submission failed", "draft_id", draftID, "error", err)
		return nil, fmt.Errorf("create report: %w", err)
	}

	f.log.Info(ctx, "report submitted", "draft_id", draftID, "report_id", report.ID)
	f.Clear()
	return report, nil
}
