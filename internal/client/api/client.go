// Package api implements the typed HTTP client for the CivicWatch backend.
// It translates operation calls into REST requests, attaches the bearer
// token, and maps non-2xx responses to categorized errors.
//
// The client performs no retries and no backoff; retry policy belongs to
// the caller.
package api

import (
	"context"
	"time"

	"github.com/dvelez2005/civicwatch/internal/client/models"
)

// TokenSource yields the bearer token to attach to authenticated requests.
// An empty string means "no token"; the Authorization header is then omitted.
// The session object implements this interface.
type TokenSource interface {
	Token() string
}

// CreateReportRequest is the body of POST /reports.
type CreateReportRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	LocationID  *int64          `json:"location_id,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	OccurredOn  time.Time       `json:"occurred_on"`
	UserID      int64           `json:"user_id"`
}

// UpdateReportRequest is the body of PUT /reports/{id}. Nil fields are
// omitted and left unchanged by the backend.
type UpdateReportRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *models.Category `json:"category,omitempty"`
	LocationID  *int64           `json:"location_id,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// Client is the typed operation surface consumed by the application
// services, the feed synchronizer, and the pin reconciler.
type Client interface {
	// Reports.
	GetReports(ctx context.Context, opts ListOptions) (*models.FeedPage, error)
	GetReport(ctx context.Context, id int64) (*models.Report, error)
	CreateReport(ctx context.Context, req CreateReportRequest) (*models.Report, error)
	UpdateReport(ctx context.Context, id int64, req UpdateReportRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, id int64) error
	SearchReports(ctx context.Context, query string, filter FeedFilter, opts ListOptions) (*models.FeedPage, error)
	FilterReports(ctx context.Context, filter FeedFilter, opts ListOptions) (*models.FeedPage, error)
	GetStatusOptions(ctx context.Context) ([]models.Status, error)

	// Report lifecycle (admin) and rating.
	ValidateReport(ctx context.Context, id, adminID int64) error
	ResolveReport(ctx context.Context, id, adminID int64) error
	UpdateReportStatus(ctx context.Context, id int64, status models.Status) error
	RateReport(ctx context.Context, id int64, rating int) error

	// Pins.
	PinReport(ctx context.Context, userID, reportID int64) error
	UnpinReport(ctx context.Context, userID, reportID int64) error
	GetPinnedReports(ctx context.Context, userID int64, opts ListOptions) (*models.FeedPage, error)

	// Accounts and sessions.
	Login(ctx context.Context, email, password string) (*models.Credentials, error)
	Register(ctx context.Context, email, password string, admin bool) (*models.Credentials, error)
	DeleteUser(ctx context.Context, userID int64) error

	// Aggregates.
	GetGlobalStats(ctx context.Context) (*models.GlobalStats, error)

	// UploadImage PUTs raw image bytes to a storage URL issued out of band
	// and is used before CreateReport to populate image_url.
	UploadImage(ctx context.Context, uploadURL string, data []byte, contentType string) error
}
