package services

import (
	"context"
	"fmt"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/common"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// ErrNotRatable rejects a rating on a report that has not been resolved.
var ErrNotRatable = fmt.Errorf("report is not resolved yet")

// ReportService performs per-report operations with the client-side guards
// applied: lifecycle transitions require the admin role, deletion and
// updates require ownership, ratings require a resolved report. The backend
// re-checks all of this; the guards exist to fail fast with a precise error.
type ReportService struct {
	client api.Client
	sess   *session.Session
	log    logging.Logger
}

func NewReportService(client api.Client, sess *session.Session, log logging.Logger) *ReportService {
	return &ReportService{client: client, sess: sess, log: log.With("component", "reports")}
}

func (s *ReportService) requireAdmin() (int64, error) {
	userID, err := s.sess.UserID()
	if err != nil {
		return 0, err
	}
	if !s.sess.IsAdmin() {
		return 0, common.ErrAdminRequired
	}
	return userID, nil
}

// Get fetches a single report by id.
func (s *ReportService) Get(ctx context.Context, id int64) (*models.Report, error) {
	return s.client.GetReport(ctx, id)
}

// Validate marks a report as accepted for work. Admin only.
func (s *ReportService) Validate(ctx context.Context, reportID int64) error {
	adminID, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if err := s.client.ValidateReport(ctx, reportID, adminID); err != nil {
		return fmt.Errorf("validate report %d: %w", reportID, err)
	}
	s.log.Info(ctx, "report validated", "report_id", reportID)
	return nil
}

// Resolve marks a report as fixed. Admin only.
func (s *ReportService) Resolve(ctx context.Context, reportID int64) error {
	adminID, err := s.requireAdmin()
	if err != nil {
		return err
	}
	if err := s.client.ResolveReport(ctx, reportID, adminID); err != nil {
		return fmt.Errorf("resolve report %d: %w", reportID, err)
	}
	s.log.Info(ctx, "report resolved", "report_id", reportID)
	return nil
}

// Deny rejects a report by moving it to the denied status. Admin only.
func (s *ReportService) Deny(ctx context.Context, reportID int64) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.client.UpdateReportStatus(ctx, reportID, models.StatusDenied); err != nil {
		return fmt.Errorf("deny report %d: %w", reportID, err)
	}
	s.log.Info(ctx, "report denied", "report_id", reportID)
	return nil
}

// Rate records a 1 to 5 satisfaction rating on a resolved report.
func (s *ReportService) Rate(ctx context.Context, reportID int64, rating int) error {
	if _, err := s.sess.UserID(); err != nil {
		return err
	}

	report, err := s.client.GetReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("rate report %d: %w", reportID, err)
	}
	if !report.CanRate() {
		return ErrNotRatable
	}
	return s.client.RateReport(ctx, reportID, rating)
}

// Delete removes a report. Non-admins may only delete their own.
func (s *ReportService) Delete(ctx context.Context, reportID int64) error {
	if _, err := s.sess.UserID(); err != nil {
		return err
	}

	if !s.sess.IsAdmin() {
		report, err := s.client.GetReport(ctx, reportID)
		if err != nil {
			return fmt.Errorf("delete report %d: %w", reportID, err)
		}
		if err := s.sess.RequireMatch(report.CreatedBy); err != nil {
			return err
		}
	}
	if err := s.client.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("delete report %d: %w", reportID, err)
	}
	s.log.Info(ctx, "report deleted", "report_id", reportID)
	return nil
}

// Update edits report fields. Non-admins may only edit their own.
func (s *ReportService) Update(ctx context.Context, reportID int64, req api.UpdateReportRequest) (*models.Report, error) {
	if _, err := s.sess.UserID(); err != nil {
		return nil, err
	}

	if !s.sess.IsAdmin() {
		report, err := s.client.GetReport(ctx, reportID)
		if err != nil {
			return nil, fmt.Errorf("update report %d: %w", reportID, err)
		}
		if err := s.sess.RequireMatch(report.CreatedBy); err != nil {
			return nil, err
		}
	}
	return s.client.UpdateReport(ctx, reportID, req)
}

// Stats fetches the global aggregate summary. Available to everyone.
func (s *ReportService) Stats(ctx context.Context) (*models.GlobalStats, error) {
	return s.client.GetGlobalStats(ctx)
}

// StatusOptions lists the statuses the backend accepts, for display.
func (s *ReportService) StatusOptions(ctx context.Context) ([]models.Status, error) {
	return s.client.GetStatusOptions(ctx)
}
