// Package models defines the client-side view of backend entities: reports,
// feed pages, and stored credentials.
package models

import "time"

// Category classifies a report by the kind of issue observed.
type Category string

const (
	CategoryPothole       Category = "pothole"
	CategoryStreetLight   Category = "street_light"
	CategoryTrafficSignal Category = "traffic_signal"
	CategoryRoadDamage    Category = "road_damage"
	CategorySanitation    Category = "sanitation"
	CategoryOther         Category = "other"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryPothole,
		CategoryStreetLight,
		CategoryTrafficSignal,
		CategoryRoadDamage,
		CategorySanitation,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPothole, CategoryStreetLight, CategoryTrafficSignal,
		CategoryRoadDamage, CategorySanitation, CategoryOther:
		return true
	}
	return false
}

// Status is the lifecycle state of a report. The lifecycle is monotonic
// (open → in_progress → resolved → closed) except for denial.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDenied     Status = "denied"
	StatusClosed     Status = "closed"
)

// Statuses lists every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusDenied, StatusClosed}
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusDenied, StatusClosed:
		return true
	}
	return false
}

// Report is a single citizen-submitted issue record.
//
// Pinned reflects the value embedded in a fetched report and may be stale;
// the pin reconciler owns the authoritative pinned state for the current user.
type Report struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Category    Category   `json:"category"`
	CreatedBy   int64      `json:"created_by"`
	ValidatedBy *int64     `json:"validated_by,omitempty"`
	ResolvedBy  *int64     `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	OccurredOn  *time.Time `json:"occurred_on,omitempty"`
	Location    *string    `json:"location,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Pinned      bool       `json:"pinned,omitempty"`
}

// Resolved reports whether the report reached a terminal successful state.
func (r *Report) Resolved() bool {
	return r.Status == StatusResolved || r.Status == StatusClosed
}

// CanRate reports whether a rating is meaningful for this report:
// only resolved/closed reports may carry one.
func (r *Report) CanRate() bool {
	return r.Resolved()
}

// FeedPage is one page of a paginated report listing as returned by the
// /reports, /reports/search, /reports/filter and /pinned-reports endpoints.
type FeedPage struct {
	Reports    []Report `json:"reports"`
	Page       int      `json:"currentPage"`
	TotalPages int      `json:"totalPages"`
	TotalCount int      `json:"totalCount"`
}

// GlobalStats is the aggregate summary served by GET /stats/summary.
type GlobalStats struct {
	AvgResolutionDays      float64      `json:"avg_resolution_days"`
	TopDepartmentsResolved []NamedCount `json:"top_departments_resolved"`
	TopUsersReports        []NamedCount `json:"top_users_reports"`
	TopAdminsValidated     []NamedCount `json:"top_admins_validated"`
	TopAdminsResolved      []NamedCount `json:"top_admins_resolved"`
}

// NamedCount is a generic leaderboard row.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
