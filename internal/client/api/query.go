package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dvelez2005/civicwatch/internal/client/models"
)

// SortOrder is the feed ordering accepted by list endpoints.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

// ListOptions carries pagination and ordering for list calls. Zero-valued
// fields are omitted from the query string entirely; the backend then
// applies its own defaults.
type ListOptions struct {
	Page  int
	Limit int
	Sort  SortOrder
}

func (o ListOptions) validate() error {
	if o.Page < 0 {
		return fmt.Errorf("%w: page must be positive", ErrInvalidQuery)
	}
	if o.Limit < 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	if o.Sort != "" && !o.Sort.Valid() {
		return fmt.Errorf("%w: sort must be asc or desc", ErrInvalidQuery)
	}
	return nil
}

func (o ListOptions) encode(q url.Values) {
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Sort != "" {
		q.Set("sort", string(o.Sort))
	}
}

// FeedFilter narrows a listing by status and/or category. Empty fields are
// omitted; set fields must be valid enum values.
type FeedFilter struct {
	Status   models.Status
	Category models.Category
}

func (f FeedFilter) validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, f.Status)
	}
	if f.Category != "" && !f.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidQuery, f.Category)
	}
	return nil
}

func (f FeedFilter) encode(q url.Values) {
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
}

// Empty reports whether no filter dimension is set.
func (f FeedFilter) Empty() bool {
	return f.Status == "" && f.Category == ""
}
