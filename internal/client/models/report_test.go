package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("graffiti").Valid())
	assert.False(t, Category("").Valid())
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("reopened").Valid())
	assert.False(t, Status("").Valid())
}

func TestReportCanRate(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusOpen, false},
		{StatusInProgress, false},
		{StatusDenied, false},
		{StatusResolved, true},
		{StatusClosed, true},
	}
	for _, tt := range tests {
		r := Report{Status: tt.status}
		assert.Equal(t, tt.want, r.CanRate(), string(tt.status))
	}
}

func TestReport_UnmarshalOptionalFields(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "Pothole on Main St",
		"description": "Deep hole near the crosswalk",
		"status": "resolved",
		"category": "pothole",
		"created_by": 12,
		"created_at": "2025-03-01T12:00:00Z",
		"resolved_at": "2025-03-05T09:30:00Z",
		"rating": 4
	}`

	var r Report
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, StatusResolved, r.Status)
	require.NotNil(t, r.ResolvedAt)
	assert.Equal(t, time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC), *r.ResolvedAt)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4, *r.Rating)
	assert.Nil(t, r.ImageURL)
	assert.Nil(t, r.Location)
	assert.False(t, r.Pinned)
}
