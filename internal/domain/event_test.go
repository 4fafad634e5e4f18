package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		start      EventStatus
		transition func(*Event, time.Time)
		want       EventStatus
	}{
		{"activate draft", EventStatusDraft, (*Event).Activate, EventStatusActive},
		{"activate active is a no-op", EventStatusActive, (*Event).Activate, EventStatusActive},
		{"activate closed is a no-op", EventStatusClosed, (*Event).Activate, EventStatusClosed},
		{"activate archived is a no-op", EventStatusArchived, (*Event).Activate, EventStatusArchived},
		{"close active", EventStatusActive, (*Event).Close, EventStatusClosed},
		{"close draft is a no-op", EventStatusDraft, (*Event).Close, EventStatusDraft},
		{"close archived is a no-op", EventStatusArchived, (*Event).Close, EventStatusArchived},
		{"archive closed", EventStatusClosed, (*Event).Archive, EventStatusArchived},
		{"archive draft is a no-op", EventStatusDraft, (*Event).Archive, EventStatusDraft},
		{"archive active is a no-op", EventStatusActive, (*Event).Archive, EventStatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvent("GopherCon", "gophercon", nil, nil, nil, now)
			e.Status = tt.start
			tt.transition(e, now)
			assert.Equal(t, tt.want, e.Status)
		})
	}
}

func TestEventStatusCapabilities(t *testing.T) {
	tests := []struct {
		status     EventStatus
		visible    bool
		newPosts   bool
		interests  bool
		exportable bool
	}{
		{EventStatusDraft, true, false, false, false},
		{EventStatusActive, true, true, true, false},
		{EventStatusClosed, true, false, false, true},
		{EventStatusArchived, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.status.IsPubliclyVisible())
			assert.Equal(t, tt.newPosts, tt.status.AllowsNewPosts())
			assert.Equal(t, tt.interests, tt.status.AllowsInterests())
			assert.Equal(t, tt.exportable, tt.status.AllowsExport())
		})
	}
}

func TestEventIsDraftAndEmpty(t *testing.T) {
	now := time.Now()
	e := NewEvent("GopherCon", "gophercon", nil, nil, nil, now)

	assert.True(t, e.IsDraftAndEmpty(0))
	assert.False(t, e.IsDraftAndEmpty(1))

	e.Activate(now)
	assert.False(t, e.IsDraftAndEmpty(0))
}

func TestEventDuplicate(t *testing.T) {
	now := time.Now()
	desc := "annual Go conference"
	loc := "Berlin"
	date := now.AddDate(0, 1, 0)

	src := NewEvent("GopherCon", "gophercon", &desc, &date, &loc, now.Add(-time.Hour))
	src.ID = "src-id"
	src.Activate(now)

	dup := src.Duplicate("GopherCon 2027", "gophercon-2027", now)

	require.NotNil(t, dup)
	assert.Equal(t, "GopherCon 2027", dup.Name)
	assert.Equal(t, "gophercon-2027", dup.Slug)
	assert.Equal(t, EventStatusDraft, dup.Status)
	assert.Equal(t, &desc, dup.Description)
	assert.Equal(t, &loc, dup.Location)
	assert.Nil(t, dup.EventDate, "the copy starts without a date")
	require.NotNil(t, dup.TemplateSourceID)
	assert.Equal(t, "src-id", *dup.TemplateSourceID)
	assert.False(t, dup.IsTemplate)
}

func TestParseEventStatus(t *testing.T) {
	s, ok := ParseEventStatus("active")
	require.True(t, ok)
	assert.Equal(t, EventStatusActive, s)

	_, ok = ParseEventStatus("published")
	assert.False(t, ok)
}
