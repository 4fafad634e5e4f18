package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topicmatcher/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GopherCon 2026", "gophercon-2026"},
		{"  Tech & Beer!  ", "tech-beer"},
		{"already-a-slug", "already-a-slug"},
		{"___", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestCreateEvent(t *testing.T) {
	eventRepo := newFakeEventRepo()
	categoryRepo := newFakeCategoryRepo()
	svc := NewEventCommandService(eventRepo, categoryRepo, testTimeout)
	ctx := context.Background()

	t.Run("creates a draft with a slug from the name", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, "GopherCon 2026", "", nil, nil, nil, false)
		require.NoError(t, err)
		assert.Equal(t, "gophercon-2026", event.Slug)
		assert.Equal(t, domain.EventStatusDraft, event.Status)
		assert.NotEmpty(t, event.ID)
	})

	t.Run("colliding slugs get an integer suffix", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, "GopherCon 2026", "", nil, nil, nil, false)
		require.NoError(t, err)
		assert.Equal(t, "gophercon-2026-1", event.Slug)
	})

	t.Run("explicit slug base wins over the name", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, "Internal Meetup", "Summer Edition", nil, nil, nil, false)
		require.NoError(t, err)
		assert.Equal(t, "summer-edition", event.Slug)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, "   ", "", nil, nil, nil, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("template flag is honored", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, "Meetup Base", "", nil, nil, nil, true)
		require.NoError(t, err)
		assert.True(t, event.IsTemplate)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("empty draft is deleted", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		categoryRepo := newFakeCategoryRepo()
		svc := NewEventCommandService(eventRepo, categoryRepo, testTimeout)

		e := eventRepo.add(domain.NewEvent("Draft", "draft", nil, nil, nil, now))
		require.NoError(t, svc.DeleteEvent(ctx, "draft"))
		_, err := eventRepo.GetByID(ctx, e.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("draft with categories is not deletable", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		categoryRepo := newFakeCategoryRepo()
		svc := NewEventCommandService(eventRepo, categoryRepo, testTimeout)

		e := eventRepo.add(domain.NewEvent("Draft", "draft", nil, nil, nil, now))
		categoryRepo.add(domain.NewCategory(e.ID, "Workshops", "#fff", nil, 10, now))

		err := svc.DeleteEvent(ctx, "draft")
		assert.ErrorIs(t, err, domain.ErrEventNotDeletable)
	})

	t.Run("active event is not deletable", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		svc := NewEventCommandService(eventRepo, newFakeCategoryRepo(), testTimeout)

		e := eventRepo.add(domain.NewEvent("Live", "live", nil, nil, nil, now))
		e.Activate(now)

		err := svc.DeleteEvent(ctx, "live")
		assert.ErrorIs(t, err, domain.ErrEventNotDeletable)
	})
}

func TestDuplicateEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	eventRepo := newFakeEventRepo()
	categoryRepo := newFakeCategoryRepo()
	svc := NewEventCommandService(eventRepo, categoryRepo, testTimeout)

	desc := "the original"
	src := eventRepo.add(domain.NewEvent("Original", "original", &desc, nil, nil, now))
	categoryRepo.add(domain.NewCategory(src.ID, "Talks", "#0aa", nil, 10, now))
	categoryRepo.add(domain.NewCategory(src.ID, "Workshops", "#a0a", nil, 20, now))

	t.Run("copies categories and records the source", func(t *testing.T) {
		dup, err := svc.DuplicateEvent(ctx, "original", "Original Copy", true, false)
		require.NoError(t, err)
		assert.Equal(t, "original-copy", dup.Slug)
		require.NotNil(t, dup.TemplateSourceID)
		assert.Equal(t, src.ID, *dup.TemplateSourceID)

		copied, err := categoryRepo.ListByEvent(ctx, dup.ID)
		require.NoError(t, err)
		require.Len(t, copied, 2)
		assert.Equal(t, "Talks", copied[0].Name)
		assert.Equal(t, 10, copied[0].SortOrder)
		assert.Equal(t, "Workshops", copied[1].Name)
	})

	t.Run("without category copy the new event is empty", func(t *testing.T) {
		dup, err := svc.DuplicateEvent(ctx, "original", "Bare Copy", false, true)
		require.NoError(t, err)
		assert.True(t, dup.IsTemplate)

		copied, err := categoryRepo.ListByEvent(ctx, dup.ID)
		require.NoError(t, err)
		assert.Empty(t, copied)
	})

	t.Run("unknown source yields not found", func(t *testing.T) {
		_, err := svc.DuplicateEvent(ctx, "missing", "Copy", false, false)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBulkActions(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	setup := func() (*fakeEventRepo, *fakeCategoryRepo, domain.EventCommandService) {
		eventRepo := newFakeEventRepo()
		categoryRepo := newFakeCategoryRepo()
		return eventRepo, categoryRepo, NewEventCommandService(eventRepo, categoryRepo, testTimeout)
	}

	t.Run("activates a batch of drafts", func(t *testing.T) {
		eventRepo, _, svc := setup()
		a := eventRepo.add(domain.NewEvent("A", "a", nil, nil, nil, now))
		b := eventRepo.add(domain.NewEvent("B", "b", nil, nil, nil, now))

		result, err := svc.BulkActions(ctx, []string{a.ID, b.ID}, "activate")
		require.NoError(t, err)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Empty(t, result.ErrorMessages)
		assert.Equal(t, domain.EventStatusActive, eventRepo.events[a.ID].Status)
		assert.Equal(t, domain.EventStatusActive, eventRepo.events[b.ID].Status)
	})

	t.Run("mixed delete batch reports per-event failures", func(t *testing.T) {
		eventRepo, categoryRepo, svc := setup()
		empty := eventRepo.add(domain.NewEvent("Empty Draft", "empty", nil, nil, nil, now))
		full := eventRepo.add(domain.NewEvent("Full Draft", "full", nil, nil, nil, now))
		categoryRepo.add(domain.NewCategory(full.ID, "Talks", "#0aa", nil, 10, now))

		result, err := svc.BulkActions(ctx, []string{empty.ID, full.ID}, "delete")
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		require.Len(t, result.ErrorMessages, 1)
		assert.Contains(t, result.ErrorMessages[0], "Full Draft")

		_, err = eventRepo.GetByID(ctx, empty.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = eventRepo.GetByID(ctx, full.ID)
		assert.NoError(t, err)
	})

	t.Run("unresolvable ID aborts the whole batch", func(t *testing.T) {
		eventRepo, _, svc := setup()
		a := eventRepo.add(domain.NewEvent("A", "a", nil, nil, nil, now))

		result, err := svc.BulkActions(ctx, []string{a.ID, "ghost"}, "activate")
		require.NoError(t, err)
		assert.Zero(t, result.SuccessCount)
		require.Len(t, result.ErrorMessages, 1)
		assert.Contains(t, result.ErrorMessages[0], "not found")
		assert.Equal(t, domain.EventStatusDraft, eventRepo.events[a.ID].Status, "nothing applied")
	})

	t.Run("empty selection and unknown action are reported, not errors", func(t *testing.T) {
		_, _, svc := setup()

		result, err := svc.BulkActions(ctx, nil, "activate")
		require.NoError(t, err)
		assert.Zero(t, result.SuccessCount)
		require.Len(t, result.ErrorMessages, 1)

		result, err = svc.BulkActions(ctx, []string{"x"}, "explode")
		require.NoError(t, err)
		assert.Zero(t, result.SuccessCount)
		assert.Contains(t, result.ErrorMessages[0], "unknown action")
	})
}

func TestToggleTemplate(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	svc := NewEventCommandService(eventRepo, newFakeCategoryRepo(), testTimeout)

	eventRepo.add(domain.NewEvent("Base", "base", nil, nil, nil, time.Now()))

	event, err := svc.ToggleTemplate(ctx, "base")
	require.NoError(t, err)
	assert.True(t, event.IsTemplate)

	event, err = svc.ToggleTemplate(ctx, "base")
	require.NoError(t, err)
	assert.False(t, event.IsTemplate)
}
