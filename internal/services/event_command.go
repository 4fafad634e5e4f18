package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, replaces runs of non-alphanumerics with '-', and trims
// leading/trailing dashes. Uniqueness is established separately through
// EventRepository.GenerateUniqueSlug.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

type eventCommandService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewEventCommandService(eventRepo domain.EventRepository, categoryRepo domain.CategoryRepository, timeout time.Duration) domain.EventCommandService {
	return &eventCommandService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		contextTimeout: timeout,
	}
}

func (s *eventCommandService) CreateEvent(ctx context.Context, name, slugBase string, description *string, eventDate *time.Time, location *string, makeTemplate bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	base := Slugify(slugBase)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	slug, err := s.eventRepo.GenerateUniqueSlug(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("generate unique slug: %w", err)
	}

	event := domain.NewEvent(name, slug, description, eventDate, location, time.Now())
	if makeTemplate {
		event.IsTemplate = true
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventCommandService) UpdateEvent(ctx context.Context, slug string, name *string, description *string, eventDate *time.Time, location *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if name != nil {
		event.SetName(*name, now)
	}
	if description != nil {
		event.SetDescription(description, now)
	}
	if eventDate != nil {
		event.SetEventDate(eventDate, now)
	}
	if location != nil {
		event.SetLocation(location, now)
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventCommandService) Activate(ctx context.Context, slug string) (*domain.Event, error) {
	return s.transition(ctx, slug, (*domain.Event).Activate)
}

func (s *eventCommandService) Close(ctx context.Context, slug string) (*domain.Event, error) {
	return s.transition(ctx, slug, (*domain.Event).Close)
}

func (s *eventCommandService) Archive(ctx context.Context, slug string) (*domain.Event, error) {
	return s.transition(ctx, slug, (*domain.Event).Archive)
}

// transition loads the event, applies a lifecycle method, and persists. The
// lifecycle methods themselves are silent no-ops for illegal transitions, so an
// "activate" on an already-active event succeeds without changing anything.
func (s *eventCommandService) transition(ctx context.Context, slug string, apply func(*domain.Event, time.Time)) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	apply(event, time.Now())
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("persist transition: %w", err)
	}
	return event, nil
}

func (s *eventCommandService) DeleteEvent(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	categoryCount, err := s.categoryRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if !event.IsDraftAndEmpty(categoryCount) {
		return domain.ErrEventNotDeletable
	}
	return s.eventRepo.Delete(ctx, event.ID)
}

func (s *eventCommandService) DuplicateEvent(ctx context.Context, sourceSlug, newName string, copyCategories, makeTemplate bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(newName) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	source, err := s.eventRepo.GetBySlug(ctx, sourceSlug)
	if err != nil {
		return nil, err
	}

	newSlug, err := s.eventRepo.GenerateUniqueSlug(ctx, Slugify(newName))
	if err != nil {
		return nil, fmt.Errorf("generate unique slug: %w", err)
	}

	now := time.Now()
	dup := source.Duplicate(newName, newSlug, now)
	if makeTemplate {
		dup.IsTemplate = true
	}
	if err := s.eventRepo.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("create duplicate: %w", err)
	}

	if copyCategories {
		categories, err := s.categoryRepo.ListByEvent(ctx, source.ID)
		if err != nil {
			return nil, fmt.Errorf("list source categories: %w", err)
		}
		for _, c := range categories {
			clone := c.CloneFor(dup.ID, now)
			if err := s.categoryRepo.Create(ctx, clone); err != nil {
				return nil, fmt.Errorf("copy category %q: %w", c.Name, err)
			}
		}
	}
	return dup, nil
}

func (s *eventCommandService) ToggleTemplate(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	event.SetTemplate(!event.IsTemplate, time.Now())
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("toggle template: %w", err)
	}
	return event, nil
}

// BulkActions applies one action to a batch of events. If any requested ID does
// not resolve, the whole batch is aborted with zero successes. Otherwise events
// are processed independently: failures are collected as messages and do not
// block the rest. All successful mutations are committed in a single transaction
// at the end.
func (s *eventCommandService) BulkActions(ctx context.Context, eventIDs []string, action string) (*domain.BulkActionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(eventIDs) == 0 {
		return &domain.BulkActionResult{ErrorMessages: []string{"no events selected"}}, nil
	}
	if action != "activate" && action != "close" && action != "archive" && action != "delete" {
		return &domain.BulkActionResult{ErrorMessages: []string{fmt.Sprintf("unknown action %q", action)}}, nil
	}

	events, err := s.eventRepo.ListByIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve events: %w", err)
	}
	if len(events) != len(eventIDs) {
		return &domain.BulkActionResult{ErrorMessages: []string{"some events were not found"}}, nil
	}

	result := &domain.BulkActionResult{ErrorMessages: []string{}}
	now := time.Now()
	var updates []*domain.Event
	var deleteIDs []string

	for _, event := range events {
		switch action {
		case "activate":
			event.Activate(now)
			updates = append(updates, event)
			result.SuccessCount++
		case "close":
			event.Close(now)
			updates = append(updates, event)
			result.SuccessCount++
		case "archive":
			event.Archive(now)
			updates = append(updates, event)
			result.SuccessCount++
		case "delete":
			categoryCount, err := s.categoryRepo.CountByEvent(ctx, event.ID)
			if err != nil {
				result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("event %q: %v", event.Name, err))
				continue
			}
			if !event.IsDraftAndEmpty(categoryCount) {
				result.ErrorMessages = append(result.ErrorMessages,
					fmt.Sprintf("event %q cannot be deleted (not an empty draft)", event.Name))
				continue
			}
			deleteIDs = append(deleteIDs, event.ID)
			result.SuccessCount++
		}
	}

	if err := s.eventRepo.ApplyBulk(ctx, updates, deleteIDs); err != nil {
		return nil, fmt.Errorf("apply bulk action: %w", err)
	}
	return result, nil
}
