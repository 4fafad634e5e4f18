package services

import (
	"context"
	"fmt"
	"time"

	"topicmatcher/internal/domain"
)

type eventQueryService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventQueryService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventQueryService {
	return &eventQueryService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventQueryService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetBySlug(ctx, slug)
}

func (s *eventQueryService) ListPubliclyVisible(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListPubliclyVisible(ctx)
}

func (s *eventQueryService) ListActive(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByStatus(ctx, domain.EventStatusActive)
}

func (s *eventQueryService) ListExportable(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListExportable(ctx)
}

// ListForBackoffice returns events (optionally filtered by status) together with
// per-status totals for the overview page.
func (s *eventQueryService) ListForBackoffice(ctx context.Context, status *domain.EventStatus) ([]*domain.Event, domain.EventStatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var events []*domain.Event
	var err error
	if status != nil {
		events, err = s.eventRepo.ListByStatus(ctx, *status)
	} else {
		events, err = s.eventRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, domain.EventStatusCounts{}, fmt.Errorf("list events: %w", err)
	}

	counts, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.EventStatusCounts{}, fmt.Errorf("count events: %w", err)
	}
	return events, counts, nil
}

// ListTemplates returns template events and regular events for the template
// management page.
func (s *eventQueryService) ListTemplates(ctx context.Context) ([]*domain.Event, []*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	templates, err := s.eventRepo.ListTemplates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list templates: %w", err)
	}
	regular, err := s.eventRepo.ListNonTemplates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list non-templates: %w", err)
	}
	return templates, regular, nil
}
