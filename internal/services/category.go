package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

type categoryService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewCategoryService(eventRepo domain.EventRepository, categoryRepo domain.CategoryRepository, timeout time.Duration) domain.CategoryService {
	return &categoryService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		contextTimeout: timeout,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, eventSlug, name, color string, description *string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	// Pre-check for a friendlier error; the unique index on (event_id, name)
	// still backs this up.
	if _, err := s.categoryRepo.GetByEventAndName(ctx, event.ID, name); err == nil {
		return nil, domain.ErrDuplicateCategoryName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check duplicate name: %w", err)
	}

	sortOrder, err := s.categoryRepo.NextSortOrder(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("next sort order: %w", err)
	}

	category := domain.NewCategory(event.ID, name, color, description, sortOrder, time.Now())
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, eventSlug, categoryID string, name *string, color *string, description *string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, category, err := s.resolve(ctx, eventSlug, categoryID)
	if err != nil {
		return nil, err
	}

	if name != nil && strings.TrimSpace(*name) != category.Name {
		newName := strings.TrimSpace(*name)
		if newName == "" {
			return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
		}
		if existing, err := s.categoryRepo.GetByEventAndName(ctx, event.ID, newName); err == nil && existing.ID != category.ID {
			return nil, domain.ErrDuplicateCategoryName
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check duplicate name: %w", err)
		}
		category.Name = newName
	}
	if color != nil {
		category.Color = *color
	}
	if description != nil {
		category.Description = description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category unless it still has approved posts.
func (s *categoryService) DeleteCategory(ctx context.Context, eventSlug, categoryID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, category, err := s.resolve(ctx, eventSlug, categoryID)
	if err != nil {
		return err
	}

	approved, err := s.categoryRepo.CountApprovedPosts(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("count approved posts: %w", err)
	}
	if approved > 0 {
		return fmt.Errorf("%w: %d approved posts", domain.ErrCategoryHasApprovedPosts, approved)
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}

func (s *categoryService) ListCategories(ctx context.Context, eventSlug string) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByEvent(ctx, event.ID)
}

// Reorder assigns sort orders 10, 20, 30, ... following the order of orderedIDs
// and applies them in one transaction. Every ID must belong to the event.
func (s *categoryService) Reorder(ctx context.Context, eventSlug string, orderedIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return err
	}
	existing, err := s.categoryRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	owned := make(map[string]bool, len(existing))
	for _, c := range existing {
		owned[c.ID] = true
	}

	sortOrders := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if !owned[id] {
			return fmt.Errorf("%w: category %s does not belong to event %s", domain.ErrInvalidInput, id, eventSlug)
		}
		sortOrders[id] = (i + 1) * domain.SortOrderStep
	}
	return s.categoryRepo.UpdateSortOrders(ctx, sortOrders)
}

func (s *categoryService) resolve(ctx context.Context, eventSlug, categoryID string) (*domain.Event, *domain.Category, error) {
	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, nil, err
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if category.EventID != event.ID {
		return nil, nil, domain.ErrNotFound
	}
	return event, category, nil
}
