package domain

import (
	"context"
	"time"
)

// SortOrderStep is the spacing between category sort orders. New categories get
// max(existing)+SortOrderStep so a category can be moved between two others
// without renumbering the rest.
const SortOrderStep = 10

// Category is a named bucket within an event that posts are submitted into.
// (EventID, Name) is unique; the storage layer enforces it.
type Category struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategory returns a Category bound to the given event. There are no orphan
// categories: the event ID is required at construction.
func NewCategory(eventID, name, color string, description *string, sortOrder int, createdAt time.Time) *Category {
	return &Category{
		EventID:     eventID,
		Name:        name,
		Color:       color,
		Description: description,
		SortOrder:   sortOrder,
		CreatedAt:   createdAt,
	}
}

// CloneFor returns a copy of the category bound to another event, used when
// duplicating an event with its categories.
func (c *Category) CloneFor(eventID string, createdAt time.Time) *Category {
	return NewCategory(eventID, c.Name, c.Color, c.Description, c.SortOrder, createdAt)
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByEventAndName(ctx context.Context, eventID, name string) (*Category, error)
	// ListByEvent returns the event's categories ordered by sort order, then name.
	ListByEvent(ctx context.Context, eventID string) ([]*Category, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// NextSortOrder returns max(existing sort order)+SortOrderStep for the event.
	NextSortOrder(ctx context.Context, eventID string) (int, error)
	// CountApprovedPosts returns the number of approved posts in the category.
	// A category with approved posts must not be deleted.
	CountApprovedPosts(ctx context.Context, categoryID string) (int, error)
	// UpdateSortOrders applies a full replacement mapping of category ID to sort
	// order in a single transaction.
	UpdateSortOrders(ctx context.Context, sortOrders map[string]int) error
}

// CategoryService manages categories within an event.
type CategoryService interface {
	CreateCategory(ctx context.Context, eventSlug, name, color string, description *string) (*Category, error)
	UpdateCategory(ctx context.Context, eventSlug, categoryID string, name *string, color *string, description *string) (*Category, error)
	DeleteCategory(ctx context.Context, eventSlug, categoryID string) error
	ListCategories(ctx context.Context, eventSlug string) ([]*Category, error)
	// Reorder assigns sort orders 10, 20, 30, ... following the given ID order.
	Reorder(ctx context.Context, eventSlug string, orderedIDs []string) error
}
