package domain

import (
	"context"
	"time"
)

// Event is the aggregate root of the content-moderation domain: a conference (or
// similar gathering) that owns categories and, through them, posts.
//
// Owned collections are not held in memory; they are views resolved through the
// repositories by foreign key. TemplateSourceID is a weak self-reference: it is
// set to nil at the storage layer when the source event is deleted.
type Event struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      *string     `json:"description"`
	Slug             string      `json:"slug"`
	Status           EventStatus `json:"status"`
	EventDate        *time.Time  `json:"event_date"`
	Location         *string     `json:"location"`
	IsTemplate       bool        `json:"is_template"`
	TemplateSourceID *string     `json:"template_source_id"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        *time.Time  `json:"updated_at"`
}

// NewEvent returns a draft Event. ID is set by the repository on create. The slug
// must already be unique; callers generate it through EventRepository.GenerateUniqueSlug.
func NewEvent(name, slug string, description *string, eventDate *time.Time, location *string, createdAt time.Time) *Event {
	return &Event{
		Name:        name,
		Slug:        slug,
		Description: description,
		EventDate:   eventDate,
		Location:    location,
		Status:      EventStatusDraft,
		CreatedAt:   createdAt,
	}
}

// SetName updates the name and touches the event.
func (e *Event) SetName(name string, now time.Time) {
	e.Name = name
	e.touch(now)
}

// SetDescription updates the description and touches the event.
func (e *Event) SetDescription(description *string, now time.Time) {
	e.Description = description
	e.touch(now)
}

// SetSlug updates the slug and touches the event. Uniqueness is the caller's
// responsibility.
func (e *Event) SetSlug(slug string, now time.Time) {
	e.Slug = slug
	e.touch(now)
}

// SetEventDate updates the event date and touches the event.
func (e *Event) SetEventDate(date *time.Time, now time.Time) {
	e.EventDate = date
	e.touch(now)
}

// SetLocation updates the location and touches the event.
func (e *Event) SetLocation(location *string, now time.Time) {
	e.Location = location
	e.touch(now)
}

// SetTemplate flags or unflags the event as a reusable template.
func (e *Event) SetTemplate(isTemplate bool, now time.Time) {
	e.IsTemplate = isTemplate
	e.touch(now)
}

// Activate moves a draft event to active. In any other status it is a silent
// no-op: illegal transitions are not errors.
func (e *Event) Activate(now time.Time) {
	if e.Status == EventStatusDraft {
		e.Status = EventStatusActive
		e.touch(now)
	}
}

// Close moves an active event to closed. No-op otherwise.
func (e *Event) Close(now time.Time) {
	if e.Status == EventStatusActive {
		e.Status = EventStatusClosed
		e.touch(now)
	}
}

// Archive moves a closed event to archived. No-op otherwise.
func (e *Event) Archive(now time.Time) {
	if e.Status == EventStatusClosed {
		e.Status = EventStatusArchived
		e.touch(now)
	}
}

func (e *Event) IsPubliclyVisible() bool { return e.Status.IsPubliclyVisible() }
func (e *Event) AllowsSubmissions() bool { return e.Status.AllowsSubmissions() }
func (e *Event) AllowsNewPosts() bool    { return e.Status.AllowsNewPosts() }
func (e *Event) AllowsInterests() bool   { return e.Status.AllowsInterests() }
func (e *Event) AllowsModeration() bool  { return e.Status.AllowsModeration() }
func (e *Event) AllowsExport() bool      { return e.Status.AllowsExport() }

// IsDraftAndEmpty reports whether the event is a draft with no categories.
// categoryCount comes from the persistence port. Only such events may be deleted.
func (e *Event) IsDraftAndEmpty(categoryCount int) bool {
	return e.Status == EventStatusDraft && categoryCount == 0
}

// Duplicate returns a new draft Event derived from e: description and location are
// copied, the event date is reset, and the new event records e as its template
// source. The new slug must already be unique. Category copies are created
// separately by the caller (see Category.CloneFor).
func (e *Event) Duplicate(newName, newSlug string, createdAt time.Time) *Event {
	dup := NewEvent(newName, newSlug, e.Description, nil, e.Location, createdAt)
	sourceID := e.ID
	dup.TemplateSourceID = &sourceID
	return dup
}

func (e *Event) touch(now time.Time) {
	e.UpdatedAt = &now
}

// EventStatusCounts holds per-status event totals for the backoffice overview.
type EventStatusCounts struct {
	Total    int `json:"total"`
	Draft    int `json:"draft"`
	Active   int `json:"active"`
	Closed   int `json:"closed"`
	Archived int `json:"archived"`
}

// EventRepository is the persistence port for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListByStatus(ctx context.Context, status EventStatus) ([]*Event, error)
	ListPubliclyVisible(ctx context.Context) ([]*Event, error)
	ListExportable(ctx context.Context) ([]*Event, error)
	ListTemplates(ctx context.Context) ([]*Event, error)
	ListNonTemplates(ctx context.Context) ([]*Event, error)
	CountByStatus(ctx context.Context) (EventStatusCounts, error)
	// GenerateUniqueSlug returns base if free, otherwise base-1, base-2, ... for
	// the first free integer suffix.
	GenerateUniqueSlug(ctx context.Context, base string) (string, error)
	// ApplyBulk persists a batch of updated events and deletions in a single
	// transaction.
	ApplyBulk(ctx context.Context, updates []*Event, deleteIDs []string) error
}

// BulkActionResult reports the outcome of a bulk event action: how many events
// were changed and, per failed event, why it was skipped.
type BulkActionResult struct {
	SuccessCount  int      `json:"success_count"`
	ErrorMessages []string `json:"error_messages"`
}

// EventCommandService mutates events.
type EventCommandService interface {
	CreateEvent(ctx context.Context, name, slugBase string, description *string, eventDate *time.Time, location *string, makeTemplate bool) (*Event, error)
	UpdateEvent(ctx context.Context, slug string, name *string, description *string, eventDate *time.Time, location *string) (*Event, error)
	Activate(ctx context.Context, slug string) (*Event, error)
	Close(ctx context.Context, slug string) (*Event, error)
	Archive(ctx context.Context, slug string) (*Event, error)
	DeleteEvent(ctx context.Context, slug string) error
	DuplicateEvent(ctx context.Context, sourceSlug, newName string, copyCategories, makeTemplate bool) (*Event, error)
	ToggleTemplate(ctx context.Context, slug string) (*Event, error)
	BulkActions(ctx context.Context, eventIDs []string, action string) (*BulkActionResult, error)
}

// EventQueryService reads events.
type EventQueryService interface {
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListPubliclyVisible(ctx context.Context) ([]*Event, error)
	ListActive(ctx context.Context) ([]*Event, error)
	ListExportable(ctx context.Context) ([]*Event, error)
	ListForBackoffice(ctx context.Context, status *EventStatus) ([]*Event, EventStatusCounts, error)
	ListTemplates(ctx context.Context) ([]*Event, []*Event, error)
}
