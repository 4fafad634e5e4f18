package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"topicmatcher/internal/domain"
)

const eventColumns = `id, name, description, slug, status, event_date, location, is_template, template_source_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, slug, status, event_date, location, is_template, template_source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Slug, string(e.Status), e.EventDate, e.Location,
		e.IsTemplate, e.TemplateSourceID, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, slug = $4, status = $5, event_date = $6,
		    location = $7, is_template = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.Slug, string(e.Status), e.EventDate,
		e.Location, e.IsTemplate, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1) ORDER BY created_at DESC`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, string(status))
}

func (r *eventRepository) ListPubliclyVisible(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE status != $1 ORDER BY created_at DESC`
	return r.list(ctx, query, string(domain.EventStatusArchived))
}

func (r *eventRepository) ListExportable(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE status IN ($1, $2) ORDER BY created_at DESC`
	return r.list(ctx, query, string(domain.EventStatusClosed), string(domain.EventStatusArchived))
}

func (r *eventRepository) ListTemplates(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_template = true ORDER BY name ASC`
	return r.list(ctx, query)
}

func (r *eventRepository) ListNonTemplates(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_template = false ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *eventRepository) CountByStatus(ctx context.Context) (domain.EventStatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'closed'),
			COUNT(*) FILTER (WHERE status = 'archived')
		FROM events
	`
	var c domain.EventStatusCounts
	err := r.DB.QueryRowContext(ctx, query).Scan(&c.Total, &c.Draft, &c.Active, &c.Closed, &c.Archived)
	if err != nil {
		return domain.EventStatusCounts{}, err
	}
	return c, nil
}

// GenerateUniqueSlug returns base if no event uses it, otherwise base-1, base-2,
// ... for the first free suffix.
func (r *eventRepository) GenerateUniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		var exists bool
		err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1)`, slug).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// ApplyBulk persists updates and deletions from a bulk action in one transaction.
func (r *eventRepository) ApplyBulk(ctx context.Context, updates []*domain.Event, deleteIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE events
		SET name = $2, description = $3, slug = $4, status = $5, event_date = $6,
		    location = $7, is_template = $8, updated_at = $9
		WHERE id = $1
	`
	for _, e := range updates {
		if _, err := tx.ExecContext(ctx, updateQuery,
			e.ID, e.Name, e.Description, e.Slug, string(e.Status), e.EventDate,
			e.Location, e.IsTemplate, e.UpdatedAt,
		); err != nil {
			return fmt.Errorf("bulk update event %s: %w", e.ID, err)
		}
	}
	for _, id := range deleteIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
			return fmt.Errorf("bulk delete event %s: %w", id, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var descNull, locationNull, sourceNull sql.NullString
	var dateNull, updatedNull sql.NullTime
	err := row.Scan(
		&e.ID, &e.Name, &descNull, &e.Slug, &status, &dateNull, &locationNull,
		&e.IsTemplate, &sourceNull, &e.CreatedAt, &updatedNull,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if dateNull.Valid {
		e.EventDate = &dateNull.Time
	}
	if locationNull.Valid {
		e.Location = &locationNull.String
	}
	if sourceNull.Valid {
		e.TemplateSourceID = &sourceNull.String
	}
	if updatedNull.Valid {
		e.UpdatedAt = &updatedNull.Time
	}
	return e, nil
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
