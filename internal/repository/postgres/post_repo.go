package postgres

import (
	"context"
	"database/sql"
	"errors"

	"topicmatcher/internal/domain"
)

const postColumns = `id, event_id, category_id, title, content, author_name, author_email, show_author_name, privacy_accepted, status, created_at, updated_at, moderated_at, moderated_by, moderation_notes, ip_address, user_agent`

type postRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) domain.PostRepository {
	return &postRepository{
		DB: db,
	}
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (event_id, category_id, title, content, author_name, author_email,
			show_author_name, privacy_accepted, status, created_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.EventID, p.CategoryID, p.Title, p.Content, p.AuthorName, p.AuthorEmail,
		p.ShowAuthorName, p.PrivacyAccepted, string(p.Status), p.CreatedAt,
		p.IPAddress, p.UserAgent,
	).Scan(&p.ID)
}

func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	query := `
		UPDATE posts
		SET status = $2, updated_at = $3, moderated_at = $4, moderated_by = $5, moderation_notes = $6
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.ID, string(p.Status), p.UpdatedAt, p.ModeratedAt, p.ModeratedBy, p.ModerationNotes,
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

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := scanPost(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE event_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *postRepository) ListByEventAndStatus(ctx context.Context, eventID string, status domain.PostStatus) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, eventID, string(status))
}

func (r *postRepository) ListApprovedByEvent(ctx context.Context, eventID string) ([]*domain.Post, error) {
	query := `
		SELECT p.id, p.event_id, p.category_id, p.title, p.content, p.author_name, p.author_email,
			p.show_author_name, p.privacy_accepted, p.status, p.created_at, p.updated_at,
			p.moderated_at, p.moderated_by, p.moderation_notes, p.ip_address, p.user_agent
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.event_id = $1 AND p.status = $2
		ORDER BY c.sort_order ASC, p.created_at DESC
	`
	return r.list(ctx, query, eventID, string(domain.PostStatusApproved))
}

func (r *postRepository) ListSubmittedForModeration(ctx context.Context) ([]*domain.Post, error) {
	query := `
		SELECT p.id, p.event_id, p.category_id, p.title, p.content, p.author_name, p.author_email,
			p.show_author_name, p.privacy_accepted, p.status, p.created_at, p.updated_at,
			p.moderated_at, p.moderated_by, p.moderation_notes, p.ip_address, p.user_agent
		FROM posts p
		JOIN events e ON e.id = p.event_id
		WHERE p.status = $1 AND e.status = $2
		ORDER BY p.created_at ASC
	`
	return r.list(ctx, query, string(domain.PostStatusSubmitted), string(domain.EventStatusActive))
}

func (r *postRepository) ListRecentlyModerated(ctx context.Context, limit int) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE moderated_at IS NOT NULL
		ORDER BY moderated_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *postRepository) CountByEvent(ctx context.Context, eventID string) (domain.PostStatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'submitted'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM posts
		WHERE event_id = $1
	`
	var c domain.PostStatusCounts
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&c.Total, &c.Submitted, &c.Approved, &c.Rejected)
	if err != nil {
		return domain.PostStatusCounts{}, err
	}
	return c, nil
}

func (r *postRepository) CountByStatus(ctx context.Context, status domain.PostStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE status = $1`, string(status)).Scan(&count)
	return count, err
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var status string
	var authorNull, moderatedByNull, notesNull sql.NullString
	var updatedNull, moderatedAtNull sql.NullTime
	err := row.Scan(
		&p.ID, &p.EventID, &p.CategoryID, &p.Title, &p.Content, &authorNull, &p.AuthorEmail,
		&p.ShowAuthorName, &p.PrivacyAccepted, &status, &p.CreatedAt, &updatedNull,
		&moderatedAtNull, &moderatedByNull, &notesNull, &p.IPAddress, &p.UserAgent,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PostStatus(status)
	if authorNull.Valid {
		p.AuthorName = &authorNull.String
	}
	if updatedNull.Valid {
		p.UpdatedAt = &updatedNull.Time
	}
	if moderatedAtNull.Valid {
		p.ModeratedAt = &moderatedAtNull.Time
	}
	if moderatedByNull.Valid {
		p.ModeratedBy = &moderatedByNull.String
	}
	if notesNull.Valid {
		p.ModerationNotes = &notesNull.String
	}
	return p, nil
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
