package postgres

import (
	"context"
	"database/sql"

	"topicmatcher/internal/domain"
)

type interestRepository struct {
	DB *sql.DB
}

func NewInterestRepository(db *sql.DB) domain.InterestRepository {
	return &interestRepository{
		DB: db,
	}
}

func (r *interestRepository) Create(ctx context.Context, i *domain.Interest) error {
	query := `
		INSERT INTO interests (post_id, name, email, message, privacy_accepted, created_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		i.PostID, i.Name, i.Email, i.Message, i.PrivacyAccepted, i.CreatedAt,
		i.IPAddress, i.UserAgent,
	).Scan(&i.ID)
	// The unique index on (post_id, email) is the authoritative duplicate guard;
	// the service-level pre-check only narrows the race window.
	if isUniqueViolation(err) {
		return domain.ErrDuplicateInterest
	}
	return err
}

func (r *interestRepository) ListByPost(ctx context.Context, postID string) ([]*domain.Interest, error) {
	query := `
		SELECT id, post_id, name, email, message, privacy_accepted, created_at, ip_address, user_agent
		FROM interests
		WHERE post_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	interests := make([]*domain.Interest, 0)
	for rows.Next() {
		i := &domain.Interest{}
		var messageNull, ipNull, uaNull sql.NullString
		if err := rows.Scan(&i.ID, &i.PostID, &i.Name, &i.Email, &messageNull, &i.PrivacyAccepted, &i.CreatedAt, &ipNull, &uaNull); err != nil {
			return nil, err
		}
		if messageNull.Valid {
			i.Message = &messageNull.String
		}
		if ipNull.Valid {
			i.IPAddress = &ipNull.String
		}
		if uaNull.Valid {
			i.UserAgent = &uaNull.String
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}

func (r *interestRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM interests WHERE post_id = $1`, postID).Scan(&count)
	return count, err
}

func (r *interestRepository) IsDuplicate(ctx context.Context, postID, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM interests WHERE post_id = $1 AND email = $2)`,
		postID, email,
	).Scan(&exists)
	return exists, err
}

func (r *interestRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM interests`).Scan(&count)
	return count, err
}
