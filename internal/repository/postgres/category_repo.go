package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"topicmatcher/internal/domain"
)

const categoryColumns = `id, event_id, name, description, color, sort_order, created_at`

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{
		DB: db,
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (event_id, name, description, color, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		c.EventID, c.Name, c.Description, c.Color, c.SortOrder, c.CreatedAt,
	).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateCategoryName
	}
	return err
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4, sort_order = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Description, c.Color, c.SortOrder)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateCategoryName
	}
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) GetByEventAndName(ctx context.Context, eventID, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE event_id = $1 AND name = $2`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, eventID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE event_id = $1
		ORDER BY sort_order ASC, name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

func (r *categoryRepository) NextSortOrder(ctx context.Context, eventID string) (int, error) {
	var max sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE event_id = $1`, eventID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return int(max.Int64) + domain.SortOrderStep, nil
}

func (r *categoryRepository) CountApprovedPosts(ctx context.Context, categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE category_id = $1 AND status = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, categoryID, string(domain.PostStatusApproved)).Scan(&count)
	return count, err
}

// UpdateSortOrders applies the full replacement mapping in one transaction, so a
// reorder is all-or-nothing.
func (r *categoryRepository) UpdateSortOrders(ctx context.Context, sortOrders map[string]int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for id, sortOrder := range sortOrders {
		if _, err := tx.ExecContext(ctx, `UPDATE categories SET sort_order = $2 WHERE id = $1`, id, sortOrder); err != nil {
			return fmt.Errorf("update sort order for category %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	var descNull sql.NullString
	err := row.Scan(&c.ID, &c.EventID, &c.Name, &descNull, &c.Color, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		c.Description = &descNull.String
	}
	return c, nil
}
