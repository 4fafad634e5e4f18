package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"topicmatcher/internal/domain"
)

const userColumns = `id, email, name, password_hash, role, is_active, must_change_password, created_at, last_login_at, password_changed_at`

type backofficeUserRepository struct {
	DB *sql.DB
}

func NewBackofficeUserRepository(db *sql.DB) domain.BackofficeUserRepository {
	return &backofficeUserRepository{
		DB: db,
	}
}

func (r *backofficeUserRepository) Create(ctx context.Context, u *domain.BackofficeUser) error {
	query := `
		INSERT INTO backoffice_users (email, name, password_hash, role, is_active, must_change_password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, string(u.Role), u.IsActive, u.MustChangePassword, u.CreatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *backofficeUserRepository) Update(ctx context.Context, u *domain.BackofficeUser) error {
	query := `
		UPDATE backoffice_users
		SET email = $2, name = $3, password_hash = $4, role = $5, is_active = $6,
		    must_change_password = $7, last_login_at = $8, password_changed_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.IsActive,
		u.MustChangePassword, u.LastLoginAt, u.PasswordChangedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
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

func (r *backofficeUserRepository) GetByID(ctx context.Context, id string) (*domain.BackofficeUser, error) {
	query := `SELECT ` + userColumns + ` FROM backoffice_users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *backofficeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.BackofficeUser, error) {
	query := `SELECT ` + userColumns + ` FROM backoffice_users WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *backofficeUserRepository) List(ctx context.Context) ([]*domain.BackofficeUser, error) {
	query := `SELECT ` + userColumns + ` FROM backoffice_users ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.BackofficeUser, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*domain.BackofficeUser, error) {
	u := &domain.BackofficeUser{}
	var role string
	var lastLoginNull, pwChangedNull sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.IsActive,
		&u.MustChangePassword, &u.CreatedAt, &lastLoginNull, &pwChangedNull,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	if lastLoginNull.Valid {
		u.LastLoginAt = &lastLoginNull.Time
	}
	if pwChangedNull.Valid {
		u.PasswordChangedAt = &pwChangedNull.Time
	}
	return u, nil
}

func (r *backofficeUserRepository) scanOne(row *sql.Row) (*domain.BackofficeUser, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
