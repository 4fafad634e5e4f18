package domain

import (
	"context"
	"time"
)

// UserRole is the role of a backoffice user.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
)

// ParseUserRole returns the UserRole for s, or false if s is not a known role.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleModerator:
		return UserRole(s), true
	}
	return "", false
}

// CanManageEvents reports whether the role may create and manage events.
func (r UserRole) CanManageEvents() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may manage backoffice users.
func (r UserRole) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanModerate reports whether the role may moderate posts. Both roles can.
func (r UserRole) CanModerate() bool {
	return true
}

// CanExport reports whether the role may export event data. Both roles can.
func (r UserRole) CanExport() bool {
	return true
}

// BackofficeUser is an organizer or moderator account. New accounts start with a
// generated temporary password and MustChangePassword set.
type BackofficeUser struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	PasswordHash       string     `json:"-"`
	Role               UserRole   `json:"role"`
	IsActive           bool       `json:"is_active"`
	MustChangePassword bool       `json:"must_change_password"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	PasswordChangedAt  *time.Time `json:"password_changed_at"`
}

// NewBackofficeUser returns an active user that must change their password on
// first login.
func NewBackofficeUser(email, name, passwordHash string, role UserRole, createdAt time.Time) *BackofficeUser {
	return &BackofficeUser{
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		Role:               role,
		IsActive:           true,
		MustChangePassword: true,
		CreatedAt:          createdAt,
	}
}

// BackofficeUserRepository is the persistence port for backoffice users.
type BackofficeUserRepository interface {
	Create(ctx context.Context, user *BackofficeUser) error
	Update(ctx context.Context, user *BackofficeUser) error
	GetByID(ctx context.Context, id string) (*BackofficeUser, error)
	GetByEmail(ctx context.Context, email string) (*BackofficeUser, error)
	List(ctx context.Context) ([]*BackofficeUser, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed session tokens for backoffice users.
type TokenIssuer interface {
	Issue(userID, email string, role UserRole, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID and role.
type TokenVerifier interface {
	Verify(token string) (userID string, role UserRole, err error)
}

// UserService manages backoffice accounts and login.
type UserService interface {
	// Login verifies credentials, stamps LastLoginAt, and returns a bearer token
	// with the user. Inactive users get ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *BackofficeUser, error)
	// CreateUser creates an account with a generated temporary password and emails
	// it to the new user.
	CreateUser(ctx context.Context, email, name string, role UserRole) (*BackofficeUser, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	GetByID(ctx context.Context, id string) (*BackofficeUser, error)
	List(ctx context.Context) ([]*BackofficeUser, error)
	SetActive(ctx context.Context, userID string, active bool) (*BackofficeUser, error)
}
