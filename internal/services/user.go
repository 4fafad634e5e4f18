package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

const (
	minPasswordLen  = 8
	tempPasswordLen = 16
	tokenExpiry     = 12 * time.Hour
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var tempPasswordAlphabet = []rune("abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789")

type userService struct {
	userRepo       domain.BackofficeUserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	emailService   domain.EmailService
	loginURL       string
	contextTimeout time.Duration
}

func NewUserService(userRepo domain.BackofficeUserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, emailService domain.EmailService, loginURL string, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		emailService:   emailService,
		loginURL:       loginURL,
		contextTimeout: timeout,
	}
}

// Login verifies credentials and returns a bearer token with the user. Unknown
// email, wrong password, and deactivated accounts all yield
// ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.BackofficeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("stamp last login: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// CreateUser creates a backoffice account with a generated temporary password
// and emails the credentials. The account starts with MustChangePassword set.
func (s *userService) CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.BackofficeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewBackofficeUser(email, strings.TrimSpace(name), hash, role, time.Now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeCredentials(ctx, domain.WelcomeCredentialsEmailData{
		Name:              user.Name,
		Email:             user.Email,
		TemporaryPassword: tempPassword,
		LoginURL:          s.loginURL,
	}); err != nil {
		// The account exists either way; a failed email is reported, not rolled back.
		return user, fmt.Errorf("send welcome email: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user.PasswordHash = hash
	user.MustChangePassword = false
	user.PasswordChangedAt = &now
	return s.userRepo.Update(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.BackofficeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]*domain.BackofficeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.List(ctx)
}

func (s *userService) SetActive(ctx context.Context, userID string, active bool) (*domain.BackofficeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func generateTempPassword() (string, error) {
	b := make([]rune, tempPasswordLen)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := 0; i < tempPasswordLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}
