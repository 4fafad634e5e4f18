package domain

import (
	"context"
	"time"
)

// RequestMeta carries optional client metadata captured at the web boundary and
// passed explicitly into submission services (never read from ambient state).
// Stored for the GDPR audit trail only; it has no behavioral weight.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

// Interest is a visitor's "I'm interested" declaration on a post. (PostID, Email)
// is unique; the storage layer enforces it as the authoritative guard and the
// service pre-checks it for friendlier reporting. Interests are never mutated and
// are deleted only by cascade with their post.
type Interest struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Message         *string   `json:"message"`
	PrivacyAccepted bool      `json:"privacy_accepted"`
	CreatedAt       time.Time `json:"created_at"`
	IPAddress       *string   `json:"-"`
	UserAgent       *string   `json:"-"`
}

// NewInterest returns an Interest bound to a post.
func NewInterest(postID, name, email string, privacyAccepted bool, message *string, meta RequestMeta, createdAt time.Time) *Interest {
	return &Interest{
		PostID:          postID,
		Name:            name,
		Email:           email,
		Message:         message,
		PrivacyAccepted: privacyAccepted,
		IPAddress:       meta.IPAddress,
		UserAgent:       meta.UserAgent,
		CreatedAt:       createdAt,
	}
}

// InterestRepository is the persistence port for interests.
type InterestRepository interface {
	Create(ctx context.Context, interest *Interest) error
	ListByPost(ctx context.Context, postID string) ([]*Interest, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	IsDuplicate(ctx context.Context, postID, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// InterestService handles public interest submission with duplicate prevention.
type InterestService interface {
	// SubmitInterest records an interest for the post. Fails with
	// ErrDuplicateInterest when the (post, email) pair already exists; the
	// storage-level unique index remains the authoritative guard against the
	// check-then-insert race.
	SubmitInterest(ctx context.Context, postID, name, email string, privacyAccepted bool, message *string, meta RequestMeta) (*Interest, error)
	IsDuplicateInterest(ctx context.Context, postID, email string) (bool, error)
	ListByPost(ctx context.Context, postID string) ([]*Interest, error)
	CountByPost(ctx context.Context, postID string) (int, error)
}
