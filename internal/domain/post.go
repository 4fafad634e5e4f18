package domain

import (
	"context"
	"time"
)

// Post is a single submission within a category, subject to moderation before it
// becomes publicly visible. It carries submitter PII and an audit trail of the
// moderation decision.
type Post struct {
	ID              string     `json:"id"`
	EventID         string     `json:"event_id"`
	CategoryID      string     `json:"category_id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	AuthorName      *string    `json:"author_name"`
	AuthorEmail     string     `json:"author_email"`
	ShowAuthorName  bool       `json:"show_author_name"`
	PrivacyAccepted bool       `json:"privacy_accepted"`
	Status          PostStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	ModeratedAt     *time.Time `json:"moderated_at"`
	ModeratedBy     *string    `json:"moderated_by"`
	ModerationNotes *string    `json:"moderation_notes"`
	IPAddress       string     `json:"-"`
	UserAgent       string     `json:"-"`
}

// NewPost returns a submitted Post. PrivacyAccepted is set true unconditionally:
// consent must have been validated by the submission boundary before a Post is
// constructed (the submission service rejects unconsented requests with
// ErrInvalidInput before reaching this constructor).
func NewPost(eventID, categoryID, title, content string, authorName *string, authorEmail string, showAuthorName bool, ipAddress, userAgent string, createdAt time.Time) *Post {
	return &Post{
		EventID:         eventID,
		CategoryID:      categoryID,
		Title:           title,
		Content:         content,
		AuthorName:      authorName,
		AuthorEmail:     authorEmail,
		ShowAuthorName:  showAuthorName,
		PrivacyAccepted: true,
		Status:          PostStatusSubmitted,
		IPAddress:       ipAddress,
		UserAgent:       userAgent,
		CreatedAt:       createdAt,
	}
}

// Approve sets the post approved and records the moderator. Silent no-op when the
// post cannot be moderated in its current status.
func (p *Post) Approve(moderator string, now time.Time) {
	if !p.Status.CanBeModerated() {
		return
	}
	p.Status = PostStatusApproved
	p.ModeratedBy = &moderator
	p.ModeratedAt = &now
	p.touch(now)
}

// Reject sets the post rejected and records the moderator and optional notes.
// Silent no-op when the post cannot be moderated in its current status. Note the
// asymmetry with Approve: an approved post may still be rejected on re-review, but
// a rejected post cannot be brought back to approved through moderation.
func (p *Post) Reject(moderator string, notes *string, now time.Time) {
	if !p.Status.CanBeModerated() {
		return
	}
	p.Status = PostStatusRejected
	p.ModeratedBy = &moderator
	p.ModeratedAt = &now
	p.ModerationNotes = notes
	p.touch(now)
}

// ArchivePost archives the post administratively. Unlike moderation decisions this
// is legal from any status.
func (p *Post) ArchivePost(now time.Time) {
	p.Status = PostStatusArchived
	p.touch(now)
}

func (p *Post) IsApproved() bool        { return p.Status == PostStatusApproved }
func (p *Post) IsPubliclyVisible() bool { return p.Status.IsPubliclyVisible() }
func (p *Post) CanBeModerated() bool    { return p.Status.CanBeModerated() }

func (p *Post) touch(now time.Time) {
	p.UpdatedAt = &now
}

// PostStatusCounts holds per-status post totals for an event.
type PostStatusCounts struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}

// PostRepository is the persistence port for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Post, error)
	ListByEventAndStatus(ctx context.Context, eventID string, status PostStatus) ([]*Post, error)
	// ListApprovedByEvent returns approved posts ordered by category sort order,
	// then newest first, for the public event page.
	ListApprovedByEvent(ctx context.Context, eventID string) ([]*Post, error)
	// ListSubmittedForModeration returns submitted posts belonging to active
	// events, oldest first.
	ListSubmittedForModeration(ctx context.Context) ([]*Post, error)
	ListRecentlyModerated(ctx context.Context, limit int) ([]*Post, error)
	CountByEvent(ctx context.Context, eventID string) (PostStatusCounts, error)
	CountByStatus(ctx context.Context, status PostStatus) (int, error)
	Count(ctx context.Context) (int, error)
}

// CategoryPosts groups a category with its approved posts for public display.
type CategoryPosts struct {
	Category *Category `json:"category"`
	Posts    []*Post   `json:"posts"`
}

// PostService handles public post submission and backoffice moderation.
type PostService interface {
	// SubmitPost creates a post on an event that allows new posts. Consent is
	// required; meta carries the submitter's IP and User-Agent for the audit trail.
	SubmitPost(ctx context.Context, eventSlug, categoryID, title, content string, authorName *string, authorEmail string, showAuthorName, privacyAccepted bool, meta RequestMeta) (*Post, error)
	ApprovePost(ctx context.Context, postID, moderator string) (*Post, error)
	RejectPost(ctx context.Context, postID, moderator string, notes *string) (*Post, error)
	ArchivePost(ctx context.Context, postID string) (*Post, error)
	GetPost(ctx context.Context, postID string) (*Post, error)
	// ApprovedPostsGroupedByCategory returns the public view of an event: its
	// categories in sort order, each with approved posts newest first.
	ApprovedPostsGroupedByCategory(ctx context.Context, eventID string) ([]*CategoryPosts, error)
	ListByEvent(ctx context.Context, eventSlug string, status *PostStatus) ([]*Post, PostStatusCounts, error)
	ModerationQueue(ctx context.Context) ([]*Post, error)
}
