package domain

import (
	"context"
	"time"
)

// DashboardStats are the backoffice dashboard totals.
type DashboardStats struct {
	TotalEvents       int `json:"total_events"`
	TotalPosts        int `json:"total_posts"`
	PendingModeration int `json:"pending_moderation"`
	ApprovedPosts     int `json:"approved_posts"`
	RejectedPosts     int `json:"rejected_posts"`
	TotalInterests    int `json:"total_interests"`
}

// ModerationActivity is one entry in the recent-activity feed: a post that was
// recently approved or rejected.
type ModerationActivity struct {
	PostID    string     `json:"post_id"`
	Title     string     `json:"title"`
	Status    PostStatus `json:"status"`
	Moderator *string    `json:"moderator"`
	At        time.Time  `json:"at"`
}

// ModerationQueryService provides dashboard statistics and activity feeds.
type ModerationQueryService interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	PendingPosts(ctx context.Context, limit int) ([]*Post, error)
	RecentActivity(ctx context.Context, limit int) ([]ModerationActivity, error)
}
