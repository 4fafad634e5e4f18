package services

import (
	"context"
	"fmt"
	"time"

	"topicmatcher/internal/domain"
)

type moderationQueryService struct {
	eventRepo      domain.EventRepository
	postRepo       domain.PostRepository
	interestRepo   domain.InterestRepository
	contextTimeout time.Duration
}

func NewModerationQueryService(eventRepo domain.EventRepository, postRepo domain.PostRepository, interestRepo domain.InterestRepository, timeout time.Duration) domain.ModerationQueryService {
	return &moderationQueryService{
		eventRepo:      eventRepo,
		postRepo:       postRepo,
		interestRepo:   interestRepo,
		contextTimeout: timeout,
	}
}

func (s *moderationQueryService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventCounts, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count events: %w", err)
	}
	totalPosts, err := s.postRepo.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count posts: %w", err)
	}
	pending, err := s.postRepo.CountByStatus(ctx, domain.PostStatusSubmitted)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count pending: %w", err)
	}
	approved, err := s.postRepo.CountByStatus(ctx, domain.PostStatusApproved)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count approved: %w", err)
	}
	rejected, err := s.postRepo.CountByStatus(ctx, domain.PostStatusRejected)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count rejected: %w", err)
	}
	totalInterests, err := s.interestRepo.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count interests: %w", err)
	}

	return domain.DashboardStats{
		TotalEvents:       eventCounts.Total,
		TotalPosts:        totalPosts,
		PendingModeration: pending,
		ApprovedPosts:     approved,
		RejectedPosts:     rejected,
		TotalInterests:    totalInterests,
	}, nil
}

func (s *moderationQueryService) PendingPosts(ctx context.Context, limit int) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	posts, err := s.postRepo.ListSubmittedForModeration(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *moderationQueryService) RecentActivity(ctx context.Context, limit int) ([]domain.ModerationActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	posts, err := s.postRepo.ListRecentlyModerated(ctx, limit)
	if err != nil {
		return nil, err
	}
	activities := make([]domain.ModerationActivity, 0, len(posts))
	for _, p := range posts {
		at := p.CreatedAt
		if p.ModeratedAt != nil {
			at = *p.ModeratedAt
		}
		activities = append(activities, domain.ModerationActivity{
			PostID:    p.ID,
			Title:     p.Title,
			Status:    p.Status,
			Moderator: p.ModeratedBy,
			At:        at,
		})
	}
	return activities, nil
}
