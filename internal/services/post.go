package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

type postService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	postRepo       domain.PostRepository
	contextTimeout time.Duration
}

func NewPostService(eventRepo domain.EventRepository, categoryRepo domain.CategoryRepository, postRepo domain.PostRepository, timeout time.Duration) domain.PostService {
	return &postService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		postRepo:       postRepo,
		contextTimeout: timeout,
	}
}

// SubmitPost creates a post from a public submission. The event must allow new
// posts and the submitter must have accepted the privacy terms; the form layer
// validates consent already, this check closes the gap for defense in depth.
func (s *postService) SubmitPost(ctx context.Context, eventSlug, categoryID, title, content string, authorName *string, authorEmail string, showAuthorName, privacyAccepted bool, meta domain.RequestMeta) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	if !event.AllowsNewPosts() {
		return nil, domain.ErrSubmissionsClosed
	}
	if !privacyAccepted {
		return nil, fmt.Errorf("%w: privacy terms must be accepted", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.EventID != event.ID {
		return nil, domain.ErrNotFound
	}

	ip := "127.0.0.1"
	if meta.IPAddress != nil {
		ip = *meta.IPAddress
	}
	ua := "Unknown"
	if meta.UserAgent != nil {
		ua = *meta.UserAgent
	}

	post := domain.NewPost(event.ID, category.ID, title, content, authorName, authorEmail, showAuthorName, ip, ua, time.Now())
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) ApprovePost(ctx context.Context, postID, moderator string) (*domain.Post, error) {
	return s.moderate(ctx, postID, func(p *domain.Post, now time.Time) {
		p.Approve(moderator, now)
	})
}

func (s *postService) RejectPost(ctx context.Context, postID, moderator string, notes *string) (*domain.Post, error) {
	return s.moderate(ctx, postID, func(p *domain.Post, now time.Time) {
		p.Reject(moderator, notes, now)
	})
}

// moderate applies a moderation decision. The aggregate methods are no-ops for
// posts that cannot be moderated; the service reports that as ErrNotModerable so
// the boundary can tell the moderator instead of silently succeeding.
func (s *postService) moderate(ctx context.Context, postID string, decide func(*domain.Post, time.Time)) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanBeModerated() {
		return nil, domain.ErrNotModerable
	}
	decide(post, time.Now())
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("persist moderation: %w", err)
	}
	return post, nil
}

func (s *postService) ArchivePost(ctx context.Context, postID string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.ArchivePost(time.Now())
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("archive post: %w", err)
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.postRepo.GetByID(ctx, postID)
}

// ApprovedPostsGroupedByCategory builds the public event page view: categories in
// sort order, each with its approved posts newest first. Categories without
// approved posts are omitted.
func (s *postService) ApprovedPostsGroupedByCategory(ctx context.Context, eventID string) ([]*domain.CategoryPosts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	posts, err := s.postRepo.ListApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list approved posts: %w", err)
	}

	byCategory := make(map[string][]*domain.Post)
	for _, p := range posts {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	grouped := make([]*domain.CategoryPosts, 0, len(categories))
	for _, c := range categories {
		if ps, ok := byCategory[c.ID]; ok {
			grouped = append(grouped, &domain.CategoryPosts{Category: c, Posts: ps})
		}
	}
	return grouped, nil
}

func (s *postService) ListByEvent(ctx context.Context, eventSlug string, status *domain.PostStatus) ([]*domain.Post, domain.PostStatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, domain.PostStatusCounts{}, err
	}

	var posts []*domain.Post
	if status != nil {
		posts, err = s.postRepo.ListByEventAndStatus(ctx, event.ID, *status)
	} else {
		posts, err = s.postRepo.ListByEvent(ctx, event.ID)
	}
	if err != nil {
		return nil, domain.PostStatusCounts{}, fmt.Errorf("list posts: %w", err)
	}

	counts, err := s.postRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, domain.PostStatusCounts{}, fmt.Errorf("count posts: %w", err)
	}
	return posts, counts, nil
}

func (s *postService) ModerationQueue(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.postRepo.ListSubmittedForModeration(ctx)
}
