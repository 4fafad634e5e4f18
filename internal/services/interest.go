package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

type interestService struct {
	eventRepo      domain.EventRepository
	postRepo       domain.PostRepository
	interestRepo   domain.InterestRepository
	contextTimeout time.Duration
}

func NewInterestService(eventRepo domain.EventRepository, postRepo domain.PostRepository, interestRepo domain.InterestRepository, timeout time.Duration) domain.InterestService {
	return &interestService{
		eventRepo:      eventRepo,
		postRepo:       postRepo,
		interestRepo:   interestRepo,
		contextTimeout: timeout,
	}
}

// SubmitInterest records an interest declaration for a post. The duplicate
// pre-check closes most of the race between the caller's own check and the
// insert; the unique index on (post_id, email) catches the rest, so a concurrent
// duplicate also surfaces as ErrDuplicateInterest.
func (s *interestService) SubmitInterest(ctx context.Context, postID, name, email string, privacyAccepted bool, message *string, meta domain.RequestMeta) (*domain.Interest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, post.EventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if !event.AllowsInterests() || !post.IsPubliclyVisible() {
		return nil, domain.ErrSubmissionsClosed
	}
	if !privacyAccepted {
		return nil, fmt.Errorf("%w: privacy terms must be accepted", domain.ErrInvalidInput)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if name = strings.TrimSpace(name); name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	dup, err := s.interestRepo.IsDuplicate(ctx, post.ID, email)
	if err != nil {
		return nil, fmt.Errorf("check duplicate interest: %w", err)
	}
	if dup {
		return nil, domain.ErrDuplicateInterest
	}

	interest := domain.NewInterest(post.ID, name, email, privacyAccepted, message, meta, time.Now())
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

func (s *interestService) IsDuplicateInterest(ctx context.Context, postID, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.interestRepo.IsDuplicate(ctx, postID, strings.ToLower(strings.TrimSpace(email)))
}

func (s *interestService) ListByPost(ctx context.Context, postID string) ([]*domain.Interest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.interestRepo.ListByPost(ctx, postID)
}

func (s *interestService) CountByPost(ctx context.Context, postID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.interestRepo.CountByPost(ctx, postID)
}
