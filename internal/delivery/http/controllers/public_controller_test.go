package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeEventQueryService implements domain.EventQueryService for handler tests.
type fakeEventQueryService struct {
	event  *domain.Event
	events []*domain.Event
	err    error
}

func (f *fakeEventQueryService) GetBySlug(_ context.Context, _ string) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeEventQueryService) ListPubliclyVisible(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventQueryService) ListActive(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventQueryService) ListExportable(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventQueryService) ListForBackoffice(_ context.Context, _ *domain.EventStatus) ([]*domain.Event, domain.EventStatusCounts, error) {
	return f.events, domain.EventStatusCounts{}, f.err
}

func (f *fakeEventQueryService) ListTemplates(_ context.Context) ([]*domain.Event, []*domain.Event, error) {
	return nil, f.events, f.err
}

// fakeCategoryService implements domain.CategoryService for handler tests.
type fakeCategoryService struct {
	categories []*domain.Category
	err        error
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, _, _, _ string, _ *string) (*domain.Category, error) {
	return nil, f.err
}

func (f *fakeCategoryService) UpdateCategory(_ context.Context, _, _ string, _, _, _ *string) (*domain.Category, error) {
	return nil, f.err
}

func (f *fakeCategoryService) DeleteCategory(_ context.Context, _, _ string) error {
	return f.err
}

func (f *fakeCategoryService) ListCategories(_ context.Context, _ string) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCategoryService) Reorder(_ context.Context, _ string, _ []string) error {
	return f.err
}

// fakePostService implements domain.PostService for handler tests.
type fakePostService struct {
	post       *domain.Post
	grouped    []*domain.CategoryPosts
	submitErr  error
	groupedErr error
	lastMeta   domain.RequestMeta
}

func (f *fakePostService) SubmitPost(_ context.Context, _, _, _, _ string, _ *string, _ string, _, _ bool, meta domain.RequestMeta) (*domain.Post, error) {
	f.lastMeta = meta
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.post, nil
}

func (f *fakePostService) ApprovePost(_ context.Context, _, _ string) (*domain.Post, error) {
	return f.post, nil
}

func (f *fakePostService) RejectPost(_ context.Context, _, _ string, _ *string) (*domain.Post, error) {
	return f.post, nil
}

func (f *fakePostService) ArchivePost(_ context.Context, _ string) (*domain.Post, error) {
	return f.post, nil
}

func (f *fakePostService) GetPost(_ context.Context, _ string) (*domain.Post, error) {
	return f.post, nil
}

func (f *fakePostService) ApprovedPostsGroupedByCategory(_ context.Context, _ string) ([]*domain.CategoryPosts, error) {
	return f.grouped, f.groupedErr
}

func (f *fakePostService) ListByEvent(_ context.Context, _ string, _ *domain.PostStatus) ([]*domain.Post, domain.PostStatusCounts, error) {
	return nil, domain.PostStatusCounts{}, nil
}

func (f *fakePostService) ModerationQueue(_ context.Context) ([]*domain.Post, error) {
	return nil, nil
}

// fakeInterestService implements domain.InterestService for handler tests.
type fakeInterestService struct {
	interest *domain.Interest
	err      error
}

func (f *fakeInterestService) SubmitInterest(_ context.Context, _, _, _ string, _ bool, _ *string, _ domain.RequestMeta) (*domain.Interest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.interest, nil
}

func (f *fakeInterestService) IsDuplicateInterest(_ context.Context, _, _ string) (bool, error) {
	return false, f.err
}

func (f *fakeInterestService) ListByPost(_ context.Context, _ string) ([]*domain.Interest, error) {
	return nil, f.err
}

func (f *fakeInterestService) CountByPost(_ context.Context, _ string) (int, error) {
	return 0, f.err
}

func TestPublicController_GetEvent(t *testing.T) {
	activeEvent := &domain.Event{ID: "ev-1", Name: "GopherCon", Slug: "gophercon", Status: domain.EventStatusActive, CreatedAt: time.Now()}
	archivedEvent := &domain.Event{ID: "ev-2", Name: "Old", Slug: "old", Status: domain.EventStatusArchived, CreatedAt: time.Now()}

	tests := []struct {
		name         string
		slug         string
		events       *fakeEventQueryService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "visible event is returned",
			slug:       "gophercon",
			events:     &fakeEventQueryService{event: activeEvent},
			wantStatus: http.StatusOK,
		},
		{
			name:         "archived event is hidden",
			slug:         "old",
			events:       &fakeEventQueryService{event: archivedEvent},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "unknown slug",
			slug:         "missing",
			events:       &fakeEventQueryService{err: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPublicController(testLogger(), tt.events, &fakeCategoryService{}, &fakePostService{}, &fakeInterestService{})

			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.slug, nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestPublicController_SubmitPost(t *testing.T) {
	validBody := SubmitPostRequest{
		CategoryID:      "cat-1",
		Title:           "Generics",
		Content:         "Who wants to talk type parameters?",
		AuthorEmail:     "gopher@example.com",
		PrivacyAccepted: true,
	}

	tests := []struct {
		name         string
		body         any
		posts        *fakePostService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       validBody,
			posts:      &fakePostService{post: &domain.Post{ID: "post-1", Status: domain.PostStatusSubmitted}},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing consent is a bad request",
			body: SubmitPostRequest{
				CategoryID:  "cat-1",
				Title:       "Generics",
				Content:     "body",
				AuthorEmail: "gopher@example.com",
			},
			posts:        &fakePostService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "closed event is forbidden",
			body:         validBody,
			posts:        &fakePostService{submitErr: domain.ErrSubmissionsClosed},
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "unknown field is rejected",
			body:         map[string]any{"category_id": "cat-1", "bogus": true},
			posts:        &fakePostService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPublicController(testLogger(), &fakeEventQueryService{}, &fakeCategoryService{}, tt.posts, &fakeInterestService{})

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "http://test/events/gophercon/posts", bytes.NewReader(payload))
			req.SetPathValue("slug", "gophercon")
			req.Header.Set("X-Forwarded-For", "203.0.113.7")
			rr := httptest.NewRecorder()

			ctrl.SubmitPost(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			require.NotNil(t, tt.posts.lastMeta.IPAddress)
			assert.Equal(t, "203.0.113.7", *tt.posts.lastMeta.IPAddress)
		})
	}
}

func TestPublicController_CheckInterest(t *testing.T) {
	ctrl := NewPublicController(testLogger(), &fakeEventQueryService{}, &fakeCategoryService{}, &fakePostService{}, &fakeInterestService{})

	t.Run("missing email is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://test/posts/post-1/interests/check", nil)
		req.SetPathValue("postID", "post-1")
		rr := httptest.NewRecorder()

		ctrl.CheckInterest(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("reports the duplicate flag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://test/posts/post-1/interests/check?email=gopher%40example.com", nil)
		req.SetPathValue("postID", "post-1")
		rr := httptest.NewRecorder()

		ctrl.CheckInterest(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
	})
}

func TestPublicController_SubmitInterest(t *testing.T) {
	validBody := SubmitInterestRequest{
		Name:            "Gopher",
		Email:           "gopher@example.com",
		PrivacyAccepted: true,
	}

	tests := []struct {
		name         string
		interests    *fakeInterestService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			interests:  &fakeInterestService{interest: &domain.Interest{ID: "int-1"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "duplicate is a conflict",
			interests:    &fakeInterestService{err: domain.ErrDuplicateInterest},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "closed event is forbidden",
			interests:    &fakeInterestService{err: domain.ErrSubmissionsClosed},
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPublicController(testLogger(), &fakeEventQueryService{}, &fakeCategoryService{}, &fakePostService{}, tt.interests)

			payload, err := json.Marshal(validBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "http://test/posts/post-1/interests", bytes.NewReader(payload))
			req.SetPathValue("postID", "post-1")
			rr := httptest.NewRecorder()

			ctrl.SubmitInterest(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}
