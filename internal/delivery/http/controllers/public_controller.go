package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

// SubmitPostRequest is the request body for POST /events/{slug}/posts.
type SubmitPostRequest struct {
	CategoryID      string  `json:"category_id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	AuthorName      *string `json:"author_name"`
	AuthorEmail     string  `json:"author_email"`
	ShowAuthorName  bool    `json:"show_author_name"`
	PrivacyAccepted bool    `json:"privacy_accepted"`
}

// Validate implements Validator.
func (s SubmitPostRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.CategoryID) == "" {
		errs = append(errs, "category_id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(s.Content) == "" {
		errs = append(errs, "content is required")
	}
	email := strings.TrimSpace(strings.ToLower(s.AuthorEmail))
	if email == "" {
		errs = append(errs, "author_email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if !s.PrivacyAccepted {
		errs = append(errs, "privacy terms must be accepted")
	}
	return errs
}

// SubmitInterestRequest is the request body for POST /posts/{postID}/interests.
type SubmitInterestRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Message         *string `json:"message"`
	PrivacyAccepted bool    `json:"privacy_accepted"`
}

// Validate implements Validator.
func (s SubmitInterestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if !s.PrivacyAccepted {
		errs = append(errs, "privacy terms must be accepted")
	}
	return errs
}

// PublicEventResponse is the data payload for GET /events/{slug} (200).
// InterestCounts is keyed by post ID and covers the approved posts in Posts.
type PublicEventResponse struct {
	Event          *domain.Event           `json:"event"`
	Categories     []*domain.Category      `json:"categories"`
	Posts          []*domain.CategoryPosts `json:"posts"`
	InterestCounts map[string]int          `json:"interest_counts"`
}

// SubmittedPostResponse is the data payload for POST /events/{slug}/posts (201).
// Only the fields a submitter needs to see come back; moderation data stays private.
type SubmittedPostResponse struct {
	ID     string            `json:"id"`
	Status domain.PostStatus `json:"status"`
}

type PublicController struct {
	Logger     *slog.Logger
	Events     domain.EventQueryService
	Categories domain.CategoryService
	Posts      domain.PostService
	Interests  domain.InterestService
}

func NewPublicController(logger *slog.Logger, events domain.EventQueryService, categories domain.CategoryService, posts domain.PostService, interests domain.InterestService) *PublicController {
	return &PublicController{
		Logger:     logger,
		Events:     events,
		Categories: categories,
		Posts:      posts,
		Interests:  interests,
	}
}

// ListEvents godoc
// @Summary List public events
// @Description Returns all non-archived events, newest event date first.
// @Tags public
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *PublicController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListPubliclyVisible(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get a public event page
// @Description Returns the event, its categories in display order, approved posts grouped by category, and per-post interest counts. Archived events are not visible.
// @Tags public
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains event, categories, and posts"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *PublicController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := c.Events.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if !event.Status.IsPubliclyVisible() {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "not found")
		return
	}
	categories, err := c.Categories.ListCategories(r.Context(), slug)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	grouped, err := c.Posts.ApprovedPostsGroupedByCategory(r.Context(), event.ID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	if grouped == nil {
		grouped = []*domain.CategoryPosts{}
	}
	counts := make(map[string]int)
	for _, g := range grouped {
		for _, p := range g.Posts {
			n, err := c.Interests.CountByPost(r.Context(), p.ID)
			if err != nil {
				respondError(c.Logger, w, r, err)
				return
			}
			counts[p.ID] = n
		}
	}
	h.WriteJSONSuccess(w, http.StatusOK, PublicEventResponse{Event: event, Categories: categories, Posts: grouped, InterestCounts: counts})
}

// SubmitPost godoc
// @Summary Submit a post
// @Description Submits a post into a category of an active event. The post enters moderation and is not publicly visible until approved.
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body SubmitPostRequest true "Post data"
// @Success 201 {object} helpers.APIResponse "data contains the post id and status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (submissions closed)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/posts [post]
func (c *PublicController) SubmitPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var req SubmitPostRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	meta := h.ClientMeta(r)
	post, err := c.Posts.SubmitPost(r.Context(), slug, req.CategoryID, req.Title, req.Content, req.AuthorName, strings.TrimSpace(strings.ToLower(req.AuthorEmail)), req.ShowAuthorName, req.PrivacyAccepted, meta)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, SubmittedPostResponse{ID: post.ID, Status: post.Status})
}

// DuplicateCheckResponse is the data payload for the interest pre-check.
type DuplicateCheckResponse struct {
	Duplicate bool `json:"duplicate"`
}

// CheckInterest godoc
// @Summary Check for an existing interest declaration
// @Description Reports whether the given email already declared interest in the post. A UX pre-check only; submission re-checks authoritatively.
// @Tags public
// @Produce json
// @Param postID path string true "Post ID (UUID)"
// @Param email query string true "Email address"
// @Success 200 {object} helpers.APIResponse "data contains duplicate flag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID}/interests/check [get]
func (c *PublicController) CheckInterest(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	email := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("email")))
	if postID == "" || email == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "postID and email are required")
		return
	}
	dup, err := c.Interests.IsDuplicateInterest(r.Context(), postID, email)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DuplicateCheckResponse{Duplicate: dup})
}

// SubmitInterest godoc
// @Summary Declare interest in a post
// @Description Records an interest declaration for an approved post. One declaration per email per post; a repeat submission returns 409.
// @Tags public
// @Accept json
// @Produce json
// @Param postID path string true "Post ID (UUID)"
// @Param body body SubmitInterestRequest true "Interest data"
// @Success 201 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (submissions closed)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already declared)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID}/interests [post]
func (c *PublicController) SubmitInterest(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing postID")
		return
	}
	var req SubmitInterestRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	meta := h.ClientMeta(r)
	if _, err := c.Interests.SubmitInterest(r.Context(), postID, req.Name, req.Email, req.PrivacyAccepted, req.Message, meta); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, StatusResponse{Status: "interest recorded"})
}
