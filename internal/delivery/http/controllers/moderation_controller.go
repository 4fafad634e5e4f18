package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/delivery/http/middleware"
	"topicmatcher/internal/domain"
)

// RejectPostRequest is the request body for POST /backoffice/posts/{postID}/reject.
type RejectPostRequest struct {
	Notes *string `json:"notes"`
}

// ListPostsResponse is the data payload for GET /backoffice/events/{slug}/posts (200).
type ListPostsResponse struct {
	Posts  []*domain.Post          `json:"posts"`
	Counts domain.PostStatusCounts `json:"counts"`
}

// DashboardResponse is the data payload for GET /backoffice/dashboard (200).
type DashboardResponse struct {
	Stats          domain.DashboardStats       `json:"stats"`
	PendingPosts   []*domain.Post              `json:"pending_posts"`
	RecentActivity []domain.ModerationActivity `json:"recent_activity"`
}

type ModerationController struct {
	Logger    *slog.Logger
	Posts     domain.PostService
	Interests domain.InterestService
	Queries   domain.ModerationQueryService
}

func NewModerationController(logger *slog.Logger, posts domain.PostService, interests domain.InterestService, queries domain.ModerationQueryService) *ModerationController {
	return &ModerationController{
		Logger:    logger,
		Posts:     posts,
		Interests: interests,
		Queries:   queries,
	}
}

// Dashboard godoc
// @Summary Backoffice dashboard
// @Description Returns global stats, the oldest pending posts, and recent moderation activity. The limit query param caps both lists.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries per list (default 10, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains stats, pending_posts, and recent_activity"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/dashboard [get]
func (c *ModerationController) Dashboard(w http.ResponseWriter, r *http.Request) {
	limit := h.ParseLimit(r)
	stats, err := c.Queries.DashboardStats(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	pending, err := c.Queries.PendingPosts(r.Context(), limit)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	activity, err := c.Queries.RecentActivity(r.Context(), limit)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if pending == nil {
		pending = []*domain.Post{}
	}
	if activity == nil {
		activity = []domain.ModerationActivity{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, DashboardResponse{Stats: stats, PendingPosts: pending, RecentActivity: activity})
}

// ModerationQueue godoc
// @Summary List posts awaiting moderation
// @Description Returns submitted posts of active events, oldest first.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of posts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/moderation/queue [get]
func (c *ModerationController) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Posts.ModerationQueue(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, posts)
}

// ApprovePost godoc
// @Summary Approve a post
// @Description Approves a submitted post, making it publicly visible. Already archived or rejected posts cannot be approved.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the post"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (post not moderable)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/posts/{postID}/approve [post]
func (c *ModerationController) ApprovePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing postID")
		return
	}
	moderator, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post, err := c.Posts.ApprovePost(r.Context(), postID, moderator)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, post)
}

// RejectPost godoc
// @Summary Reject a post
// @Description Rejects a submitted or previously approved post, removing it from public view. Optional notes record the reason.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Param body body RejectPostRequest true "Optional moderation notes"
// @Success 200 {object} helpers.APIResponse "data contains the post"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (post not moderable)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/posts/{postID}/reject [post]
func (c *ModerationController) RejectPost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing postID")
		return
	}
	var req RejectPostRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	moderator, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post, err := c.Posts.RejectPost(r.Context(), postID, moderator, req.Notes)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, post)
}

// ArchivePost godoc
// @Summary Archive a post
// @Description Archives a post regardless of its current status, removing it from public view and the moderation queue.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the post"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/posts/{postID}/archive [post]
func (c *ModerationController) ArchivePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing postID")
		return
	}
	post, err := c.Posts.ArchivePost(r.Context(), postID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, post)
}

// ListEventPosts godoc
// @Summary List posts of an event
// @Description Returns all posts of the event, optionally filtered by status, plus per-status counts.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param status query string false "Filter by status (submitted, approved, rejected, archived)"
// @Success 200 {object} helpers.APIResponse "data contains posts and counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/posts [get]
func (c *ModerationController) ListEventPosts(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var status *domain.PostStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		parsed, ok := domain.ParsePostStatus(s)
		if !ok {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "unknown status "+s)
			return
		}
		status = &parsed
	}
	posts, counts, err := c.Posts.ListByEvent(r.Context(), slug, status)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListPostsResponse{Posts: posts, Counts: counts})
}

// ListPostInterests godoc
// @Summary List interests of a post
// @Description Returns the interest declarations recorded for a post, oldest first.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of interests"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/posts/{postID}/interests [get]
func (c *ModerationController) ListPostInterests(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing postID")
		return
	}
	interests, err := c.Interests.ListByPost(r.Context(), postID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if interests == nil {
		interests = []*domain.Interest{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, interests)
}
