package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

// StatusResponse is the data payload for operations that return only a status string.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondError maps domain sentinel errors to HTTP statuses and writes the
// envelope. Unmapped errors are logged and become 500s.
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateSlug),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateCategoryName),
		errors.Is(err, domain.ErrDuplicateInterest):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrCategoryHasApprovedPosts),
		errors.Is(err, domain.ErrEventNotDeletable),
		errors.Is(err, domain.ErrNotModerable):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrSubmissionsClosed):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "submissions are closed for this event")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
