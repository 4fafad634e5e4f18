package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

// CreateUserRequest is the request body for POST /backoffice/users.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Validate implements Validator.
func (c CreateUserRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(c.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, ok := domain.ParseUserRole(strings.TrimSpace(strings.ToLower(c.Role))); !ok {
		errs = append(errs, "role must be \"admin\" or \"moderator\"")
	}
	return errs
}

// SetActiveRequest is the request body for PATCH /backoffice/users/{userID}/active.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate implements Validator.
func (s SetActiveRequest) Validate() []string {
	if s.Active == nil {
		return []string{"active is required"}
	}
	return nil
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUser godoc
// @Summary Create a backoffice user
// @Description Creates a moderator or admin account. A temporary password is generated and emailed; the new user must change it on first login. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseUserRole(strings.TrimSpace(strings.ToLower(req.Role)))
	user, err := c.Service.CreateUser(r.Context(), req.Email, req.Name, role)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// ListUsers godoc
// @Summary List backoffice users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of users"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if users == nil {
		users = []*domain.BackofficeUser{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, users)
}

// SetUserActive godoc
// @Summary Activate or deactivate a user
// @Description Deactivated users cannot log in. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body SetActiveRequest true "Desired active state"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/users/{userID}/active [patch]
func (c *UserController) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing userID")
		return
	}
	var req SetActiveRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SetActive(r.Context(), userID, *req.Active)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}
