package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

// CreateCategoryRequest is the request body for POST /backoffice/events/{slug}/categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// Validate implements Validator.
func (c CreateCategoryRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateCategoryRequest is the request body for PATCH /backoffice/events/{slug}/categories/{categoryID}.
// All fields optional; omitted fields are unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

// Validate implements Validator.
func (u UpdateCategoryRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

// ReorderCategoriesRequest is the request body for POST /backoffice/events/{slug}/categories/reorder.
// CategoryIDs lists every category of the event in the desired display order.
type ReorderCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// Validate implements Validator.
func (r ReorderCategoriesRequest) Validate() []string {
	if len(r.CategoryIDs) == 0 {
		return []string{"category_ids is required"}
	}
	return nil
}

type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{
		Logger:  logger,
		Service: svc,
	}
}

// ListCategories godoc
// @Summary List categories of an event
// @Description Returns the event's categories in display order.
// @Tags backoffice-categories
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data is an array of categories"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/categories [get]
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	categories, err := c.Service.ListCategories(r.Context(), slug)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Adds a category to the event. Names must be unique within the event; the new category is placed at the end of the display order. Admin only.
// @Tags backoffice-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body CreateCategoryRequest true "Category data"
// @Success 201 {object} helpers.APIResponse "data contains the created category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate name)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/categories [post]
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var req CreateCategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := c.Service.CreateCategory(r.Context(), slug, req.Name, req.Color, req.Description)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Updates name, color, and description. Omitted fields are unchanged. Renaming to an existing name in the same event is rejected. Admin only.
// @Tags backoffice-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param categoryID path string true "Category ID (UUID)"
// @Param body body UpdateCategoryRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate name)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/categories/{categoryID} [patch]
func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	categoryID := r.PathValue("categoryID")
	if slug == "" || categoryID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug or categoryID")
		return
	}
	var req UpdateCategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := c.Service.UpdateCategory(r.Context(), slug, categoryID, req.Name, req.Color, req.Description)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category and its non-approved posts. Categories that still hold approved posts cannot be deleted. Admin only.
// @Tags backoffice-categories
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (approved posts present)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/categories/{categoryID} [delete]
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	categoryID := r.PathValue("categoryID")
	if slug == "" || categoryID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug or categoryID")
		return
	}
	if err := c.Service.DeleteCategory(r.Context(), slug, categoryID); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ReorderCategories godoc
// @Summary Reorder categories
// @Description Applies a new display order. The body lists category IDs in the desired order; every ID must belong to the event. Admin only.
// @Tags backoffice-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body ReorderCategoriesRequest true "Category IDs in display order"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/categories/reorder [post]
func (c *CategoryController) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var req ReorderCategoriesRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Reorder(r.Context(), slug, req.CategoryIDs); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "reordered"})
}
