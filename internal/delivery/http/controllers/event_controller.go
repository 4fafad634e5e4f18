package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "topicmatcher/internal/delivery/http/helpers"
	"topicmatcher/internal/domain"
)

// CreateEventRequest is the request body for POST /backoffice/events.
type CreateEventRequest struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    *string    `json:"location"`
	IsTemplate  bool       `json:"is_template"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /backoffice/events/{slug}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    *string    `json:"location"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

// DuplicateEventRequest is the request body for POST /backoffice/events/{slug}/duplicate.
type DuplicateEventRequest struct {
	Name           string `json:"name"`
	CopyCategories bool   `json:"copy_categories"`
	AsTemplate     bool   `json:"as_template"`
}

// Validate implements Validator.
func (d DuplicateEventRequest) Validate() []string {
	if strings.TrimSpace(d.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// BulkActionRequest is the request body for POST /backoffice/events/bulk.
// Action is one of activate, close, archive, delete.
type BulkActionRequest struct {
	EventIDs []string `json:"event_ids"`
	Action   string   `json:"action"`
}

// Validate implements Validator.
func (b BulkActionRequest) Validate() []string {
	var errs []string
	if len(b.EventIDs) == 0 {
		errs = append(errs, "event_ids is required")
	}
	if strings.TrimSpace(b.Action) == "" {
		errs = append(errs, "action is required")
	}
	return errs
}

// ListEventsResponse is the data payload for GET /backoffice/events (200).
type ListEventsResponse struct {
	Events []*domain.Event          `json:"events"`
	Counts domain.EventStatusCounts `json:"counts"`
}

// ListTemplatesResponse is the data payload for GET /backoffice/events/templates (200).
type ListTemplatesResponse struct {
	Templates []*domain.Event `json:"templates"`
	Events    []*domain.Event `json:"events"`
}

type EventController struct {
	Logger   *slog.Logger
	Commands domain.EventCommandService
	Queries  domain.EventQueryService
}

func NewEventController(logger *slog.Logger, commands domain.EventCommandService, queries domain.EventQueryService) *EventController {
	return &EventController{
		Logger:   logger,
		Commands: commands,
		Queries:  queries,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a draft event. A unique slug is derived from the slug field, or from the name when slug is empty. Admin only.
// @Tags backoffice-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Commands.CreateEvent(r.Context(), req.Name, req.Slug, req.Description, req.EventDate, req.Location, req.IsTemplate)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events with status counts
// @Description Returns all events for the backoffice, optionally filtered by status, plus per-status counts.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (draft, active, closed, archived)"
// @Success 200 {object} helpers.APIResponse "data contains events and counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	var status *domain.EventStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		parsed, ok := domain.ParseEventStatus(s)
		if !ok {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "unknown status "+s)
			return
		}
		status = &parsed
	}
	events, counts, err := c.Queries.ListForBackoffice(r.Context(), status)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Events: events, Counts: counts})
}

// GetEvent godoc
// @Summary Get an event by slug
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := c.Queries.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates name, description, event date, and location. Omitted fields are unchanged. The slug never changes after creation. Admin only.
// @Tags backoffice-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Commands.UpdateEvent(r.Context(), slug, req.Name, req.Description, req.EventDate, req.Location)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event. Only draft events without categories can be deleted; everything else should be archived instead. Admin only.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event not deletable)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	if err := c.Commands.DeleteEvent(r.Context(), slug); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// transition is shared by the activate, close, and archive handlers.
func (c *EventController) transition(w http.ResponseWriter, r *http.Request, apply func(req *http.Request, slug string) (*domain.Event, error)) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := apply(r, slug)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// ActivateEvent godoc
// @Summary Activate an event
// @Description Moves a draft event to active, opening it for submissions. Activating a non-draft event is a no-op. Admin only.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/activate [post]
func (c *EventController) ActivateEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(req *http.Request, slug string) (*domain.Event, error) {
		return c.Commands.Activate(req.Context(), slug)
	})
}

// CloseEvent godoc
// @Summary Close an event
// @Description Moves an active event to closed, stopping new submissions while keeping it visible. Admin only.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/close [post]
func (c *EventController) CloseEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(req *http.Request, slug string) (*domain.Event, error) {
		return c.Commands.Close(req.Context(), slug)
	})
}

// ArchiveEvent godoc
// @Summary Archive an event
// @Description Moves a closed event to archived, hiding it from public listings. Admin only.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/archive [post]
func (c *EventController) ArchiveEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(req *http.Request, slug string) (*domain.Event, error) {
		return c.Commands.Archive(req.Context(), slug)
	})
}

// DuplicateEvent godoc
// @Summary Duplicate an event
// @Description Creates a new draft event from an existing one, optionally copying its categories and marking the copy as a template. The copy records its source event. Admin only.
// @Tags backoffice-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Source event slug"
// @Param body body DuplicateEventRequest true "Name for the copy and flags"
// @Success 201 {object} helpers.APIResponse "data contains the new event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/duplicate [post]
func (c *EventController) DuplicateEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slug")
		return
	}
	var req DuplicateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Commands.DuplicateEvent(r.Context(), slug, req.Name, req.CopyCategories, req.AsTemplate)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ToggleTemplate godoc
// @Summary Toggle the template flag of an event
// @Description Marks an event as a template, or unmarks it. Templates appear in the template list and can be duplicated into new events. Admin only.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/{slug}/template [post]
func (c *EventController) ToggleTemplate(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(req *http.Request, slug string) (*domain.Event, error) {
		return c.Commands.ToggleTemplate(req.Context(), slug)
	})
}

// ListTemplates godoc
// @Summary List template and regular events
// @Description Returns template events and regular events in two lists, for the duplication picker.
// @Tags backoffice-events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains templates and events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/templates [get]
func (c *EventController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, events, err := c.Queries.ListTemplates(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if templates == nil {
		templates = []*domain.Event{}
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListTemplatesResponse{Templates: templates, Events: events})
}

// BulkActions godoc
// @Summary Apply a bulk action to events
// @Description Applies activate, close, archive, or delete to a set of events in one transaction. Returns the success count and per-event error messages. If any selected event cannot be resolved, nothing is applied. Admin only.
// @Tags backoffice-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkActionRequest true "Event IDs and the action to apply"
// @Success 200 {object} helpers.APIResponse "data contains success_count and error_messages"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /backoffice/events/bulk [post]
func (c *EventController) BulkActions(w http.ResponseWriter, r *http.Request) {
	var req BulkActionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Commands.BulkActions(r.Context(), req.EventIDs, req.Action)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, result)
}
