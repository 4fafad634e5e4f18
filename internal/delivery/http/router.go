package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"topicmatcher/internal/delivery/http/controllers"
	"topicmatcher/internal/delivery/http/middleware"
	"topicmatcher/internal/domain"
)

// Controllers groups the handlers wired into the router.
type Controllers struct {
	Public     *controllers.PublicController
	Auth       *controllers.AuthController
	Events     *controllers.EventController
	Categories *controllers.CategoryController
	Moderation *controllers.ModerationController
	Users      *controllers.UserController
}

// NewRouter initializes the HTTP router with all application routes.
// Public routes are open; /backoffice routes require a Bearer token, and
// management routes additionally require the admin role.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.UserRole.CanManageEvents)(next))
	}
	userAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.UserRole.CanManageUsers)(next))
	}

	// Public
	mux.HandleFunc("GET /events", c.Public.ListEvents)
	mux.HandleFunc("GET /events/{slug}", c.Public.GetEvent)
	mux.HandleFunc("POST /events/{slug}/posts", c.Public.SubmitPost)
	mux.HandleFunc("POST /posts/{postID}/interests", c.Public.SubmitInterest)
	mux.HandleFunc("GET /posts/{postID}/interests/check", c.Public.CheckInterest)

	// Auth
	mux.HandleFunc("POST /backoffice/auth/login", c.Auth.Login)
	mux.HandleFunc("POST /backoffice/auth/change-password", authed(c.Auth.ChangePassword))
	mux.HandleFunc("GET /backoffice/auth/me", authed(c.Auth.Me))

	// Event management (admin)
	mux.HandleFunc("POST /backoffice/events", admin(c.Events.CreateEvent))
	mux.HandleFunc("GET /backoffice/events", authed(c.Events.ListEvents))
	mux.HandleFunc("GET /backoffice/events/templates", authed(c.Events.ListTemplates))
	mux.HandleFunc("POST /backoffice/events/bulk", admin(c.Events.BulkActions))
	mux.HandleFunc("GET /backoffice/events/{slug}", authed(c.Events.GetEvent))
	mux.HandleFunc("PATCH /backoffice/events/{slug}", admin(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /backoffice/events/{slug}", admin(c.Events.DeleteEvent))
	mux.HandleFunc("POST /backoffice/events/{slug}/activate", admin(c.Events.ActivateEvent))
	mux.HandleFunc("POST /backoffice/events/{slug}/close", admin(c.Events.CloseEvent))
	mux.HandleFunc("POST /backoffice/events/{slug}/archive", admin(c.Events.ArchiveEvent))
	mux.HandleFunc("POST /backoffice/events/{slug}/duplicate", admin(c.Events.DuplicateEvent))
	mux.HandleFunc("POST /backoffice/events/{slug}/template", admin(c.Events.ToggleTemplate))

	// Categories (admin)
	mux.HandleFunc("GET /backoffice/events/{slug}/categories", authed(c.Categories.ListCategories))
	mux.HandleFunc("POST /backoffice/events/{slug}/categories", admin(c.Categories.CreateCategory))
	mux.HandleFunc("POST /backoffice/events/{slug}/categories/reorder", admin(c.Categories.ReorderCategories))
	mux.HandleFunc("PATCH /backoffice/events/{slug}/categories/{categoryID}", admin(c.Categories.UpdateCategory))
	mux.HandleFunc("DELETE /backoffice/events/{slug}/categories/{categoryID}", admin(c.Categories.DeleteCategory))

	// Moderation (admins and moderators)
	mux.HandleFunc("GET /backoffice/dashboard", authed(c.Moderation.Dashboard))
	mux.HandleFunc("GET /backoffice/moderation/queue", authed(c.Moderation.ModerationQueue))
	mux.HandleFunc("GET /backoffice/events/{slug}/posts", authed(c.Moderation.ListEventPosts))
	mux.HandleFunc("POST /backoffice/posts/{postID}/approve", authed(c.Moderation.ApprovePost))
	mux.HandleFunc("POST /backoffice/posts/{postID}/reject", authed(c.Moderation.RejectPost))
	mux.HandleFunc("POST /backoffice/posts/{postID}/archive", authed(c.Moderation.ArchivePost))
	mux.HandleFunc("GET /backoffice/posts/{postID}/interests", authed(c.Moderation.ListPostInterests))

	// User management (admin)
	mux.HandleFunc("POST /backoffice/users", userAdmin(c.Users.CreateUser))
	mux.HandleFunc("GET /backoffice/users", userAdmin(c.Users.ListUsers))
	mux.HandleFunc("PATCH /backoffice/users/{userID}/active", userAdmin(c.Users.SetUserActive))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
