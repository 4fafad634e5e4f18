// @title Topic Matcher API
// @version 1.0
// @description Event topic submission and moderation backend. Public endpoints cover event pages, post submission, and interest declarations; /backoffice endpoints cover moderation and event management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"topicmatcher/config"
	"topicmatcher/internal/adapters/auth"
	"topicmatcher/internal/adapters/email"
	httpdelivery "topicmatcher/internal/delivery/http"
	"topicmatcher/internal/delivery/http/controllers"
	"topicmatcher/internal/delivery/http/middleware"
	"topicmatcher/internal/repository/postgres"
	"topicmatcher/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	postRepo := postgres.NewPostRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	userRepo := postgres.NewBackofficeUserRepository(db)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	timeout := cfg.ContextTimeout
	eventCommands := services.NewEventCommandService(eventRepo, categoryRepo, timeout)
	eventQueries := services.NewEventQueryService(eventRepo, timeout)
	categoryService := services.NewCategoryService(eventRepo, categoryRepo, timeout)
	postService := services.NewPostService(eventRepo, categoryRepo, postRepo, timeout)
	interestService := services.NewInterestService(eventRepo, postRepo, interestRepo, timeout)
	moderationQueries := services.NewModerationQueryService(eventRepo, postRepo, interestRepo, timeout)
	userService := services.NewUserService(userRepo, hasher, jwtManager, emailService, cfg.BackofficeLoginURL, timeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Public:     controllers.NewPublicController(logger, eventQueries, categoryService, postService, interestService),
		Auth:       controllers.NewAuthController(logger, userService),
		Events:     controllers.NewEventController(logger, eventCommands, eventQueries),
		Categories: controllers.NewCategoryController(logger, categoryService),
		Moderation: controllers.NewModerationController(logger, postService, interestService, moderationQueries),
		Users:      controllers.NewUserController(logger, userService),
	}, jwtManager, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
