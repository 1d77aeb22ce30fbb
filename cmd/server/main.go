package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
	"github.com/vcostin/pic-gallery-sub004/internal/config"
	"github.com/vcostin/pic-gallery-sub004/internal/email"
	"github.com/vcostin/pic-gallery-sub004/internal/infrastructure/repository"
	handlers "github.com/vcostin/pic-gallery-sub004/internal/interfaces/http"
	"github.com/vcostin/pic-gallery-sub004/internal/scheduler"
	services "github.com/vcostin/pic-gallery-sub004/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("error pinging database")
	}

	if err := repository.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Email client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		log.Warn().Err(err).Msg("email client initialization failed, continuing without email")
		emailClient = nil
	}

	// Auth
	userRepo := repository.NewUserRepository(db)
	authService := application.NewAuthService(userRepo, emailClient, cfg.JWTSecret, cfg.JWTExpiry)
	loginLimiter := application.NewRateLimiter(1*time.Minute, 10)
	authHandler := handlers.NewAuthHandler(authService, loginLimiter)

	// Tags
	tagRepo := repository.NewTagRepository(db)
	tagService := application.NewTagService(tagRepo)
	tagHandler := handlers.NewTagHandler(tagService)

	// Images
	imageRepo := repository.NewImageRepository(db)
	imageService := application.NewImageService(imageRepo, tagRepo)
	imageHandler := handlers.NewImageHandler(imageService)

	// Galleries
	galleryRepo := repository.NewGalleryRepository(db)
	galleryService := application.NewGalleryService(galleryRepo, imageRepo)
	galleryHandler := handlers.NewGalleryHandler(galleryService)

	// Editing sessions
	sessionManager := application.NewSessionManager(cfg.SessionTTL)
	sessionHandler := handlers.NewSessionHandler(sessionManager, galleryService)
	sweeper := scheduler.NewSessionSweeper(sessionManager, 10*time.Minute)
	sweeper.Start()
	defer sweeper.Stop()

	// Site settings
	settingRepo := repository.NewSettingRepository(db)
	settingService := application.NewSettingService(settingRepo)
	settingHandler := handlers.NewSettingHandler(settingService)

	// S3 uploads
	s3Service, err := services.NewS3Service(cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing S3 service")
	}
	uploadHandler := handlers.NewUploadHandler(s3Service)

	api := app.Group("/api")
	authed := handlers.RequireAuth(authService)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authed, authHandler.Me)

	// Tag routes
	tags := api.Group("/tags")
	tags.Get("/", tagHandler.GetTags)
	tags.Post("/", authed, tagHandler.CreateTag)
	tags.Delete("/:id", authed, tagHandler.DeleteTag)

	// Image routes
	images := api.Group("/images", authed)
	images.Get("/", imageHandler.ListImages)
	images.Post("/", imageHandler.CreateImage)
	images.Get("/:id", imageHandler.GetImage)
	images.Put("/:id", imageHandler.UpdateImage)
	images.Delete("/:id", imageHandler.DeleteImage)

	// Gallery routes
	api.Get("/galleries/public", galleryHandler.ListPublicGalleries)
	galleries := api.Group("/galleries", authed)
	galleries.Get("/", galleryHandler.ListGalleries)
	galleries.Post("/", galleryHandler.CreateGallery)
	galleries.Get("/:id", galleryHandler.GetGallery)
	galleries.Put("/:id", galleryHandler.UpdateGallery)
	galleries.Delete("/:id", galleryHandler.DeleteGallery)
	galleries.Post("/:id/session", sessionHandler.OpenSession)

	// Editing session routes
	sessions := api.Group("/sessions", authed)
	sessions.Get("/:sessionId", sessionHandler.GetState)
	sessions.Delete("/:sessionId", sessionHandler.CloseSession)
	sessions.Patch("/:sessionId/entries/:entryId/description", sessionHandler.UpdateDescription)
	sessions.Post("/:sessionId/images", sessionHandler.StageImages)
	sessions.Post("/:sessionId/drag/begin", sessionHandler.BeginDrag)
	sessions.Post("/:sessionId/drag/end", sessionHandler.EndDrag)
	sessions.Post("/:sessionId/drag/cancel", sessionHandler.CancelDrag)
	sessions.Post("/:sessionId/removal/request", sessionHandler.RequestRemoval)
	sessions.Post("/:sessionId/removal/confirm", sessionHandler.ConfirmRemoval)
	sessions.Post("/:sessionId/removal/cancel", sessionHandler.CancelRemoval)
	sessions.Post("/:sessionId/toast/dismiss", sessionHandler.DismissToast)
	sessions.Post("/:sessionId/save", sessionHandler.Save)

	// Settings routes
	settings := api.Group("/settings")
	settings.Get("/", settingHandler.GetAllSettings)
	settings.Get("/:key", settingHandler.GetSetting)
	settings.Put("/:key", authed, settingHandler.UpdateSetting)

	// Upload route
	api.Post("/upload", authed, uploadHandler.HandleUploadImage)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
}
