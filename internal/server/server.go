// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"photostream/internal/cache"
	"photostream/internal/config"
	"photostream/internal/database"
	"photostream/internal/middleware"
	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/service"
	"photostream/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	store          storage.ObjectStorage
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	imageService   *service.ImageService
	viewService    *service.ViewService
	commentService *service.CommentService
	profileService *service.ProfileService
	userService    *service.UserService
	userRepo       repository.UserRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	store, err := storage.NewMinioStore(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	if err != nil {
		return nil, fmt.Errorf("object storage setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a storage stub.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.ObjectStorage) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	imageRepo := repository.NewImageRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	identity := service.NewIdentityResolver(userRepo, profileRepo, store)
	views := service.NewViewService(imageRepo, identity, store)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          store,
		promMiddleware: fiberprometheus.New("photostream-api"),
		imageService:   service.NewImageService(imageRepo, views, store),
		viewService:    views,
		commentService: service.NewCommentService(commentRepo, imageRepo, identity),
		profileService: service.NewProfileService(profileRepo, store),
		userService:    service.NewUserService(userRepo),
		userRepo:       userRepo,
	}
	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public image routes (browse/search). OptionalAuth lets responses note
	// the viewer without requiring a login.
	publicImages := api.Group("/images", middleware.OptionalAuth)
	publicImages.Get("/", s.GetImages)
	publicImages.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchImages)
	// Fiber matches routes in registration order, so the static /mine path
	// must land before /:id or the parameter route would capture it. It still
	// requires a login, hence the route-level guard.
	publicImages.Get("/mine", middleware.AuthRequired, s.GetMyImages)
	publicImages.Get("/:id/comments", s.GetComments)
	publicImages.Get("/:id", s.GetImage)

	// Public profile image lookup
	api.Get("/users/:id/profile-image", s.GetProfileImage)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	protected.Post("/uploads", s.IssueUpload)

	images := protected.Group("/images")
	images.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_image"), s.CreateImage)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	images.Post("/:id/like", s.LikeImage)
	images.Delete("/:id/like", s.UnlikeImage)
	images.Post("/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	images.Post("/:id/repost", middleware.RateLimit(
		s.redis, 10, time.Minute, "repost"), s.RepostImage)
	images.Patch("/:id", s.PatchImage)
	images.Delete("/:id", s.DeleteImage)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)

	profile := protected.Group("/profile")
	profile.Get("/image", s.GetMyProfileImage)
	profile.Post("/image", s.SetProfileImage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The feed degrades without Redis but stays serviceable.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Photostream API",
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
