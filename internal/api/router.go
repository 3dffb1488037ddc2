package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kanbanhq/taskboard/internal/api/handler"
	"github.com/kanbanhq/taskboard/internal/api/middleware"
	"github.com/kanbanhq/taskboard/internal/core/ports"
	"github.com/kanbanhq/taskboard/internal/core/service"
	"github.com/kanbanhq/taskboard/internal/infrastructure/config"
	mongorepo "github.com/kanbanhq/taskboard/internal/infrastructure/db/mongo"
	"github.com/kanbanhq/taskboard/internal/notify"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The hub and notifier are owned by the caller: their lifecycle outlives any
// single request.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	hub *notify.Hub,
	notifier ports.Notifier,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("taskboard"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	projectRepo := mongorepo.NewProjectRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	activityService := service.NewActivityService(activityRepo, projectRepo, notifier, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, activityService, notifier, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, activityService, notifier,
		service.StatusMode(cfg.TaskStatusMode), log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	activityHandler := handler.NewActivityHandler(activityService)
	socketHandler := handler.NewSocketHandler(hub, cfg.CORSOrigins, log)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Project routes ---
	projects := e.Group("/projects", authMiddleware)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.POST("/:id/members", projectHandler.AddMember)

	// --- Task routes ---
	projects.GET("/:id/tasks", taskHandler.List)
	projects.POST("/:id/tasks", taskHandler.Create)
	projects.PUT("/:id/tasks/:taskId", taskHandler.Update)
	projects.DELETE("/:id/tasks/:taskId", taskHandler.Delete)

	// --- Activity routes ---
	projects.GET("/:id/activities", activityHandler.List)
	projects.POST("/:id/activities", activityHandler.Create)

	// --- Socket channel (path-addressed by user id, no auth) ---
	e.GET("/ws/:userId", socketHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
