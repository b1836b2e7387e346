package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/thermetry/thermetry/internal/config"
	"github.com/thermetry/thermetry/internal/handlers"
	"github.com/thermetry/thermetry/internal/logging"
	"github.com/thermetry/thermetry/internal/middleware"
	"github.com/thermetry/thermetry/internal/storage"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, store *storage.Store, cfg config.Config) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, store, cfg.Analysis, cfg.Reports)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Series Analysis Routes
	v1.Post("/analyze", h.Analyze)
	v1.Post("/analyze/batch", h.AnalyzeBatch)

	// Number List Routes
	v1.Post("/numbers/summary", h.SummarizeNumbers)
	v1.Post("/numbers", h.SaveNumbers)
	v1.Get("/numbers", h.LoadNumbers)

	// Report Routes
	v1.Post("/reports", h.CreateReport)
	v1.Get("/reports/:request_id", h.GetReportStatus)
	v1.Get("/reports/:request_id/file", h.DownloadReportFile)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, store *storage.Store, cfg config.Config) (*fiber.App, *handlers.Handler) {
	app := fiber.New(fiber.Config{
		AppName:               "Thermetry API",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	h := Setup(app, logger, store, cfg)

	return app, h
}
