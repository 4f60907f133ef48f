package router

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/zdziszkee/swift-codes-registry/internal/api/handlers"
	"github.com/zdziszkee/swift-codes-registry/internal/api/middleware"
	"github.com/zdziszkee/swift-codes-registry/internal/metrics"
)

// Options tunes the app. Metrics may be nil to disable request metrics and
// the scrape endpoint.
type Options struct {
	AppName      string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	MetricsPath  string
}

// SetupRoutes configures all API routes
func SetupRoutes(swiftHandler *handlers.SwiftHandler, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		BodyLimit:    opts.BodyLimit,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Add global middleware
	app.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics))
	}
	app.Use(recover.New())

	app.Get("/healthz", handlers.Health)
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	// API versioning
	v1 := app.Group("/v1")

	// SWIFT codes endpoints
	v1.Get("/swift-codes/:swiftCode", swiftHandler.GetByCode)
	v1.Get("/swift-codes/country/:countryISO2code", swiftHandler.GetByCountry)
	v1.Post("/swift-codes", swiftHandler.Create)
	v1.Delete("/swift-codes/:swiftCode", swiftHandler.Delete)
	return app
}
