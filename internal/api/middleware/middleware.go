package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/zdziszkee/swift-codes-registry/internal/metrics"
)

const unmatchedRoute = "unmatched"

// RequestLogger logs one line per request after it has been handled.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Context(), level, "HTTP request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		)

		return err
	}
}

// Metrics records request counts and latency labelled by the route pattern,
// not the raw path, to keep label cardinality bounded.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		route := c.Route().Path
		if status == fiber.StatusNotFound && err != nil {
			route = unmatchedRoute
		}
		m.ObserveRequest(c.Method(), route, status, time.Since(start))

		return err
	}
}

// statusOf returns the status the client will see. Errors returned up the
// chain are rendered later by the error handler.
func statusOf(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
