package middleware

import (
	"log/slog"
	"time"

	"snsapp/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// StructuredLogger returns a Fiber middleware that logs each request with the
// global slog logger and tags it with a correlation id. The id is stored in
// the request user context so side effects scheduled by the request carry it.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		correlationID := c.Get("X-Correlation-ID")
		if correlationID == "" {
			correlationID = observability.GenerateCorrelationID()
		}
		ctx := observability.WithCorrelationID(c.UserContext(), correlationID)
		c.SetUserContext(ctx)
		c.Set("X-Correlation-ID", correlationID)

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", latency),
			slog.String("correlation_id", correlationID),
		}

		if uid := c.Locals("userID"); uid != nil {
			fields = append(fields, slog.Any("user_id", uid))
		}

		log := observability.With(ctx)
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			log.Error("request failed", fields...)
		} else {
			log.Info("request processed", fields...)
		}

		return err
	}
}
