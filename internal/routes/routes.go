// Package routes wires the HTTP surface: the two fee endpoints, health and
// the middleware protecting the write path.
package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"lannisterpay/internal/config"
	"lannisterpay/internal/handlers"
	"lannisterpay/internal/metrics"
	"lannisterpay/internal/repositories"
	"lannisterpay/internal/services/fees"
)

// SetupRoutes builds the fee service on top of the given store and registers
// every route on the app.
func SetupRoutes(app *fiber.App, cfg config.Config, store repositories.RuleStore, logger *slog.Logger, collector *metrics.Collector) {
	service := fees.NewService(store, fees.SubmissionPolicy(cfg.StorePolicy), logger, collector)
	feeHandler := handlers.NewFeeHandler(service)

	// Specification submissions are rare and expensive relative to
	// evaluations; rate-limit the write path only.
	app.Use("/fees", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"Error": "Too many requests. Please try again later.",
			})
		},
	}))

	app.Post("/fees", feeHandler.SubmitSpecification)
	app.Post("/compute-transaction-fee", feeHandler.ComputeTransactionFee)
	app.Get("/health", handlers.HealthCheck(store))
}
