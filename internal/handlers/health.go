package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lannisterpay/internal/repositories"
)

// HealthCheck reports process liveness and, when the store is backed by an
// external system, its connectivity.
func HealthCheck(store repositories.RuleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeStatus := "ok"
		if checker, ok := store.(repositories.HealthChecker); ok {
			if err := checker.HealthCheck(c.Context()); err != nil {
				storeStatus = "unreachable"
			}
		}

		status := fiber.StatusOK
		if storeStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status": "ok",
			"store":  storeStatus,
		})
	}
}
