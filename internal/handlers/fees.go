package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lannisterpay/internal/models"
	"lannisterpay/internal/services/fees"
	"lannisterpay/internal/utils/response"
)

type FeeHandler struct {
	service *fees.Service
}

func NewFeeHandler(service *fees.Service) *FeeHandler {
	return &FeeHandler{service: service}
}

// SubmitSpecification accepts a fee configuration spec as free text and
// persists the parsed, ranked rule set.
func (h *FeeHandler) SubmitSpecification(c *fiber.Ctx) error {
	var input struct {
		FeeConfigurationSpec string `json:"FeeConfigurationSpec"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}

	if err := h.service.SubmitSpecification(c.Context(), input.FeeConfigurationSpec); err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, fiber.Map{"status": "ok"})
}

// ComputeTransactionFee evaluates one transaction against the stored rule
// set and returns the charge breakdown.
func (h *FeeHandler) ComputeTransactionFee(c *fiber.Ctx) error {
	var tx models.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}

	result, err := h.service.ComputeTransactionFee(c.Context(), &tx)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, result)
}
