package response

import (
	"github.com/gofiber/fiber/v2"

	apperrors "lannisterpay/internal/errors"
)

// Callers never see internal detail; operators get it from the logs.
const genericServerError = "Uh Oh! Something went wrong on my end, please try again later."

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"Error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// FromError maps the error taxonomy onto status codes: validation failures
// are the client's fault, no-match is not-found, everything else is a
// server-side defect answered with a generic message.
func FromError(c *fiber.Ctx, err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return Error(c, fiber.StatusBadRequest, err.Error())
	case apperrors.KindNotFound:
		return Error(c, fiber.StatusNotFound, err.Error())
	default:
		return Error(c, fiber.StatusInternalServerError, genericServerError)
	}
}
