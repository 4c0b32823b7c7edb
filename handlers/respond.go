package handlers

import (
	"github.com/bluestock/ipo-platform/shared"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error to the right status code and a
// bare-message JSON body.
func respondError(c *fiber.Ctx, err error) error {
	if apiErr, ok := shared.AsAPIError(err); ok {
		apiErr.LogError()
		return c.Status(apiErr.StatusCode()).JSON(fiber.Map{"message": apiErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
