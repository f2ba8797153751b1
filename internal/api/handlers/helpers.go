package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fofostudio/marketing-api/internal/repository"
	"github.com/fofostudio/marketing-api/internal/sheetcal"
)

func GetAccessToken(c *fiber.Ctx) string {
	token, _ := c.Locals("access_token").(string)
	return token
}

// statusForError maps domain errors onto HTTP statuses so every handler
// reports them the same way.
func statusForError(err error) int {
	switch {
	case errors.Is(err, sheetcal.ErrInvalidPostID):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrMissingToken):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
