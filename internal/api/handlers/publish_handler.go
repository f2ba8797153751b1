package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fofostudio/marketing-api/internal/service"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(s service.PublishService) *PublishHandler {
	return &PublishHandler{s: s}
}

func (h *PublishHandler) PublishNow(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	results, err := h.s.PublishNow(c.Context(), &req)
	if err != nil {
		slog.Error("publish failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	allOK := true
	for _, r := range results {
		if !r.Success {
			allOK = false
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": allOK,
		"results": results,
	})
}
