package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/fofostudio/marketing-api/internal/queue"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type ImageHandler struct {
	AsynqClient *asynq.Client
}

func NewImageHandler(asynqClient *asynq.Client) *ImageHandler {
	return &ImageHandler{AsynqClient: asynqClient}
}

// RegenerateImage enqueues the generation task and returns immediately. The
// worker writes the new image URL back into the sheet when it finishes, so
// the frontend picks it up on the next calendar refresh.
func (h *ImageHandler) RegenerateImage(c *fiber.Ctx) error {
	var req transfer.RegenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.PostID == "" || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post_id or description",
		})
	}

	err := queue.EnqueueRegenerateImage(h.AsynqClient, queue.RegenerateImagePayload{
		PostID:      req.PostID,
		Description: req.Description,
		Type:        req.Type,
		Platform:    req.Platform,
		AccessToken: GetAccessToken(c),
	})
	if err != nil {
		slog.Error("enqueue failed", "post_id", req.PostID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling image regeneration",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Regeneración en curso",
		"post_id": req.PostID,
	})
}
