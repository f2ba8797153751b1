package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fofostudio/marketing-api/internal/service"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type AssetsHandler struct {
	s service.AssetsService
}

func NewAssetsHandler(s service.AssetsService) *AssetsHandler {
	return &AssetsHandler{s: s}
}

func (h *AssetsHandler) ListAssets(c *fiber.Ctx) error {
	filter := c.Query("filter", "all")

	assets, folder, err := h.s.List(c.Context(), GetAccessToken(c), filter)
	if err != nil {
		slog.Error("asset listing failed", "filter", filter, "error", err)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"folder": folder,
		"filter": filter,
		"count":  len(assets),
		"assets": assets,
	})
}

func (h *AssetsHandler) UploadImage(c *fiber.Ctx) error {
	var req transfer.UploadImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.PostID == "" || req.ImageData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post_id or image_data",
		})
	}

	imageURL, err := h.s.Upload(c.Context(), GetAccessToken(c), &req)
	if err != nil {
		slog.Error("image upload failed", "post_id", req.PostID, "error", err)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Imagen subida",
		"image_url": imageURL,
	})
}
