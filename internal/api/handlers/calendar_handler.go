package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fofostudio/marketing-api/internal/repository"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type CalendarHandler struct {
	cr repository.CalendarRepository
}

func NewCalendarHandler(cr repository.CalendarRepository) *CalendarHandler {
	return &CalendarHandler{cr: cr}
}

func (h *CalendarHandler) ListMonth(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "month must be between 1 and 12",
		})
	}

	posts, err := h.cr.ListMonth(c.Context(), GetAccessToken(c), year, month)
	if err != nil {
		slog.Error("calendar listing failed", "year", year, "month", month, "error", err)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"year":  year,
		"month": month,
		"posts": posts,
	})
}

func (h *CalendarHandler) GetPost(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post id",
		})
	}

	post, err := h.cr.GetByID(c.Context(), GetAccessToken(c), postID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *CalendarHandler) UpdatePost(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post id",
		})
	}

	var fields transfer.PostUpdate
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.cr.Update(c.Context(), GetAccessToken(c), postID, &fields)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *CalendarHandler) UpdateDate(c *fiber.Ctx) error {
	var req transfer.UpdateDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.PostID == "" || req.NewDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post_id or new_date",
		})
	}

	if err := h.cr.UpdateDate(c.Context(), GetAccessToken(c), req.PostID, req.NewDate); err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Fecha actualizada",
	})
}

func (h *CalendarHandler) UpdateImage(c *fiber.Ctx) error {
	var req transfer.UpdateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.PostID == "" || req.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post_id or image_url",
		})
	}

	if err := h.cr.UpdateImageURL(c.Context(), GetAccessToken(c), req.PostID, req.ImageURL); err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Imagen actualizada",
	})
}

func (h *CalendarHandler) CreateFromAsset(c *fiber.Ctx) error {
	var req transfer.PostCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.AssetID == "" || req.AssetURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing asset_id or asset_url",
		})
	}
	if req.Date == "" || req.Title == "" || req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing date, title or type",
		})
	}

	post, err := h.cr.Create(c.Context(), GetAccessToken(c), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CalendarHandler) RemovePost(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post id",
		})
	}

	if err := h.cr.DeleteByID(c.Context(), GetAccessToken(c), postID); err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post eliminado",
	})
}
