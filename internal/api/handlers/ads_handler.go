package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fofostudio/marketing-api/internal/service"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type AdsHandler struct {
	s service.AdsService
}

func NewAdsHandler(s service.AdsService) *AdsHandler {
	return &AdsHandler{s: s}
}

func (h *AdsHandler) Overview(c *fiber.Ctx) error {
	timeframe := c.Query("timeframe", "7d")

	overview, err := h.s.Overview(c.Context(), timeframe)
	if err != nil {
		slog.Error("ads overview failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}

func (h *AdsHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.s.Campaigns(c.Context())
	if err != nil {
		slog.Error("campaign listing failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"campaigns": campaigns,
	})
}

func (h *AdsHandler) Recommendations(c *fiber.Ctx) error {
	recommendations, err := h.s.Recommendations(c.Context())
	if err != nil {
		slog.Error("recommendations failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"recommendations": recommendations,
		"generated_at":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AdsHandler) ExecuteRecommendation(c *fiber.Ctx) error {
	var req transfer.ExecuteRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.RecommendationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing recommendation_id",
		})
	}

	result, err := h.s.ExecuteRecommendation(c.Context(), req.RecommendationID)
	if err != nil {
		slog.Error("recommendation execution failed", "recommendation_id", req.RecommendationID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdsHandler) PauseAllCampaigns(c *fiber.Ctx) error {
	paused, err := h.s.PauseAllCampaigns(c.Context())
	if err != nil {
		slog.Error("pause-all failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"paused": paused,
	})
}

func (h *AdsHandler) CampaignDetail(c *fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing campaign id",
		})
	}

	detail, ads, err := h.s.CampaignDetail(c.Context(), campaignID)
	if err != nil {
		slog.Error("campaign detail failed", "campaign_id", campaignID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"campaign": detail,
		"ads":      ads,
	})
}
