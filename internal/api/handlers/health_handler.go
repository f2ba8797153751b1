package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "github.com/fofostudio/marketing-api/configs"
)

type HealthHandler struct {
	cfg config.Config
}

func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Health reports which integrations have credentials configured, without
// exposing any of the values.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
		"integrations": fiber.Map{
			"google_oauth":    h.cfg.GoogleClientID != "" && h.cfg.GoogleClientSecret != "",
			"service_account": h.cfg.GoogleServiceAccount != "",
			"spreadsheet":     h.cfg.SpreadsheetID != "",
			"drive":           h.cfg.DriveRootFolderID != "",
			"meta":            h.cfg.Meta.AccessToken != "",
			"nanobanana":      h.cfg.NanobananaAPIKey != "",
		},
	})
}
