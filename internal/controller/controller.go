package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"site-analytics-service/internal/logging"
	"site-analytics-service/internal/model"
	"site-analytics-service/internal/service"
)

// AnalyticsController exposes the HTTP handlers for the analytics
// boundary.
type AnalyticsController interface {
	Track(c *fiber.Ctx) error
	Dashboard(c *fiber.Ctx) error
	Export(c *fiber.Ctx) error
	Purge(c *fiber.Ctx) error
}

type analyticsController struct {
	svc      service.AnalyticsService
	adminKey string
}

// NewAnalyticsController builds an AnalyticsController. adminKey
// guards the purge endpoint; purge stays disabled while it is empty.
func NewAnalyticsController(svc service.AnalyticsService, adminKey string) AnalyticsController {
	return &analyticsController{svc: svc, adminKey: adminKey}
}

// Track ingests one analytics beacon. Empty, untyped, or otherwise
// malformed bodies are acknowledged as successful no-ops so partial
// client beacons never surface errors.
func (h *analyticsController) Track(c *fiber.Ctx) error {
	var req model.TrackRequest
	if len(c.Body()) == 0 || c.BodyParser(&req) != nil {
		return c.JSON(fiber.Map{"success": true})
	}

	sub, ok := h.svc.BuildSubmission(req)
	if !ok {
		return c.JSON(fiber.Map{"success": true})
	}

	if err := h.svc.Track(c.Context(), sub); err != nil {
		logging.Error().Err(err).Str("type", req.Type).Msg("track event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record event"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Dashboard returns one aggregation view for the requested period.
func (h *analyticsController) Dashboard(c *fiber.Ctx) error {
	viewType := c.Query("type", "overview")
	period := c.Query("period")

	payload, err := h.svc.Dashboard(c.Context(), viewType, period)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		}
		logging.Error().Err(err).Str("view", viewType).Msg("compute analytics view")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute analytics"})
	}
	return c.JSON(payload)
}

// Export streams a filtered log as a downloadable file.
func (h *analyticsController) Export(c *fiber.Ctx) error {
	format := c.Query("format", "json")
	period := c.Query("period")
	detailed := c.QueryBool("detailed")

	res, err := h.svc.Export(c.Context(), format, period, detailed)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		}
		logging.Error().Err(err).Str("format", format).Msg("export analytics")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export analytics"})
	}

	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	return c.Send(res.Data)
}

// Purge drops every recorded event. Requires the configured admin key.
func (h *analyticsController) Purge(c *fiber.Ctx) error {
	if h.adminKey == "" || c.Get("X-Admin-Key") != h.adminKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	if err := h.svc.Purge(c.Context()); err != nil {
		logging.Error().Err(err).Msg("purge analytics")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to purge analytics"})
	}
	return c.JSON(fiber.Map{"success": true})
}
