package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/service"
)

type StatsHandler struct {
	svc *service.ChannelService
}

func NewStatsHandler(svc *service.ChannelService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Global handles GET /api?action=stats and GET /api/stats: platform-wide
// aggregates plus theme and country breakdowns.
func (h *StatsHandler) Global(c fiber.Ctx) error {
	stats, err := h.svc.GlobalStats(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("global stats")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible de charger les statistiques")
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}
