package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/service"
	"github.com/ranki5/ranki5-go/internal/youtube"
)

// AdminHandler exposes the stats refresh and import operations. All routes
// sit behind the admin auth middleware.
type AdminHandler struct {
	svc *service.RefreshService
}

func NewAdminHandler(svc *service.RefreshService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// RefreshOne handles POST /api?action=update_channel_stats and
// POST /api/admin/channels/:id/refresh. The legacy contract carries the
// channel in the JSON body, the REST alias in the path.
func (h *AdminHandler) RefreshOne(c fiber.Ctx) error {
	raw := c.Params("id")
	if raw == "" {
		var body struct {
			ChannelID int64 `json:"channelId"`
		}
		if err := c.Bind().Body(&body); err == nil && body.ChannelID > 0 {
			raw = strconv.FormatInt(body.ChannelID, 10)
		} else {
			raw = c.Query("chaine_id", c.Query("channelId"))
		}
	}

	id, errMsg := middleware.ValidateChannelID(raw)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	if err := h.svc.RefreshOne(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Chaîne introuvable")
		}
		if errors.Is(err, youtube.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "Chaîne inconnue de l'API YouTube")
		}
		middleware.Logger.Error().Err(err).Int64("channel_id", id).Msg("refresh channel")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Mise à jour impossible")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Statistiques mises à jour"})
}

// RefreshAll handles POST /api?action=update_all_stats. Partial failures do
// not abort the run; per-channel errors come back in the payload.
func (h *AdminHandler) RefreshAll(c fiber.Ctx) error {
	start := time.Now()

	result, err := h.svc.RefreshAll(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("refresh all")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Mise à jour globale impossible")
	}

	Metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	return c.JSON(result)
}

// ImportTop100 handles POST /api?action=import_top100.
func (h *AdminHandler) ImportTop100(c fiber.Ctx) error {
	result, err := h.svc.ImportTop100(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("import top100")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Import impossible")
	}

	return c.JSON(result)
}
