package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api?action=channels and GET /api/channels.
// Query parameters: search, filter (all|top100|community), country.
func (h *ChannelHandler) List(c fiber.Ctx) error {
	filter, errMsg := middleware.ValidateFilter(c.Query("filter"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	country, errMsg := middleware.ValidateCountry(c.Query("country"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	q := model.ChannelQuery{
		Search:  middleware.ValidateSearch(c.Query("search")),
		Filter:  filter,
		Country: country,
	}

	channels, fromCache, err := h.svc.List(c.Context(), q)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("list channels")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible de charger les chaînes")
	}

	if fromCache {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    channels,
	})
}

// Get handles GET /api/channels/:id.
func (h *ChannelHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateChannelID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	channel, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Chaîne introuvable")
		}
		middleware.Logger.Error().Err(err).Int64("channel_id", id).Msg("get channel")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible de charger la chaîne")
	}

	return c.JSON(fiber.Map{"success": true, "data": channel})
}
