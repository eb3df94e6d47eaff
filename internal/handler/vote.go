package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api?action=vote_theme and POST /api/channels/:id/votes.
// Requires an authenticated session. Re-voting replaces the previous vote.
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteThemeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "corps de requête invalide")
	}

	// REST alias carries the channel in the path.
	if raw := c.Params("id"); raw != "" {
		id, errMsg := middleware.ValidateChannelID(raw)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
		}
		req.ChannelID = id
	}
	if req.ChannelID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "channel id must be a positive integer")
	}

	theme, errMsg := middleware.ValidateTheme(req.Theme)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	req.Theme = theme

	resp, err := h.svc.Submit(c.Context(), req, middleware.UserIDFromCtx(c))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Chaîne introuvable")
		}
		if errors.Is(err, service.ErrUnknownTheme) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Thème inconnu")
		}
		middleware.Logger.Error().Err(err).Int64("channel_id", req.ChannelID).Msg("submit vote")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible d'enregistrer le vote")
	}

	Metrics.VotesTotal.WithLabelValues(req.Theme).Inc()
	return c.JSON(resp)
}

// Votes handles GET /api?action=channel_votes&chaine_id=N and
// GET /api/channels/:id/votes. Anonymous requests get the tally only;
// authenticated requests additionally get their own vote.
func (h *VoteHandler) Votes(c fiber.Ctx) error {
	raw := c.Params("id")
	if raw == "" {
		// Historical clients used the French column name, newer ones the
		// camelCase field. Accept both.
		raw = c.Query("chaine_id", c.Query("channelId"))
	}
	id, errMsg := middleware.ValidateChannelID(raw)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	votes, err := h.svc.Votes(c.Context(), id, middleware.UserIDFromCtx(c))
	if err != nil {
		middleware.Logger.Error().Err(err).Str("channel_id", strconv.FormatInt(id, 10)).Msg("channel votes")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible de charger les votes")
	}

	return c.JSON(fiber.Map{"success": true, "data": votes})
}
