package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/service"
)

type SubmitHandler struct {
	svc *service.SubmitService
}

func NewSubmitHandler(svc *service.SubmitService) *SubmitHandler {
	return &SubmitHandler{svc: svc}
}

// Submit handles POST /api?action=submit_channel and POST /api/channels.
// Requires an authenticated session.
func (h *SubmitHandler) Submit(c fiber.Ctx) error {
	var req model.SubmitChannelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "corps de requête invalide")
	}

	if req.YoutubeID == "" {
		url, errMsg := middleware.ValidateURL(req.URL)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
		}
		req.URL = url
	}

	resp, err := h.svc.Submit(c.Context(), req, middleware.UserIDFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidURL):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "URL YouTube invalide")
		case errors.Is(err, service.ErrDuplicateChannel):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Cette chaîne a déjà été proposée")
		}
		middleware.Logger.Error().Err(err).Msg("submit channel")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible d'enregistrer la chaîne")
	}

	Metrics.SubmissionsTotal.Inc()
	return c.JSON(resp)
}
