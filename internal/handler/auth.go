package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api?action=register and POST /api/auth/register.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "corps de requête invalide")
	}

	username, errMsg := middleware.ValidateUsername(req.Username)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	req.Username = username

	if errMsg := middleware.ValidatePassword(req.Password); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	resp, err := h.svc.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Ce nom d'utilisateur est déjà pris")
		}
		middleware.Logger.Error().Err(err).Msg("register")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Impossible de créer le compte")
	}

	return c.JSON(resp)
}

// Login handles POST /api?action=login and POST /api/auth/login.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "corps de requête invalide")
	}
	if req.Username == "" || req.Password == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "identifiants requis")
	}

	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Nom d'utilisateur ou mot de passe incorrect")
		}
		middleware.Logger.Error().Err(err).Msg("login")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Connexion impossible")
	}

	return c.JSON(resp)
}
