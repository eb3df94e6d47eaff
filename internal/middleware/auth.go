package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/service"
)

// Fiber context keys for authenticated requests.
const (
	ctxClaims = "authClaims"
	ctxUserID = "authUserID"
)

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the token query parameter and then the token field legacy
// clients embed in JSON bodies. Reading the body here does not consume it;
// handlers still bind it afterwards.
func TokenFromRequest(c fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if tok := c.Query("token"); tok != "" {
		return tok
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(c.Body(), &body); err == nil {
		return body.Token
	}
	return ""
}

// Authenticate validates the request's session token and stores the claims
// in the request context. When admin is true the session must belong to an
// admin account. On failure it writes the error response itself and returns
// ok=false; callers must stop handling the request.
func Authenticate(auth *service.AuthService, c fiber.Ctx, admin bool) (bool, error) {
	claims, err := auth.ParseToken(TokenFromRequest(c))
	if err != nil {
		return false, ErrorResponse(c, fiber.StatusUnauthorized, "authentification requise")
	}
	if admin && claims.Role != model.RoleAdmin {
		return false, ErrorResponse(c, fiber.StatusForbidden, "accès réservé aux administrateurs")
	}
	storeClaims(c, claims)
	return true, nil
}

// NewOptionalAuth resolves the session token when present and stores the
// claims in the request context. Requests without a valid token pass
// through anonymously.
func NewOptionalAuth(auth *service.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Next()
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			// An expired token on a public route is not an error,
			// the request just proceeds anonymously.
			return c.Next()
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// NewRequireAuth rejects requests without a valid session token.
func NewRequireAuth(auth *service.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		ok, err := Authenticate(auth, c, false)
		if !ok {
			return err
		}
		return c.Next()
	}
}

// NewRequireAdmin rejects requests whose session is not an admin account.
func NewRequireAdmin(auth *service.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		ok, err := Authenticate(auth, c, true)
		if !ok {
			return err
		}
		return c.Next()
	}
}

func storeClaims(c fiber.Ctx, claims *service.Claims) {
	c.Locals(ctxClaims, claims)
	if id, err := claims.UserID(); err == nil {
		c.Locals(ctxUserID, id)
	}
}

// ClaimsFromCtx returns the session claims stored by the auth middleware,
// or nil for anonymous requests.
func ClaimsFromCtx(c fiber.Ctx) *service.Claims {
	claims, _ := c.Locals(ctxClaims).(*service.Claims)
	return claims
}

// UserIDFromCtx returns the authenticated user's ID, or 0 for anonymous
// requests.
func UserIDFromCtx(c fiber.Ctx) int64 {
	id, _ := c.Locals(ctxUserID).(int64)
	return id
}
