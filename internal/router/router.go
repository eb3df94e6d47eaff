package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ranki5/ranki5-go/internal/handler"
	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel *handler.ChannelHandler
	Submit  *handler.SubmitHandler
	Vote    *handler.VoteHandler
	Auth    *handler.AuthHandler
	Stats   *handler.StatsHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. The historical single-endpoint contract (GET/POST /api with an
// action query parameter) is served alongside REST aliases for the same
// operations.
func Setup(app *fiber.App, h *Handlers, auth *service.AuthService, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics, outside the API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	optionalAuth := middleware.NewOptionalAuth(auth)
	requireAuth := middleware.NewRequireAuth(auth)
	requireAdmin := middleware.NewRequireAdmin(auth)

	// One limiter instance per budget, shared between the REST aliases and
	// the legacy dispatcher so both transports draw on the same window.
	limits := &rateLimits{
		list:   middleware.NewListRateLimiter(),
		submit: middleware.NewSubmitRateLimiter(),
		vote:   middleware.NewVoteRateLimiter(),
		auth:   middleware.NewAuthRateLimiter(),
		admin:  middleware.NewAdminRateLimiter(),
	}

	// Legacy dispatch endpoint
	app.Get("/api", limits.list.Handler(), optionalAuth, dispatchGet(h))
	app.Post("/api", optionalAuth, dispatchPost(h, auth, limits))

	// REST aliases
	api := app.Group("/api")

	api.Get("/channels", limits.list.Handler(), h.Channel.List)
	api.Get("/channels/:id", limits.list.Handler(), h.Channel.Get)
	api.Post("/channels", limits.submit.Handler(), requireAuth, h.Submit.Submit)

	api.Get("/channels/:id/votes", limits.list.Handler(), optionalAuth, h.Vote.Votes)
	api.Post("/channels/:id/votes", limits.vote.Handler(), requireAuth, h.Vote.Submit)

	api.Post("/auth/login", limits.auth.Handler(), h.Auth.Login)
	api.Post("/auth/register", limits.auth.Handler(), h.Auth.Register)

	api.Get("/stats", limits.list.Handler(), h.Stats.Global)

	admin := api.Group("/admin", requireAdmin, limits.admin.Handler())
	admin.Post("/channels/:id/refresh", h.Admin.RefreshOne)
	admin.Post("/refresh", h.Admin.RefreshAll)
	admin.Post("/import-top100", h.Admin.ImportTop100)
}

// dispatchGet routes GET /api?action=… to the matching handler.
func dispatchGet(h *Handlers) fiber.Handler {
	return func(c fiber.Ctx) error {
		switch c.Query("action") {
		case "channels":
			return h.Channel.List(c)
		case "channel_votes":
			return h.Vote.Votes(c)
		case "stats":
			return h.Stats.Global(c)
		default:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "action inconnue")
		}
	}
}

// rateLimits groups the per-budget limiter instances shared by the REST
// routes and the legacy dispatcher.
type rateLimits struct {
	list   *middleware.RateLimiter
	submit *middleware.RateLimiter
	vote   *middleware.RateLimiter
	auth   *middleware.RateLimiter
	admin  *middleware.RateLimiter
}

// dispatchPost routes POST /api?action=… to the matching handler. Rate
// limits and auth requirements are enforced per action since the endpoint
// is shared.
func dispatchPost(h *Handlers, auth *service.AuthService, limits *rateLimits) fiber.Handler {
	guarded := func(c fiber.Ctx, rl *middleware.RateLimiter, admin bool, final fiber.Handler) error {
		if ok, err := rl.Check(c); !ok {
			return err
		}
		ok, err := middleware.Authenticate(auth, c, admin)
		if !ok {
			return err
		}
		return final(c)
	}
	open := func(c fiber.Ctx, rl *middleware.RateLimiter, final fiber.Handler) error {
		if ok, err := rl.Check(c); !ok {
			return err
		}
		return final(c)
	}

	return func(c fiber.Ctx) error {
		switch c.Query("action") {
		case "login":
			return open(c, limits.auth, h.Auth.Login)
		case "register":
			return open(c, limits.auth, h.Auth.Register)
		case "submit_channel":
			return guarded(c, limits.submit, false, h.Submit.Submit)
		case "vote_theme":
			return guarded(c, limits.vote, false, h.Vote.Submit)
		case "update_channel_stats":
			return guarded(c, limits.admin, true, h.Admin.RefreshOne)
		case "update_all_stats":
			return guarded(c, limits.admin, true, h.Admin.RefreshAll)
		case "import_top100":
			return guarded(c, limits.admin, true, h.Admin.ImportTop100)
		default:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "action inconnue")
		}
	}
}
