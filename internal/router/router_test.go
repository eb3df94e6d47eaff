package router

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/service"
)

func testLimits(max int) *rateLimits {
	mk := func(keyFn func(fiber.Ctx) string) *middleware.RateLimiter {
		return middleware.NewRateLimiter(middleware.RateLimitConfig{
			Max:    max,
			Window: time.Minute,
			KeyFn:  keyFn,
		})
	}
	return &rateLimits{
		list:   mk(middleware.KeyByIP),
		submit: mk(middleware.KeyByUser),
		vote:   mk(middleware.KeyByUser),
		auth:   mk(middleware.KeyByIP),
		admin:  mk(middleware.KeyByUser),
	}
}

func TestLegacyDispatchEnforcesRateLimit(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", time.Hour)
	limits := testLimits(2)

	app := fiber.New()
	app.Post("/api", dispatchPost(&Handlers{}, auth, limits))

	// Unauthenticated vote_theme requests: the limiter counts them before
	// auth rejects them, so the third request in the window must be 429.
	for i, want := range []int{401, 401, 429} {
		req := httptest.NewRequest("POST", "/api?action=vote_theme", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
		if resp.StatusCode != want {
			t.Errorf("request %d: status %d, want %d", i+1, resp.StatusCode, want)
		}
		resp.Body.Close()
	}
}

func TestLegacyDispatchBudgetsAreIndependent(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", time.Hour)
	limits := testLimits(1)

	app := fiber.New()
	app.Post("/api", dispatchPost(&Handlers{}, auth, limits))

	// Exhaust the vote budget.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api?action=vote_theme", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("vote request %d: %v", i+1, err)
		}
		resp.Body.Close()
	}

	// The admin budget for the same caller is untouched: the request gets
	// past the limiter and dies on auth, not on 429.
	req := httptest.NewRequest("POST", "/api?action=update_all_stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("admin request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 401 {
		t.Errorf("admin request: status %d, want 401", resp.StatusCode)
	}
}
