package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// TestTokenFromRequest exercises token extraction through a real route,
// exactly as the auth middlewares see the request.
func TestTokenFromRequest(t *testing.T) {
	app := fiber.New()
	app.Post("/t", func(c fiber.Ctx) error {
		return c.SendString(TokenFromRequest(c))
	})

	tests := []struct {
		name   string
		header string
		url    string
		body   string
		want   string
	}{
		{"bearer header", "Bearer abc123", "/t", "", "abc123"},
		{"query param", "", "/t?token=qtok", "", "qtok"},
		{"json body", "", "/t", `{"theme":"gaming","token":"btok"}`, "btok"},
		{"header wins over body", "Bearer htok", "/t", `{"token":"btok"}`, "htok"},
		{"query wins over body", "", "/t?token=qtok", `{"token":"btok"}`, "qtok"},
		{"nothing", "", "/t", `{"theme":"gaming"}`, ""},
		{"malformed body", "", "/t", "not json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.url, strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			got, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
