package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxSearchLen   = 100 // search terms are free text, capped defensively
	MaxUsernameLen = 50  // utilisateurs.username VARCHAR(50)
	MinUsernameLen = 3
	MaxPasswordLen = 72 // bcrypt input limit
	MinPasswordLen = 8
	MaxURLLen      = 255
)

var (
	// usernameRe matches account names: alphanumeric, dash, underscore.
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// countryRe matches ISO 3166-1 alpha-2 codes.
	countryRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
	// themeRe matches theme slugs (lowercase, no accents).
	themeRe = regexp.MustCompile(`^[a-z]{2,20}$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// ValidateSearch trims and caps a search term. Always succeeds; an empty
// term means no search filter.
func ValidateSearch(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > MaxSearchLen {
		s = s[:MaxSearchLen]
	}
	return s
}

// ValidateFilter checks the listing filter value.
func ValidateFilter(f string) (string, string) {
	f = strings.TrimSpace(strings.ToLower(f))
	switch f {
	case "", "all":
		return "all", ""
	case "top100", "community":
		return f, ""
	}
	return "", "filter must be one of all, top100, community"
}

// ValidateCountry checks a country filter: "all" or an ISO alpha-2 code.
func ValidateCountry(c string) (string, string) {
	c = strings.TrimSpace(c)
	if c == "" || strings.EqualFold(c, "all") {
		return "all", ""
	}
	if !countryRe.MatchString(c) {
		return "", "country must be a two-letter ISO code"
	}
	return strings.ToUpper(c), ""
}

// ValidateChannelID parses a numeric channel identifier.
func ValidateChannelID(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "channel id is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "channel id must be a positive integer"
	}
	return id, ""
}

// ValidateTheme checks a theme slug's shape. Membership in the allowed
// theme set is enforced by the vote service.
func ValidateTheme(t string) (string, string) {
	t = strings.TrimSpace(strings.ToLower(t))
	if t == "" {
		return "", "theme is required"
	}
	if !themeRe.MatchString(t) {
		return "", "theme contains invalid characters"
	}
	return t, ""
}

// ValidateUsername checks an account name.
func ValidateUsername(u string) (string, string) {
	u = strings.TrimSpace(u)
	if len(u) < MinUsernameLen {
		return "", "username must be at least 3 characters"
	}
	if len(u) > MaxUsernameLen {
		return "", "username must be at most 50 characters"
	}
	if !usernameRe.MatchString(u) {
		return "", "username contains invalid characters"
	}
	return u, ""
}

// ValidatePassword checks password length bounds. The value itself is
// never logged or echoed back.
func ValidatePassword(p string) string {
	if len(p) < MinPasswordLen {
		return "password must be at least 8 characters"
	}
	if len(p) > MaxPasswordLen {
		return "password must be at most 72 characters"
	}
	return ""
}

// ValidateURL trims and bounds a submitted channel URL or handle.
func ValidateURL(u string) (string, string) {
	u = strings.TrimSpace(u)
	if u == "" {
		return "", "url is required"
	}
	if len(u) > MaxURLLen {
		return "", "url must be at most 255 characters"
	}
	return u, ""
}
