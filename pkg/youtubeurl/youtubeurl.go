// Package youtubeurl extracts channel identifiers and display names from
// user-pasted YouTube URLs. It is shared by the submission API handler and
// the client SDK so both sides agree on what counts as a valid URL.
package youtubeurl

import (
	"regexp"
	"strings"
)

// DefaultDisplayName is used when no name can be derived from the URL.
const DefaultDisplayName = "Chaîne YouTube"

// Identifier patterns, in precedence order. First match wins.
var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/channel/([^/?&#]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?&#]+)`),
	regexp.MustCompile(`youtube\.com/@([^/?&#]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?&#]+)`),
	regexp.MustCompile(`youtu\.be/([^/?&#]+)`),
	// watch?v= captures a video ID, not a channel ID. The historical
	// behavior is preserved: the server resolves it best-effort and the
	// record stays unverified until an admin refresh.
	regexp.MustCompile(`youtube\.com/watch\?v=([^/?&#]+)`),
}

var bareTokenRe = regexp.MustCompile(`^@?[A-Za-z0-9_-]+$`)

var (
	handleRe = regexp.MustCompile(`@([^/?&#]+)`)
	cNameRe  = regexp.MustCompile(`/c/([^/?&#]+)`)
	userRe   = regexp.MustCompile(`/user/([^/?&#]+)`)
)

// ParseIdentifier extracts a channel identifier from a YouTube URL or bare
// handle. It returns "" when nothing usable is found; callers must reject
// the submission before any network call in that case.
func ParseIdentifier(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, re := range identifierPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}

	// A bare handle or ID pasted without the rest of the URL.
	if !strings.Contains(raw, "/") && bareTokenRe.MatchString(raw) {
		return strings.TrimPrefix(raw, "@")
	}

	return ""
}

// ExtractDisplayName derives a human-readable channel name from the URL:
// @handle, then /c/<name>, then /user/<name>, then the parsed identifier,
// then DefaultDisplayName.
func ExtractDisplayName(raw string) string {
	raw = strings.TrimSpace(raw)

	if m := handleRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := cNameRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := userRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if id := ParseIdentifier(raw); id != "" {
		return id
	}
	return DefaultDisplayName
}

// IsChannelID reports whether the identifier looks like a canonical UC…
// channel ID rather than a handle or custom name.
func IsChannelID(id string) bool {
	return len(id) == 24 && strings.HasPrefix(id, "UC")
}
