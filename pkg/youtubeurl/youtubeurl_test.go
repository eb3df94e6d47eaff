package youtubeurl

import "testing"

func TestParseIdentifier_ChannelPath(t *testing.T) {
	got := ParseIdentifier("https://youtube.com/channel/UC123")
	if got != "UC123" {
		t.Errorf("identifier = %q, want %q", got, "UC123")
	}
}

func TestParseIdentifier_Handle(t *testing.T) {
	got := ParseIdentifier("https://youtube.com/@PewDiePie")
	if got != "PewDiePie" {
		t.Errorf("identifier = %q, want %q", got, "PewDiePie")
	}
}

func TestParseIdentifier_CustomName(t *testing.T) {
	got := ParseIdentifier("https://www.youtube.com/c/Squeezie")
	if got != "Squeezie" {
		t.Errorf("identifier = %q, want %q", got, "Squeezie")
	}
}

func TestParseIdentifier_LegacyUserPath(t *testing.T) {
	got := ParseIdentifier("https://youtube.com/user/norman")
	if got != "norman" {
		t.Errorf("identifier = %q, want %q", got, "norman")
	}
}

func TestParseIdentifier_ShortLink(t *testing.T) {
	got := ParseIdentifier("https://youtu.be/dQw4w9WgXcQ")
	if got != "dQw4w9WgXcQ" {
		t.Errorf("identifier = %q, want %q", got, "dQw4w9WgXcQ")
	}
}

func TestParseIdentifier_WatchURL(t *testing.T) {
	// Historical behavior: the video ID is accepted as an identifier and
	// resolved best-effort later.
	got := ParseIdentifier("https://youtube.com/watch?v=dQw4w9WgXcQ")
	if got != "dQw4w9WgXcQ" {
		t.Errorf("identifier = %q, want %q", got, "dQw4w9WgXcQ")
	}
}

func TestParseIdentifier_PrecedenceChannelBeforeHandle(t *testing.T) {
	// A URL matching several patterns resolves by precedence order.
	got := ParseIdentifier("https://youtube.com/channel/UCabc/@ignored")
	if got != "UCabc" {
		t.Errorf("identifier = %q, want %q", got, "UCabc")
	}
}

func TestParseIdentifier_BareHandle(t *testing.T) {
	if got := ParseIdentifier("@Squeezie"); got != "Squeezie" {
		t.Errorf("identifier = %q, want %q", got, "Squeezie")
	}
	if got := ParseIdentifier("UCX6OQ3DkcsbYNE6H8uQQuVA"); got != "UCX6OQ3DkcsbYNE6H8uQQuVA" {
		t.Errorf("bare ID should pass through, got %q", got)
	}
}

func TestParseIdentifier_QueryStringStripped(t *testing.T) {
	got := ParseIdentifier("https://youtube.com/@Squeezie?sub_confirmation=1")
	if got != "Squeezie" {
		t.Errorf("identifier = %q, want %q", got, "Squeezie")
	}
}

func TestParseIdentifier_Invalid(t *testing.T) {
	for _, raw := range []string{"not a url", "https://example.com/foo", "", "a b c"} {
		if got := ParseIdentifier(raw); got != "" {
			t.Errorf("ParseIdentifier(%q) = %q, want empty", raw, got)
		}
	}
}

func TestExtractDisplayName_Handle(t *testing.T) {
	got := ExtractDisplayName("https://youtube.com/@Squeezie")
	if got != "Squeezie" {
		t.Errorf("name = %q, want %q", got, "Squeezie")
	}
}

func TestExtractDisplayName_FallsBackToIdentifier(t *testing.T) {
	got := ExtractDisplayName("https://youtube.com/channel/UC123")
	if got != "UC123" {
		t.Errorf("name = %q, want %q", got, "UC123")
	}
}

func TestExtractDisplayName_CustomAndUserPaths(t *testing.T) {
	if got := ExtractDisplayName("https://youtube.com/c/Cyprien"); got != "Cyprien" {
		t.Errorf("name = %q, want %q", got, "Cyprien")
	}
	if got := ExtractDisplayName("https://youtube.com/user/norman"); got != "norman" {
		t.Errorf("name = %q, want %q", got, "norman")
	}
}

func TestExtractDisplayName_Default(t *testing.T) {
	got := ExtractDisplayName("https://example.com/nothing")
	if got != DefaultDisplayName {
		t.Errorf("name = %q, want %q", got, DefaultDisplayName)
	}
}

func TestIsChannelID(t *testing.T) {
	if !IsChannelID("UCX6OQ3DkcsbYNE6H8uQQuVA") {
		t.Error("canonical UC id should be recognized")
	}
	if IsChannelID("Squeezie") {
		t.Error("handle should not be recognized as a channel ID")
	}
}
