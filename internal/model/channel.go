package model

import "time"

// Top100SubscriberThreshold is the subscriber count above which a channel is
// considered part of the global top-100 set even without an explicit flag.
const Top100SubscriberThreshold = 10_000_000

// Channel source values.
const (
	SourceTop100    = "top100"
	SourceCommunity = "community"
)

// Channel represents a tracked YouTube channel. JSON field names follow the
// historical API contract (French column names from the original store).
type Channel struct {
	ID               int64      `json:"id"`
	YoutubeID        string     `json:"youtube_id"`
	Nom              string     `json:"nom"`
	Description      *string    `json:"description,omitempty"`
	Abonnes          int64      `json:"abonnes"`
	Vues             *int64     `json:"vues,omitempty"`
	Videos           *int64     `json:"videos,omitempty"`
	Image            *string    `json:"image,omitempty"`
	LanguePrincipale *string    `json:"langue_principale,omitempty"`
	ThemePrincipal   *string    `json:"theme_principal,omitempty"`
	Pays             *string    `json:"pays,omitempty"`
	CustomURL        *string    `json:"custom_url,omitempty"`
	YoutubeURL       *string    `json:"youtube_url,omitempty"`
	IsTop100         bool       `json:"is_top100"`
	Source           string     `json:"source"`
	SoumisPar        *int64     `json:"soumis_par,omitempty"`
	Verifie          bool       `json:"verifie"`
	DateAjout        time.Time  `json:"date_ajout"`
	DerniereMaj      *time.Time `json:"derniere_maj,omitempty"`
}

// EffectiveTop100 reports whether the channel belongs to the top-100 set,
// either flagged explicitly or inferred from its subscriber count.
func (c *Channel) EffectiveTop100() bool {
	return c.IsTop100 || c.Abonnes > Top100SubscriberThreshold
}

// ChannelQuery holds the server-side list filters.
type ChannelQuery struct {
	Search  string
	Filter  string // "all" | "top100" | "community"
	Country string // ISO code or "all"
}

// SubmitChannelRequest is the API request body for proposing a channel.
type SubmitChannelRequest struct {
	YoutubeID string `json:"youtubeId"`
	URL       string `json:"url"`
	Nom       string `json:"nom"`
	// Token may be embedded in the body by legacy clients whose proxies
	// strip the Authorization header.
	Token string `json:"token,omitempty"`
}

// SubmitChannelResponse is the API response after proposing a channel.
type SubmitChannelResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	ID          int64        `json:"id,omitempty"`
	ChannelInfo *ChannelInfo `json:"channel_info,omitempty"`
}

// ChannelInfo summarizes the resolved channel in a submission response.
type ChannelInfo struct {
	YoutubeID string `json:"youtube_id"`
	Nom       string `json:"nom"`
	Abonnes   int64  `json:"abonnes,omitempty"`
	CustomURL string `json:"custom_url,omitempty"`
	Note      string `json:"note,omitempty"`
}

// RefreshResult reports the outcome of a stats refresh. Bulk refreshes are
// partial-failure tolerant: Errors collects per-channel messages instead of
// aborting the run.
type RefreshResult struct {
	Success bool     `json:"success"`
	Updated int      `json:"updated"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

// ImportResult reports the outcome of a top-100 bulk import.
type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// StatsSnapshot is one historical metrics sample for a channel.
type StatsSnapshot struct {
	ID           int64     `json:"id"`
	ChaineID     int64     `json:"chaine_id"`
	Abonnes      int64     `json:"abonnes"`
	Vues         int64     `json:"vues"`
	Videos       int64     `json:"videos"`
	DateCollecte time.Time `json:"date_collecte"`
}

// GlobalStats is the API response for aggregate platform statistics.
type GlobalStats struct {
	TotalChannels        int64          `json:"total_channels"`
	Top100Channels       int64          `json:"top100_channels"`
	CommunityChannels    int64          `json:"community_channels"`
	TotalSubscribers     int64          `json:"total_subscribers"`
	TotalViews           int64          `json:"total_views"`
	TotalVideos          int64          `json:"total_videos"`
	TopThemes            []ThemeCount   `json:"top_themes"`
	TopCountries         []CountryCount `json:"top_countries"`
	TempChannels         int64          `json:"temp_channels"`
	ChannelsWithoutStats int64          `json:"channels_without_stats"`
}

// ThemeCount is one entry of the per-theme channel breakdown.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int64  `json:"count"`
}

// CountryCount is one entry of the per-country channel breakdown.
type CountryCount struct {
	Pays  string `json:"pays"`
	Count int64  `json:"count"`
}
