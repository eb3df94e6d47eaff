package client

import "time"

// Channel mirrors the wire shape served by the Ranki5 API. Field names
// follow the historical contract (French column names).
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
	DateAjout        *time.Time `json:"date_ajout,omitempty"`
	DerniereMaj      *time.Time `json:"derniere_maj,omitempty"`
}

// User is the session identity returned by login and register.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	Role     string  `json:"role"`
}

// Session is the explicit session object replacing the original's ambient
// cookie/local-storage state. The token is the sole credential sent to the
// API.
type Session struct {
	Token string
	User  *User
}

// SubmitResult is returned after a successful channel proposal.
type SubmitResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ChannelVotes is the per-theme tally for one channel plus the requesting
// user's own vote, if any.
type ChannelVotes struct {
	Votes    map[string]int `json:"votes"`
	UserVote *string        `json:"userVote"`
}
