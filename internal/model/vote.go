package model

import "time"

// ThemeVote is one user's category endorsement for one channel. At most one
// active vote exists per (user, channel) pair; a later vote replaces it.
type ThemeVote struct {
	ID        int64     `json:"id"`
	ChaineID  int64     `json:"channel_id"`
	UserID    int64     `json:"user_id"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteThemeRequest is the API request body for action=vote_theme.
type VoteThemeRequest struct {
	ChannelID int64  `json:"channelId"`
	Theme     string `json:"theme"`
	Token     string `json:"token,omitempty"`
}

// VoteThemeResponse is the API response after recording a theme vote.
type VoteThemeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Theme   string `json:"theme"`
}

// ChannelVotes is the API response for action=channel_votes: the current
// per-theme tally plus the requesting user's own vote, if any.
type ChannelVotes struct {
	Votes    map[string]int `json:"votes"`
	UserVote *string        `json:"userVote"`
}
