package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ranki5/ranki5-go/pkg/youtubeurl"
)

// SubmitChannel proposes a new channel from a user-pasted YouTube URL or
// bare handle. The session token and a parseable identifier are both
// required before any network call is made. Submission is never retried
// automatically; a failed attempt is left to the user.
func (c *Client) SubmitChannel(ctx context.Context, rawURL string) (*SubmitResult, error) {
	if _, ok := c.Session(); !ok {
		return nil, newError(KindUnauthenticated, "you must be logged in")
	}

	id := youtubeurl.ParseIdentifier(rawURL)
	if id == "" {
		return nil, newError(KindValidation, "invalid URL")
	}
	nom := youtubeurl.ExtractDisplayName(rawURL)

	payload := struct {
		YoutubeID string `json:"youtubeId"`
		URL       string `json:"url"`
		Nom       string `json:"nom"`
	}{YoutubeID: id, URL: rawURL, Nom: nom}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      int64  `json:"id"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "submit_channel", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "submission failed"
		}
		return nil, newError(KindServer, msg)
	}

	// The listing is stale now; drop it so the next query refetches.
	c.Invalidate()

	return &SubmitResult{ID: resp.ID, Message: resp.Message}, nil
}

// VoteTheme records the session user's category vote for a channel. A later
// vote by the same user replaces the earlier one.
func (c *Client) VoteTheme(ctx context.Context, channelID int64, theme string) error {
	if _, ok := c.Session(); !ok {
		return newError(KindUnauthenticated, "you must be logged in")
	}
	if theme == "" {
		return newError(KindValidation, "theme is required")
	}

	payload := struct {
		ChannelID int64  `json:"channelId"`
		Theme     string `json:"theme"`
	}{ChannelID: channelID, Theme: theme}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "vote_theme", payload, &resp); err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "vote failed"
		}
		return newError(KindServer, msg)
	}

	c.Invalidate()
	return nil
}

// ChannelVotes returns the current theme tally for a channel and, when a
// session is present, the user's own vote.
func (c *Client) ChannelVotes(ctx context.Context, channelID int64) (*ChannelVotes, error) {
	params := url.Values{}
	params.Set("channelId", strconv.FormatInt(channelID, 10))

	var votes ChannelVotes
	if err := c.getJSON(ctx, "channel_votes", params, &votes); err != nil {
		return nil, err
	}
	if votes.Votes == nil {
		votes.Votes = map[string]int{}
	}
	return &votes, nil
}

// Login authenticates and installs the returned session on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, newError(KindValidation, "username and password are required")
	}

	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Success bool   `json:"success"`
		User    *User  `json:"user"`
		Token   string `json:"token"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "login", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "login failed"
		}
		return nil, newError(KindUnauthenticated, msg)
	}

	s := Session{Token: resp.Token, User: resp.User}
	c.SetSession(s)
	return &s, nil
}

// Register creates an account and installs the returned session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, newError(KindValidation, "username and password are required")
	}

	payload := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	var resp struct {
		Success bool   `json:"success"`
		User    *User  `json:"user"`
		Token   string `json:"token"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "register", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "registration failed"
		}
		return nil, newError(KindServer, msg)
	}

	s := Session{Token: resp.Token, User: resp.User}
	c.SetSession(s)
	return &s, nil
}
