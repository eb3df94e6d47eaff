// Package youtube is a minimal YouTube Data API v3 client covering what the
// refresh and submission flows need: channel statistics lookup and handle
// resolution.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the API knows no channel for the identifier.
var ErrNotFound = errors.New("youtube: channel not found")

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 2
)

// ChannelInfo is the subset of snippet+statistics the store keeps.
type ChannelInfo struct {
	ID              string
	Title           string
	Description     string
	ThumbnailURL    string
	Country         string
	CustomURL       string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Data API client. An empty apiKey produces a client
// whose calls fail with a clear error; submission then falls back to
// placeholder records.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// ChannelByID fetches one channel's snippet and statistics.
func (c *Client) ChannelByID(ctx context.Context, channelID string) (*ChannelInfo, error) {
	infos, err := c.channels(ctx, url.Values{"id": {channelID}})
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrNotFound
	}
	return &infos[0], nil
}

// ChannelByHandle resolves an @handle or legacy custom name.
func (c *Client) ChannelByHandle(ctx context.Context, handle string) (*ChannelInfo, error) {
	infos, err := c.channels(ctx, url.Values{"forHandle": {"@" + strings.TrimPrefix(handle, "@")}})
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrNotFound
	}
	return &infos[0], nil
}

// ChannelsByIDs fetches up to 50 channels in one call, the API's batch limit.
func (c *Client) ChannelsByIDs(ctx context.Context, ids []string) ([]ChannelInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > 50 {
		ids = ids[:50]
	}
	return c.channels(ctx, url.Values{"id": {strings.Join(ids, ",")}, "maxResults": {"50"}})
}

func (c *Client) channels(ctx context.Context, params url.Values) ([]ChannelInfo, error) {
	if !c.Enabled() {
		return nil, errors.New("youtube: no API key configured")
	}

	vals := url.Values{}
	vals.Set("part", "snippet,statistics")
	vals.Set("key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			vals.Add(k, v)
		}
	}
	endpoint := c.baseURL + "/channels?" + vals.Encode()

	var payload struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Country     string `json:"country"`
				CustomURL   string `json:"customUrl"`
				Thumbnails  struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
					Default struct {
						URL string `json:"url"`
					} `json:"default"`
				} `json:"thumbnails"`
			} `json:"snippet"`
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				ViewCount       string `json:"viewCount"`
				VideoCount      string `json:"videoCount"`
			} `json:"statistics"`
		} `json:"items"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("youtube: API error %d: %s", payload.Error.Code, payload.Error.Message)
	}

	infos := make([]ChannelInfo, 0, len(payload.Items))
	for _, item := range payload.Items {
		thumb := item.Snippet.Thumbnails.High.URL
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.Default.URL
		}
		infos = append(infos, ChannelInfo{
			ID:              item.ID,
			Title:           item.Snippet.Title,
			Description:     item.Snippet.Description,
			ThumbnailURL:    thumb,
			Country:         item.Snippet.Country,
			CustomURL:       item.Snippet.CustomURL,
			SubscriberCount: parseCount(item.Statistics.SubscriberCount),
			ViewCount:       parseCount(item.Statistics.ViewCount),
			VideoCount:      parseCount(item.Statistics.VideoCount),
		})
	}
	return infos, nil
}

// getJSON performs the request with one bounded retry on transport errors
// and 5xx responses.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("youtube: upstream status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return ErrNotFound
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("youtube: decode response: %w", err)
		}
		return nil
	}
	return lastErr
}

// parseCount tolerates the API's string-typed counters. Hidden subscriber
// counts come back empty and map to zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
