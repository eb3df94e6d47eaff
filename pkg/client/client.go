// Package client is the Go SDK for the Ranki5 API. It implements the
// channel query cache (request coalescing, freshness window, bounded
// retry), pure client-side filtering, and the channel submission pipeline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultFreshness is how long a successful channel list is served
	// from cache without a new network request.
	DefaultFreshness = 60 * time.Second

	// DefaultTimeout bounds every request. Timeouts surface as
	// server-class failures.
	DefaultTimeout = 10 * time.Second

	maxFetchAttempts = 2 // initial request + one bounded retry
)

// Query identifies one channel listing. The zero value means "everything":
// empty Filter and Country normalize to "all".
type Query struct {
	Search  string
	Filter  string // "all" | "top100" | "community"
	Country string // ISO code or "all"
}

func (q Query) normalized() Query {
	if q.Filter == "" {
		q.Filter = "all"
	}
	if q.Country == "" {
		q.Country = "all"
	}
	return q
}

// key is the exact tuple of the three parameters; two queries with the same
// key share one in-flight request and one cached result.
func (q Query) key() string {
	return q.Search + "\x00" + q.Filter + "\x00" + q.Country
}

type cacheEntry struct {
	channels  []Channel
	fetchedAt time.Time
}

// Client talks to one Ranki5 API base URL. It is safe for concurrent use.
type Client struct {
	baseURL   string
	httpc     *http.Client
	freshness time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	session *Session
	cache   map[string]cacheEntry

	group singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10 s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithFreshness overrides the cache freshness window.
func WithFreshness(d time.Duration) Option {
	return func(c *Client) { c.freshness = d }
}

// New creates a Client for the given API base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		httpc:     &http.Client{Timeout: DefaultTimeout},
		freshness: DefaultFreshness,
		now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSession installs the session issued by Login or Register.
func (c *Client) SetSession(s Session) {
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
}

// Session returns the current session, if any.
func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// ClearSession discards the session (logout). There is no server-side
// revocation; the token simply stops being sent.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Channels returns the channel list for the given query. Results are cached
// per parameter tuple for the freshness window; concurrent callers with the
// same tuple share a single network request. On failure the returned slice
// is empty, never nil, so callers can render an empty state alongside the
// error. The cached slice is shared between callers and must not be mutated.
func (c *Client) Channels(ctx context.Context, q Query) ([]Channel, error) {
	q = q.normalized()
	key := q.key()

	if chans, ok := c.cachedFresh(key); ok {
		return chans, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have filled the cache while this one
		// waited on the flight group.
		if chans, ok := c.cachedFresh(key); ok {
			return chans, nil
		}

		chans, err := c.fetchChannels(ctx, q)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = cacheEntry{channels: chans, fetchedAt: c.now()}
		c.mu.Unlock()
		return chans, nil
	})
	if err != nil {
		return []Channel{}, err
	}
	return v.([]Channel), nil
}

// Invalidate drops cached results. With no arguments the whole cache is
// cleared; otherwise only the given queries.
func (c *Client) Invalidate(qs ...Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(qs) == 0 {
		c.cache = make(map[string]cacheEntry)
		return
	}
	for _, q := range qs {
		delete(c.cache, q.normalized().key())
	}
}

func (c *Client) cachedFresh(key string) ([]Channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.cache[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.freshness {
		return nil, false
	}
	return e.channels, true
}

// fetchChannels performs the listing request with one bounded retry on
// network and server failures.
func (c *Client) fetchChannels(ctx context.Context, q Query) ([]Channel, error) {
	vals := url.Values{}
	vals.Set("action", "channels")
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	vals.Set("filter", q.Filter)
	vals.Set("country", q.Country)
	endpoint := c.baseURL + "?" + vals.Encode()

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		chans, err := c.listOnce(ctx, endpoint)
		if err == nil {
			return chans, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	switch ErrKind(err) {
	case KindNetwork, KindServer:
		return true
	}
	return false
}

func (c *Client) listOnce(ctx context.Context, endpoint string) ([]Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}

	return decodeChannelList(body)
}

// decodeChannelList accepts both wire shapes observed in the field: a bare
// JSON array and a {success, data} envelope.
func decodeChannelList(body []byte) ([]Channel, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var chans []Channel
		if err := json.Unmarshal(trimmed, &chans); err != nil {
			return nil, wrapError(KindServer, "malformed channel list", err)
		}
		return chans, nil
	}

	var env struct {
		Success bool      `json:"success"`
		Data    []Channel `json:"data"`
		Error   string    `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, wrapError(KindServer, "malformed channel list", err)
	}
	if env.Error != "" {
		return nil, newError(KindServer, env.Error)
	}
	return env.Data, nil
}

// transportError classifies a failed round trip. Timeouts count as
// server-class failures, everything else as network failures.
func transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return wrapError(KindServer, "request timed out", err)
	}
	return wrapError(KindNetwork, "request failed", err)
}

// statusError maps a non-2xx response to an error kind. Only an optional
// {error} string is assumed of the body.
func statusError(status int, body []byte) *Error {
	msg := fmt.Sprintf("unexpected status %d", status)
	var env struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil && env.Error != "" {
		msg = env.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return newError(KindUnauthenticated, msg)
	case status == http.StatusNotFound:
		return newError(KindNotFound, msg)
	case status >= 400 && status < 500:
		return newError(KindValidation, msg)
	default:
		return newError(KindServer, msg)
	}
}

// postJSON sends an authenticated POST for the given action. The bearer
// token travels in the Authorization header; legacy body embedding is not
// duplicated.
func (c *Client) postJSON(ctx context.Context, action string, payload, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return wrapError(KindValidation, "invalid payload", err)
	}

	endpoint := c.baseURL + "?action=" + url.QueryEscape(action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return wrapError(KindValidation, "invalid request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s, ok := c.Session(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return wrapError(KindServer, "malformed response", err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, action string, params url.Values, out interface{}) error {
	vals := url.Values{}
	vals.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			vals.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+vals.Encode(), nil)
	if err != nil {
		return wrapError(KindValidation, "invalid request", err)
	}
	if s, ok := c.Session(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return wrapError(KindServer, "malformed response", err)
	}
	return nil
}
