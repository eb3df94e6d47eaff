package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const channelPayload = `{
	"items": [{
		"id": "UCX6OQ3DkcsbYNE6H8uQQuVA",
		"snippet": {
			"title": "MrBeast",
			"description": "desc",
			"country": "US",
			"customUrl": "@mrbeast",
			"thumbnails": {"high": {"url": "https://img/high.jpg"}}
		},
		"statistics": {
			"subscriberCount": "412000000",
			"viewCount": "89254900000",
			"videoCount": "883"
		}
	}]
}`

func TestChannelByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "UCX6OQ3DkcsbYNE6H8uQQuVA" {
			t.Errorf("id param = %q", got)
		}
		if got := r.URL.Query().Get("part"); got != "snippet,statistics" {
			t.Errorf("part param = %q", got)
		}
		w.Write([]byte(channelPayload))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	info, err := c.ChannelByID(context.Background(), "UCX6OQ3DkcsbYNE6H8uQQuVA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "MrBeast" {
		t.Errorf("title = %q", info.Title)
	}
	if info.SubscriberCount != 412_000_000 {
		t.Errorf("subscribers = %d", info.SubscriberCount)
	}
	if info.ThumbnailURL != "https://img/high.jpg" {
		t.Errorf("thumbnail = %q", info.ThumbnailURL)
	}
}

func TestChannelByID_EmptyItemsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	_, err := c.ChannelByID(context.Background(), "UCnope")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetJSON_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(channelPayload))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	info, err := c.ChannelByID(context.Background(), "UCX6OQ3DkcsbYNE6H8uQQuVA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if info.VideoCount != 883 {
		t.Errorf("videos = %d", info.VideoCount)
	}
}

func TestNoAPIKey(t *testing.T) {
	c := NewClient("", "http://unused")
	if c.Enabled() {
		t.Error("client without key must report disabled")
	}
	if _, err := c.ChannelByID(context.Background(), "UCabc"); err == nil {
		t.Error("expected error without API key")
	}
}

func TestParseCount(t *testing.T) {
	if parseCount("") != 0 {
		t.Error("hidden counter must map to 0")
	}
	if parseCount("bogus") != 0 {
		t.Error("malformed counter must map to 0")
	}
	if parseCount("42") != 42 {
		t.Error("plain counter must parse")
	}
}
