package client

import (
	"context"
	"sync"
)

// View tracks one rendered channel listing: the active query, the data for
// it, a loading flag and the last error. Fetches are tagged with their query
// key; a slow response arriving after the query has changed is discarded so
// it can never overwrite the active result.
type View struct {
	client *Client

	mu      sync.Mutex
	active  Query
	key     string
	data    []Channel
	loading bool
	err     error
}

// NewView creates a View backed by the given client.
func NewView(c *Client) *View {
	return &View{client: c, data: []Channel{}}
}

// SetQuery makes q the active query and starts fetching it. The returned
// channel closes when that particular fetch settles, whether its result was
// applied or discarded as stale.
func (v *View) SetQuery(ctx context.Context, q Query) <-chan struct{} {
	q = q.normalized()
	key := q.key()

	v.mu.Lock()
	v.active = q
	v.key = key
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	return v.fetch(ctx, q, key)
}

// Refetch forces a new network request for the active query, bypassing the
// freshness window.
func (v *View) Refetch(ctx context.Context) <-chan struct{} {
	v.mu.Lock()
	q, key := v.active, v.key
	v.loading = true
	v.mu.Unlock()

	v.client.Invalidate(q)
	return v.fetch(ctx, q, key)
}

func (v *View) fetch(ctx context.Context, q Query, key string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		chans, err := v.client.Channels(ctx, q)

		v.mu.Lock()
		defer v.mu.Unlock()
		if v.key != key {
			// Late response for a since-changed query.
			return
		}
		v.loading = false
		v.data = chans
		v.err = err
	}()
	return done
}

// Snapshot returns the current data, loading flag and error. The data slice
// is never nil.
func (v *View) Snapshot() ([]Channel, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.data, v.loading, v.err
}
