package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowServer returns a server that blocks each request until the gate for
// its search term is closed, so tests control the order responses arrive in.
func slowServer(t *testing.T, gates map[string]chan struct{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		if gate, ok := gates[search]; ok {
			<-gate
		}
		json.NewEncoder(w).Encode([]Channel{{ID: 1, Nom: search, Abonnes: 1}})
	}))
}

func TestView_LateResponseForStaleKeyIsDiscarded(t *testing.T) {
	gates := map[string]chan struct{}{
		"old": make(chan struct{}),
		"new": make(chan struct{}),
	}
	srv := slowServer(t, gates)
	defer srv.Close()

	v := NewView(New(srv.URL))

	oldDone := v.SetQuery(context.Background(), Query{Search: "old"})
	newDone := v.SetQuery(context.Background(), Query{Search: "new"})

	// The newer query resolves first.
	close(gates["new"])
	<-newDone

	chans, loading, err := v.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	require.Len(t, chans, 1)
	assert.Equal(t, "new", chans[0].Nom)

	// The slow response for the replaced query arrives afterwards and must
	// not overwrite the active result.
	close(gates["old"])
	<-oldDone

	chans, loading, err = v.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	require.Len(t, chans, 1)
	assert.Equal(t, "new", chans[0].Nom, "stale response overwrote the active query")
}

func TestView_LoadingUntilFetchSettles(t *testing.T) {
	gates := map[string]chan struct{}{"q": make(chan struct{})}
	srv := slowServer(t, gates)
	defer srv.Close()

	v := NewView(New(srv.URL))
	done := v.SetQuery(context.Background(), Query{Search: "q"})

	_, loading, _ := v.Snapshot()
	assert.True(t, loading)

	close(gates["q"])
	<-done

	chans, loading, err := v.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	assert.Len(t, chans, 1)
}

func TestView_ErrorLeavesEmptyUsableState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewView(New(srv.URL))
	<-v.SetQuery(context.Background(), Query{})

	chans, loading, err := v.Snapshot()
	assert.False(t, loading)
	require.Error(t, err)
	require.NotNil(t, chans)
	assert.Empty(t, chans)
}

func TestView_RefetchBypassesFreshness(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]Channel{{ID: int64(calls), Nom: "x", Abonnes: 1}})
	}))
	defer srv.Close()

	v := NewView(New(srv.URL))
	<-v.SetQuery(context.Background(), Query{})
	<-v.Refetch(context.Background())

	assert.Equal(t, 2, calls)
}
