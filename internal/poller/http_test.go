package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Success(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get("X-Request-Id"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"stats":{"total":1,"success":100,"processing":0,"lastActivity":"t1"},
			"activity":[{"timestamp":"t1","platform":"TikTok","title":"Launch","originalLink":"o","finalLink":"f"}],
			"platformDistribution":[{"name":"TikTok","value":1}],
			"engineStatus":"Idle"
		}`))
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL, 0)
	require.NoError(t, err)

	resp, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, "Idle", resp.EngineStatus)
	require.Len(t, resp.Activity, 1)
	assert.Equal(t, "Launch", resp.Activity[0].Title)
	assert.Equal(t, "o", resp.Activity[0].OriginalLink)

	_, err = f.Fetch(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestHTTPFetcher_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"sheet unavailable"}`))
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL, 0)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())
	require.Error(t, err)

	// the client shows the server's own message
	c := New(f, Options{Interval: time.Hour})
	stop := start(t, c)
	defer stop()
	require.Eventually(t, func() bool { return c.State().Err != "" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "sheet unavailable", c.State().Err)
}

func TestHTTPFetcher_SchemaViolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"stats":{"total":"many"},"activity":null}`))
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL, 0)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dashboard response")
}
