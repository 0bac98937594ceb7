package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(Options{
		DelayMin:   time.Millisecond,
		DelayMax:   2 * time.Millisecond,
		MaxRetries: 2,
		Timeout:    2 * time.Second,
	})
}

func TestGetReturnsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.UserAgent(), "Mozilla/5.0"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
}

func TestGetNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient().Get(ctx, srv.URL)
	assert.Error(t, err)
}

func TestGetConcurrentAcrossHosts(t *testing.T) {
	t.Parallel()

	// One shared client, many goroutines, distinct hosts: every request
	// lazily creates a per-host limiter, so this exercises the limiter
	// map under concurrency the way a multi-location search does.
	client := testClient()

	var servers []*httptest.Server
	for i := 0; i < 8; i++ {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer srv.Close()
		servers = append(servers, srv)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(servers))
	for i, srv := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Get(context.Background(), srv.URL)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.withDefaults()
	assert.Equal(t, 300*time.Millisecond, o.DelayMin)
	assert.Equal(t, 800*time.Millisecond, o.DelayMax)
	assert.Equal(t, 3, o.MaxRetries)
	assert.Equal(t, 15*time.Second, o.Timeout)
}
