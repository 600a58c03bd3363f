package client

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer поднимает сервер с защищенным маршрутом и конечной точкой
// обновления токена. Доступ дают только access-cookie со значением "fresh".
func newTestServer(t *testing.T, refreshCalls *atomic.Int64, refreshDelay time.Duration) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(refreshDelay)

		cookie, err := r.Cookie("refreshToken")
		if err != nil || cookie.Value != "good-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "fresh", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("accessToken")
		if err != nil || cookie.Value != "fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func seedSession(t *testing.T, c *Client, serverURL, access, refresh string) {
	t.Helper()
	parsed, err := url.Parse(serverURL)
	require.NoError(t, err)
	c.Jar.SetCookies(parsed, []*http.Cookie{
		{Name: "accessToken", Value: access},
		{Name: "refreshToken", Value: refresh},
	})
}

func TestNew_RefreshURLPathIsAbsolute(t *testing.T) {
	c, err := New("http://localhost:8080")
	require.NoError(t, err)

	transport, ok := c.Transport.(*sessionTransport)
	require.True(t, ok)
	// без ведущего слеша jar не отдает cookie и запрос обновления уходит пустым
	assert.Equal(t, refreshPath, transport.refreshURL.Path)

	transport.jar.SetCookies(transport.refreshURL, []*http.Cookie{
		{Name: "refreshToken", Value: "good-refresh", Path: "/"},
	})
	jarCookies := transport.jar.Cookies(transport.refreshURL)
	require.Len(t, jarCookies, 1)
	assert.Equal(t, "refreshToken", jarCookies[0].Name)
}

func TestClient_RefreshesOn401AndRetries(t *testing.T) {
	var refreshCalls atomic.Int64
	server := newTestServer(t, &refreshCalls, 0)

	c, err := New(server.URL)
	require.NoError(t, err)
	seedSession(t, c, server.URL, "stale", "good-refresh")

	resp, err := c.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), refreshCalls.Load())
}

func TestClient_ConcurrentRequestsShareSingleRefresh(t *testing.T) {
	var refreshCalls atomic.Int64
	server := newTestServer(t, &refreshCalls, 100*time.Millisecond)

	c, err := New(server.URL)
	require.NoError(t, err)
	seedSession(t, c, server.URL, "stale", "good-refresh")

	const workers = 8
	statuses := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := c.Get(server.URL + "/api/v1/cart")
			if err != nil {
				return
			}
			defer func() { _ = resp.Body.Close() }()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusOK, status, "request %d", i)
	}
	// конкурентные 401 разделяют один запрос обновления
	assert.Equal(t, int64(1), refreshCalls.Load())
}

func TestClient_RefreshFailurePropagates401AndClearsSession(t *testing.T) {
	var refreshCalls atomic.Int64
	server := newTestServer(t, &refreshCalls, 0)

	c, err := New(server.URL)
	require.NoError(t, err)
	seedSession(t, c, server.URL, "stale", "revoked-refresh")

	resp, err := c.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(1), refreshCalls.Load())

	// сессионные cookie очищены
	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	for _, cookie := range c.Jar.Cookies(parsed) {
		assert.NotContains(t, []string{"accessToken", "refreshToken"}, cookie.Name)
	}
}

func TestClient_NoRefreshOnSuccess(t *testing.T) {
	var refreshCalls atomic.Int64
	server := newTestServer(t, &refreshCalls, 0)

	c, err := New(server.URL)
	require.NoError(t, err)
	seedSession(t, c, server.URL, "fresh", "good-refresh")

	resp, err := c.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, refreshCalls.Load())
}
