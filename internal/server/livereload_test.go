package server

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLiveReloadHub_BroadcastReachesClient(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	defer hub.Shutdown()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ": connected", strings.TrimSpace(line))

	// Give the hub a moment to register the client before broadcasting.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast("build-1")

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		require.Equal(t, `data: {"build":"build-1"}`, line)
		break
	}
}

func TestLiveReloadHub_BroadcastDeduplicates(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	defer hub.Shutdown()

	client := &lrClient{ch: make(chan string, 8), done: make(chan struct{})}
	hub.mu.Lock()
	hub.clients[0] = client
	hub.mu.Unlock()

	hub.Broadcast("same")
	hub.Broadcast("same")
	hub.Broadcast("")

	require.Len(t, client.ch, 1)
	require.Equal(t, "same", <-client.ch)
}

func TestLiveReloadHub_ShutdownRefusesNewClients(t *testing.T) {
	hub := NewLiveReloadHub(nil)
	hub.Shutdown()

	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livereload", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
