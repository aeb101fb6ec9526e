package feed

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsEntries(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	entry := event.NewChangelogEntry(event.ChangeTimeChange, "Moved Opening Keynote from 09:00 to 10:00")
	require.NoError(t, hub.Publish(context.Background(), entry))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "changelog", msg.Type)
	assert.Equal(t, entry.ID, msg.Entry.ID)
	assert.Equal(t, event.ChangeTimeChange, msg.Entry.Type)
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubPublishAfterShutdown(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(finished)
	}()
	cancel()
	<-finished

	err := hub.Publish(context.Background(), event.NewChangelogEntry(event.ChangeAddFAQ, "Added FAQ entry wifi"))
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHubPublishBacklog(t *testing.T) {
	hub := NewHub(nil)
	entry := event.NewChangelogEntry(event.ChangeAddFAQ, "Added FAQ entry wifi")
	for i := 0; i < broadcastQueue; i++ {
		require.NoError(t, hub.Publish(context.Background(), entry))
	}
	assert.ErrorIs(t, hub.Publish(context.Background(), entry), ErrBacklog)
}
