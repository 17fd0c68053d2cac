package ws

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/services"
	"chat-relay/wire"
)

func newTestEndpoint(t *testing.T) (string, *observability.HubStats) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	moderator, err := moderation.NewModerator(nil, '*')
	require.NoError(t, err)

	stats := observability.NewHubStats()
	hub := runtime.NewHub(log, runtime.NewRegistry(), stats, moderator, 64)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.Run(ctx) }()

	server := httptest.NewServer(NewRouter(NewServer(log, services.NewRelayService(hub), stats, 64), stats))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws", stats
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, e wire.Event) {
	t.Helper()
	raw, err := wire.Encode(e)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
}

func TestServer_MalformedFramesDoNotKillTheConnection(t *testing.T) {
	req := require.New(t)
	url, stats := newTestEndpoint(t)

	offender := dial(t, url)
	send(t, offender, wire.Join{DisplayName: "mallory"})

	peer := dial(t, url)
	send(t, peer, wire.Join{DisplayName: "bob"})
	req.Eventually(func() bool {
		return stats.Snapshot().ActiveSessions == 2
	}, 2*time.Second, 10*time.Millisecond)

	// Garbage, an unknown event, and a hub-to-client frame are all dropped
	req.NoError(offender.WriteMessage(websocket.TextMessage, []byte("not json")))
	raw, err := wire.Encode(wire.ReceiveMessage{SenderName: "mallory", Text: "spoofed"})
	req.NoError(err)
	req.NoError(offender.WriteMessage(websocket.TextMessage, raw))

	req.Eventually(func() bool {
		return stats.Snapshot().FramesRejected == 2
	}, 2*time.Second, 10*time.Millisecond)

	// The offender's stream survives and still relays normally
	send(t, offender, wire.NewMessage{SenderName: "mallory", Text: "still here"})

	_ = peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := peer.ReadMessage()
	req.NoError(err)
	evt, err := wire.Decode(frame)
	req.NoError(err)
	relayed, ok := evt.(wire.ReceiveMessage)
	req.True(ok)
	req.Equal("still here", relayed.Text)

	// And neither session was terminated
	req.Equal(int64(2), stats.Snapshot().ActiveSessions)
}

func TestServer_RepeatedJoinKeepsTheFirstName(t *testing.T) {
	req := require.New(t)
	url, stats := newTestEndpoint(t)

	alice := dial(t, url)
	send(t, alice, wire.Join{DisplayName: "alice"})

	req.Eventually(func() bool {
		return stats.Snapshot().ActiveSessions == 1
	}, 2*time.Second, 10*time.Millisecond)

	// A second join must not change the immutable display name
	send(t, alice, wire.Join{DisplayName: "impostor"})

	bob := dial(t, url)
	send(t, bob, wire.Join{DisplayName: "bob"})
	req.Eventually(func() bool {
		return stats.Snapshot().ActiveSessions == 2
	}, 2*time.Second, 10*time.Millisecond)

	// When alice leaves, the notice carries the original name
	_ = alice.Close()

	_ = bob.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := bob.ReadMessage()
	req.NoError(err)
	evt, err := wire.Decode(frame)
	req.NoError(err)
	gone, ok := evt.(wire.UserDisconnected)
	req.True(ok)
	req.Equal("alice", gone.DisconnectedName)
}
