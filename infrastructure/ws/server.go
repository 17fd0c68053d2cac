// Package ws is the server side of the transport channel: one websocket
// per participant, carrying the four wire events over a single ordered
// full-duplex stream.
package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
	"chat-relay/services"
	"chat-relay/sink"
	"chat-relay/wire"
)

type Server struct {
	log        *slog.Logger
	service    services.IRelayService
	stats      *observability.HubStats
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewServer(log *slog.Logger, service services.IRelayService,
	stats *observability.HubStats, bufferSize int) *Server {
	return &Server{
		log:        log,
		service:    service,
		stats:      stats,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection, assigns the session id, and runs
// the read loop until the stream closes. An unexpected closure is a
// disconnect, not an error needing separate handling: either way the
// deferred Leave lets the hub announce the departure exactly once.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	sessionID := uuid.New()
	connSink := sink.NewConnSink(s.log, s.bufferSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer func() {
		s.service.Leave(sessionID)
		_ = conn.Close()
	}()

	go s.writeLoop(ctx, conn, connSink)
	s.readLoop(conn, sessionID, connSink)
}

// readLoop decodes each frame exactly once and dispatches on the typed
// event. Malformed frames are dropped with a warning; they never cost
// the offender (or anyone else) the connection.
func (s *Server) readLoop(conn *websocket.Conn, sessionID uuid.UUID, connSink *sink.ConnSink) {
	joined := false
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("stream closed", "session_id", sessionID, "error", err)
			return
		}

		evt, err := wire.Decode(raw)
		if err != nil {
			s.stats.IncrRejected()
			s.log.Warn("dropping malformed frame", "session_id", sessionID, "error", err)
			continue
		}

		switch e := evt.(type) {
		case wire.Join:
			if joined {
				// The display name is immutable for the session lifetime.
				s.log.Warn("ignoring repeated join", "session_id", sessionID)
				continue
			}
			joined = true
			s.service.Join(domain.NewSession(sessionID, e.DisplayName), connSink)
		case wire.NewMessage:
			s.service.Post(sessionID, e.SenderName, e.Text)
		default:
			// receive-message and user-disconnected only flow hub→client.
			s.stats.IncrRejected()
			s.log.Warn("dropping misdirected frame", "session_id", sessionID, "event", evt.EventName())
		}
	}
}

// writeLoop drains the connection sink and frames events onto the
// stream. Write errors end the loop; the read loop observes the closed
// connection and tears the session down.
func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, connSink *sink.ConnSink) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-connSink.Events:
			frame, ok := toWire(evt)
			if !ok {
				continue
			}
			raw, err := wire.Encode(frame)
			if err != nil {
				s.log.Error("failed to encode event", "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				s.log.Debug("failed to push event to stream", "error", err)
				return
			}
		}
	}
}

func toWire(e event.DomainEvent) (wire.Event, bool) {
	switch evt := e.(type) {
	case event.MessageRelayed:
		return wire.ReceiveMessage{SenderName: evt.SenderName, Text: evt.Text}, true
	case event.PeerDisconnected:
		return wire.UserDisconnected{DisconnectedName: evt.DisplayName}, true
	}
	return nil, false
}
