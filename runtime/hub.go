package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/moderation"
	"chat-relay/observability"
)

// Hub relays messages between active sessions. It is an actor: a single
// goroutine owns every mutation of the session set and processes
// commands strictly in arrival order. Together with the FIFO buffer of
// each connection sink this yields the delivery guarantees the
// transport promises: per-sender ordering, and a departure notice never
// overtaking the departed sender's accepted messages.
type Hub struct {
	log       *slog.Logger
	registry  contract.IRegistry
	stats     *observability.HubStats
	moderator moderation.Moderator
	commands  chan domain.Command
}

func NewHub(log *slog.Logger, registry contract.IRegistry, stats *observability.HubStats,
	moderator moderation.Moderator, bufferSize int) *Hub {
	return &Hub{
		log:       log,
		registry:  registry,
		stats:     stats,
		moderator: moderator,
		commands:  make(chan domain.Command, bufferSize),
	}
}

// Join registers a session under the id the transport assigned at
// connect time. Display names are not deduplicated; two sessions may
// share one. Sessions are keyed by id, names are display-only.
func (h *Hub) Join(session domain.Session, sink contract.EventSink) {
	h.registry.Subscribe(session, sink)
	h.stats.SessionJoined()
	h.log.Info("session joined", "session_id", session.ID, "display_name", session.DisplayName)
}

// Dispatch enqueues a command. Chat relays never block the caller: when
// the hub is saturated they are dropped with a warning rather than
// stalling a connection's read loop. Disconnects wait for a slot
// instead; losing one would leak the session in the registry and
// suppress the departure notice for every remaining peer.
func (h *Hub) Dispatch(cmd domain.Command) {
	if _, ok := cmd.(domain.DisconnectCommand); ok {
		h.commands <- cmd
		return
	}
	select {
	case h.commands <- cmd:
	default:
		h.log.Warn(fmt.Sprintf("Command channel full, dropping command from session %s", cmd.SID()))
	}
}

// Run is the actor loop. It implements contract.Worker so the
// supervisor can restart it after a panic.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.log.Debug("Stopping hub actor")
			return ctx.Err()
		case cmd, ok := <-h.commands:
			if !ok {
				return nil
			}
			switch c := cmd.(type) {
			case domain.PostMessageCommand:
				h.relay(ctx, c)
			case domain.DisconnectCommand:
				h.disconnect(ctx, c)
			}
		}
	}
}

// relay re-validates, censors, and fans one message out to every other
// active session. A malformed frame is dropped silently from the
// peers' perspective; it never terminates the offender's connection,
// let alone anyone else's.
func (h *Hub) relay(ctx context.Context, cmd domain.PostMessageCommand) {
	msg := domain.Message{SenderName: cmd.SenderName, Text: cmd.Text, Kind: domain.Chat, At: cmd.At}
	if err := msg.Validate(); err != nil {
		h.stats.IncrRejected()
		h.log.Warn("rejecting message", "session_id", cmd.Session, "error", err)
		return
	}

	text, censored := h.moderator.Censor(cmd.Text)
	if len(censored) > 0 {
		info := whatlanggo.Detect(cmd.Text)
		h.log.Warn("censored relayed message",
			"session_id", cmd.Session,
			"words", len(censored),
			"lang", info.Lang.Iso6391())
	}

	evt := event.MessageRelayed{SenderName: cmd.SenderName, Text: text, At: cmd.At}
	h.fanout(ctx, cmd.Session, evt)
	h.stats.IncrRelayed()
}

// disconnect removes the session and announces the departure once.
// Disconnecting an unknown or already-removed session is a no-op.
func (h *Hub) disconnect(ctx context.Context, cmd domain.DisconnectCommand) {
	session, ok := h.registry.Unsubscribe(cmd.Session)
	if !ok {
		return
	}
	h.stats.SessionLeft()
	h.log.Info("session left", "session_id", session.ID, "display_name", session.DisplayName)

	evt := event.PeerDisconnected{DisplayName: session.DisplayName, At: time.Now().UTC()}
	h.fanout(ctx, cmd.Session, evt)
}

func (h *Hub) fanout(ctx context.Context, sender uuid.UUID, evt event.DomainEvent) {
	for _, s := range h.registry.SinksExcept(sender) {
		if err := s.Consume(ctx, evt); err != nil {
			h.stats.IncrDropped()
			h.log.Debug("sink refused event", "error", err)
		}
	}
}
