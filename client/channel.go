// Package client implements the participant side of the transport
// channel: connection lifecycle, optimistic local echo, and the
// projection of received events onto the local timeline.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/projection"
	"chat-relay/sink"
	"chat-relay/wire"
)

const outboundBuffer = 16

// Channel is one participant's ordered full-duplex link to the hub.
// The display name is derived once from the identity string and never
// changes for the lifetime of the connection.
type Channel struct {
	log         *slog.Logger
	url         string
	displayName string

	timeline *projection.Timeline
	sinks    []contract.EventSink

	conn      *websocket.Conn
	outbound  chan wire.Event
	done      chan struct{}
	teardown  sync.Once
	connected atomic.Bool
}

func NewChannel(log *slog.Logger, serverURL, identity string) *Channel {
	timeline := projection.NewTimeline()
	return &Channel{
		log:         log,
		url:         serverURL,
		displayName: domain.DeriveDisplayName(identity),
		timeline:    timeline,
		sinks:       []contract.EventSink{sink.NewTimelineSink(timeline)},
		outbound:    make(chan wire.Event, outboundBuffer),
		done:        make(chan struct{}),
	}
}

// AddSink registers an extra consumer for incoming events, next to the
// timeline projection. Call it before Connect.
func (c *Channel) AddSink(s contract.EventSink) {
	c.sinks = append(c.sinks, s)
}

func (c *Channel) DisplayName() string {
	return c.displayName
}

func (c *Channel) Timeline() *projection.Timeline {
	return c.timeline
}

// Done is closed once the stream has ended, whether through Disconnect
// or a remote closure.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Connect dials the hub and suspends until the handshake completes or
// fails. There is no automatic retry here; a reconnection supervisor,
// if any, sits above this channel. On success the client shows its own
// join notice immediately, pushes that same notice through the
// ordinary chat relay for the other participants, and finally
// registers the session with a join frame.
func (c *Channel) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrHubUnavailable, err)
	}
	c.conn = conn
	c.connected.Store(true)

	go c.writeLoop()
	go c.readLoop()

	notice := fmt.Sprintf("%s has connected.", c.displayName)
	c.timeline.Append(domain.NewSystemMessage(notice))
	c.enqueue(wire.NewMessage{SenderName: domain.SystemSender, Text: notice})
	c.enqueue(wire.Join{DisplayName: c.displayName})
	return nil
}

// Send validates, echoes locally, and transmits fire-and-forget. The
// local echo never waits on the network; blank text is refused before
// anything is displayed or transmitted.
func (c *Channel) Send(text string) error {
	if !c.connected.Load() {
		return errors.ErrNotConnected
	}
	if err := domain.ValidateText(text); err != nil {
		return err
	}
	c.timeline.Append(domain.NewChatMessage(c.displayName, text))
	c.enqueue(wire.NewMessage{SenderName: c.displayName, Text: text})
	return nil
}

// Disconnect closes the stream. It is safe on every exit path and
// calling it twice, or after a remote closure, is a no-op.
func (c *Channel) Disconnect() {
	c.stop()
}

func (c *Channel) stop() {
	c.teardown.Do(func() {
		c.connected.Store(false)
		if c.conn != nil {
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = c.conn.Close()
		}
		close(c.done)
	})
}

func (c *Channel) enqueue(e wire.Event) {
	select {
	case c.outbound <- e:
	default:
		c.log.Warn("outbound buffer full, dropping frame", "event", e.EventName())
	}
}

func (c *Channel) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case evt := <-c.outbound:
			raw, err := wire.Encode(evt)
			if err != nil {
				c.log.Error("failed to encode frame", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				c.log.Debug("write failed, stream is down", "error", err)
				c.stop()
				return
			}
		}
	}
}

func (c *Channel) consume(e event.DomainEvent) {
	for _, s := range c.sinks {
		if err := s.Consume(context.Background(), e); err != nil {
			c.log.Debug("sink refused event", "error", err)
		}
	}
}

// readLoop handles incoming events one at a time in arrival order. Any
// stream closure, expected or not, transitions the channel to its
// terminal disconnected state.
func (c *Channel) readLoop() {
	defer c.stop()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		evt, err := wire.Decode(raw)
		if err != nil {
			c.log.Warn("dropping malformed frame", "error", err)
			continue
		}
		switch e := evt.(type) {
		case wire.ReceiveMessage:
			c.consume(event.MessageRelayed{SenderName: e.SenderName, Text: e.Text, At: time.Now().UTC()})
		case wire.UserDisconnected:
			c.consume(event.PeerDisconnected{DisplayName: e.DisconnectedName, At: time.Now().UTC()})
		default:
			c.log.Warn("dropping misdirected frame", "event", evt.EventName())
		}
	}
}
