// Package sink provides EventSink implementations: the per-connection
// buffered sink drained by the transport, and a timeline sink used on
// the receiving side of a channel.
package sink

import (
	"context"
	"log/slog"

	"chat-relay/domain/event"
)

// ConnSink decouples the hub actor from one connection's write path.
// Consume is called by the hub fan-out; the transport goroutine owning
// the connection drains Events at its own pace.
type ConnSink struct {
	Events chan event.DomainEvent
	log    *slog.Logger
}

func NewConnSink(log *slog.Logger, bufferSize int) *ConnSink {
	return &ConnSink{Events: make(chan event.DomainEvent, bufferSize), log: log}
}

// Consume enqueues without ever blocking the hub. A full buffer means
// the recipient is too slow or already gone; the event is dropped
// silently, which is the required outcome for a relay racing a
// departure.
func (s *ConnSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Debug("connection sink full, dropping event")
		return nil
	}
}
