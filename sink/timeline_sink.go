package sink

import (
	"context"
	"fmt"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/projection"
)

// TimelineSink projects delivered events onto a client-local timeline.
type TimelineSink struct {
	timeline *projection.Timeline
}

func NewTimelineSink(timeline *projection.Timeline) *TimelineSink {
	return &TimelineSink{timeline: timeline}
}

func (s *TimelineSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageRelayed:
		// Join notices travel the ordinary chat path with the reserved
		// sender label; they still render as system entries.
		kind := domain.Chat
		if evt.SenderName == domain.SystemSender {
			kind = domain.System
		}
		s.timeline.Append(domain.Message{
			SenderName: evt.SenderName,
			Text:       evt.Text,
			Kind:       kind,
			At:         evt.At,
		})
	case event.PeerDisconnected:
		s.timeline.Append(domain.Message{
			SenderName: domain.SystemSender,
			Text:       fmt.Sprintf("%s has disconnected.", evt.DisplayName),
			Kind:       domain.System,
			At:         evt.At,
		})
	}
	return nil
}
