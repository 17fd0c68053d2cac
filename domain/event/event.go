// Package event defines the domain events fanned out to connected sinks.
package event

import (
	"time"
)

type DomainEvent interface {
	OccurredAt() time.Time
}

// MessageRelayed is delivered to every active session except the sender.
type MessageRelayed struct {
	SenderName string
	Text       string
	At         time.Time
}

func (e MessageRelayed) OccurredAt() time.Time {
	return e.At
}

// PeerDisconnected announces a departure to the remaining sessions.
type PeerDisconnected struct {
	DisplayName string
	At          time.Time
}

func (e PeerDisconnected) OccurredAt() time.Time {
	return e.At
}
