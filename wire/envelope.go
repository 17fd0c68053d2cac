// Package wire defines the JSON frames exchanged between a client and
// the hub. Event names and field names are the interoperability
// contract; renaming any of them breaks independently-implemented peers.
package wire

import (
	"encoding/json"
	"fmt"

	"chat-relay/errors"
)

const (
	EventJoin             = "join"
	EventNewMessage       = "new-message"
	EventReceiveMessage   = "receive-message"
	EventUserDisconnected = "user-disconnected"
)

// Event is the decoded form of one frame. Frames are decoded exactly
// once at the transport boundary; everything past it dispatches on the
// concrete type, never on the event-name string.
type Event interface {
	EventName() string
}

type Join struct {
	DisplayName string `json:"displayName"`
}

func (Join) EventName() string { return EventJoin }

type NewMessage struct {
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
}

func (NewMessage) EventName() string { return EventNewMessage }

type ReceiveMessage struct {
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
}

func (ReceiveMessage) EventName() string { return EventReceiveMessage }

type UserDisconnected struct {
	DisconnectedName string `json:"disconnectedName"`
}

func (UserDisconnected) EventName() string { return EventUserDisconnected }

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Encode frames one event into its wire representation.
func Encode(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", e.EventName(), err)
	}
	return json.Marshal(envelope{Event: e.EventName(), Data: data})
}

// Decode parses one frame into its typed event.
func Decode(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var (
		evt Event
		err error
	)
	switch env.Event {
	case EventJoin:
		var e Join
		err = json.Unmarshal(env.Data, &e)
		evt = e
	case EventNewMessage:
		var e NewMessage
		err = json.Unmarshal(env.Data, &e)
		evt = e
	case EventReceiveMessage:
		var e ReceiveMessage
		err = json.Unmarshal(env.Data, &e)
		evt = e
	case EventUserDisconnected:
		var e UserDisconnected
		err = json.Unmarshal(env.Data, &e)
		evt = e
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, env.Event)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Event, err)
	}
	return evt, nil
}
