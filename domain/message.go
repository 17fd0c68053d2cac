// Package domain contains core concepts of the chat relay.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"chat-relay/errors"
)

// MaxTextLength bounds the text of a single chat message, in runes.
// It is part of the wire contract shared with every peer implementation.
const MaxTextLength = 160

// SystemSender is the reserved sender label carried by presence notices.
// The trailing separator is part of the label itself.
const SystemSender = "SYSTEM: "

var validate = validator.New()

type Kind int

const (
	Chat Kind = iota
	System
)

func (k Kind) String() string {
	if k == System {
		return "system"
	}
	return "chat"
}

// Message represents one immutable unit of communication.
// SenderName is denormalized at send time so a message stays intact
// even if its author disconnects afterwards.
type Message struct {
	SenderName string `validate:"required"`
	Text       string `validate:"required,max=160"`
	Kind       Kind
	At         time.Time
}

func NewChatMessage(senderName, text string) Message {
	return Message{SenderName: senderName, Text: text, Kind: Chat, At: time.Now().UTC()}
}

func NewSystemMessage(text string) Message {
	return Message{SenderName: SystemSender, Text: text, Kind: System, At: time.Now().UTC()}
}

// ValidateText enforces the sender-side precondition on outgoing text:
// non-blank after trimming, and at most MaxTextLength runes.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.ErrEmptyMessage
	}
	if err := validate.Var(text, "max=160"); err != nil {
		return errors.ErrMessageTooLong
	}
	return nil
}

// Validate re-checks a full message, typically on the hub side before relay.
func (m Message) Validate() error {
	if err := ValidateText(m.Text); err != nil {
		return err
	}
	return validate.Struct(m)
}
