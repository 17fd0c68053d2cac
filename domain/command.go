package domain

import (
	"time"

	"github.com/google/uuid"
)

// Command is one unit of work submitted to the hub actor. Commands from
// a single connection are enqueued in read order, which is what the
// per-sender delivery guarantee rests on.
type Command interface {
	SID() uuid.UUID
}

type PostMessageCommand struct {
	Session    uuid.UUID
	SenderName string
	Text       string
	At         time.Time
}

func (c PostMessageCommand) SID() uuid.UUID {
	return c.Session
}

type DisconnectCommand struct {
	Session uuid.UUID
}

func (c DisconnectCommand) SID() uuid.UUID {
	return c.Session
}
