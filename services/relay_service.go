package services

import (
	"time"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
)

type IRelayService interface {
	Join(session domain.Session, sink contract.EventSink)
	Post(sessionID uuid.UUID, senderName, text string)
	Leave(sessionID uuid.UUID)
}

// RelayService is the boundary the transport talks to. It stamps
// server-side receive time on messages and shields the transport from
// the hub's command plumbing.
type RelayService struct {
	hub contract.IRelay
}

func NewRelayService(hub contract.IRelay) *RelayService {
	return &RelayService{hub: hub}
}

func (s *RelayService) Join(session domain.Session, sink contract.EventSink) {
	s.hub.Join(session, sink)
}

func (s *RelayService) Post(sessionID uuid.UUID, senderName, text string) {
	s.hub.Dispatch(domain.PostMessageCommand{
		Session:    sessionID,
		SenderName: senderName,
		Text:       text,
		At:         time.Now().UTC(),
	})
}

func (s *RelayService) Leave(sessionID uuid.UUID) {
	s.hub.Dispatch(domain.DisconnectCommand{Session: sessionID})
}
