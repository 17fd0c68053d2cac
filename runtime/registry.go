// Package runtime hosts the hub actor and the session registry. It
// moves events around without containing domain rules.
package runtime

import (
	"sync"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
)

type entry struct {
	session domain.Session
	sink    contract.EventSink
}

// Registry is the authoritative "who is currently connected" set.
// All mutations go through the hub actor; the mutex exists for readers
// like the stats endpoint and tests.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]entry)}
}

func (r *Registry) Subscribe(session domain.Session, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = entry{session: session, sink: sink}
}

// Unsubscribe removes a session and reports whether it was present,
// so a second disconnect for the same session stays a no-op.
func (r *Registry) Unsubscribe(sessionID uuid.UUID) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sessionID]
	if !ok {
		return domain.Session{}, false
	}
	delete(r.sessions, sessionID)
	return e.session, true
}

// SinksExcept snapshots the sinks of every active session but the given
// one. The sender never receives its own relay; it already has the
// optimistic local echo.
func (r *Registry) SinksExcept(sessionID uuid.UUID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks := make([]contract.EventSink, 0, len(r.sessions))
	for id, e := range r.sessions {
		if id == sessionID {
			continue
		}
		sinks = append(sinks, e.sink)
	}
	return sinks
}

func (r *Registry) DisplayName(sessionID uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sessionID]
	return e.session.DisplayName, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
