// Package observability aggregates hub counters for logging and the
// stats endpoint.
package observability

import (
	"sync/atomic"
)

// HubStats tracks relay activity. All counters are atomic so the hub
// actor, transport goroutines, and the heartbeat worker can touch them
// without coordination.
type HubStats struct {
	activeSessions  atomic.Int64
	messagesRelayed atomic.Uint64
	framesRejected  atomic.Uint64
	eventsDropped   atomic.Uint64
}

type Snapshot struct {
	ActiveSessions  int64  `json:"active_sessions"`
	MessagesRelayed uint64 `json:"messages_relayed"`
	FramesRejected  uint64 `json:"frames_rejected"`
	EventsDropped   uint64 `json:"events_dropped"`
}

func NewHubStats() *HubStats {
	return &HubStats{}
}

func (s *HubStats) SessionJoined() { s.activeSessions.Add(1) }
func (s *HubStats) SessionLeft()   { s.activeSessions.Add(-1) }
func (s *HubStats) IncrRelayed()   { s.messagesRelayed.Add(1) }
func (s *HubStats) IncrRejected()  { s.framesRejected.Add(1) }
func (s *HubStats) IncrDropped()   { s.eventsDropped.Add(1) }

func (s *HubStats) Snapshot() Snapshot {
	return Snapshot{
		ActiveSessions:  s.activeSessions.Load(),
		MessagesRelayed: s.messagesRelayed.Load(),
		FramesRejected:  s.framesRejected.Load(),
		EventsDropped:   s.eventsDropped.Load(),
	}
}
