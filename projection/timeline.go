// Package projection builds the client-local transcript from observed
// messages. It handles ordering only; it never removes, reorders, or
// deduplicates entries.
package projection

import (
	"sync"

	"chat-relay/domain"
)

// Timeline is an append-only ordered log of displayed messages, private
// to one client. Two identical messages (say the optimistic local echo
// and a hub relay of the same text) both appear.
type Timeline struct {
	mu       sync.RWMutex
	messages []domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (t *Timeline) Append(m domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, m)
}

// AllInOrder returns a snapshot of the transcript in append order.
func (t *Timeline) AllInOrder() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
