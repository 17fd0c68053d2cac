package projection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
)

func TestTimeline_AppendKeepsOrder(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// Given an empty timeline
	req.Empty(timeline.AllInOrder())

	// When messages are appended
	timeline.Append(domain.NewSystemMessage("alice has connected."))
	timeline.Append(domain.NewChatMessage("alice", "hi"))
	timeline.Append(domain.NewChatMessage("bob", "hello"))

	// Then they come back in append order
	messages := timeline.AllInOrder()
	req.Len(messages, 3)
	req.Equal(domain.SystemSender, messages[0].SenderName)
	req.Equal("hi", messages[1].Text)
	req.Equal("hello", messages[2].Text)
}

func TestTimeline_DuplicatesAreKept(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// The local echo and a hub relay of the same notice both stay
	timeline.Append(domain.NewSystemMessage("alice has connected."))
	timeline.Append(domain.NewSystemMessage("alice has connected."))

	req.Equal(2, timeline.Len())
}

func TestTimeline_SnapshotIsIndependent(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Append(domain.NewChatMessage("alice", "hi"))

	snapshot := timeline.AllInOrder()
	timeline.Append(domain.NewChatMessage("alice", "bye"))

	req.Len(snapshot, 1)
	req.Equal(2, timeline.Len())
}

func TestTimeline_ConcurrentAppends(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				timeline.Append(domain.NewChatMessage("writer", "x"))
			}
		}()
	}
	wg.Wait()

	req.Equal(200, timeline.Len())
}
