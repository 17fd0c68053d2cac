package sink

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/projection"
)

func TestConnSink_BuffersInFIFOOrder(t *testing.T) {
	req := require.New(t)
	s := NewConnSink(logs.GetLoggerFromLevel(slog.LevelDebug), 4)
	ctx := context.Background()

	req.NoError(s.Consume(ctx, event.MessageRelayed{SenderName: "alice", Text: "m1", At: time.Now()}))
	req.NoError(s.Consume(ctx, event.MessageRelayed{SenderName: "alice", Text: "m2", At: time.Now()}))

	first := (<-s.Events).(event.MessageRelayed)
	second := (<-s.Events).(event.MessageRelayed)
	req.Equal("m1", first.Text)
	req.Equal("m2", second.Text)
}

func TestConnSink_FullBufferDropsSilently(t *testing.T) {
	req := require.New(t)
	s := NewConnSink(logs.GetLoggerFromLevel(slog.LevelDebug), 1)
	ctx := context.Background()

	req.NoError(s.Consume(ctx, event.MessageRelayed{Text: "kept", At: time.Now()}))

	// A recipient that no longer drains loses events without an error;
	// this is the required outcome for a relay racing a departure.
	req.NoError(s.Consume(ctx, event.MessageRelayed{Text: "dropped", At: time.Now()}))

	req.Equal("kept", (<-s.Events).(event.MessageRelayed).Text)
	req.Empty(s.Events)
}

func TestTimelineSink_ProjectsEvents(t *testing.T) {
	req := require.New(t)
	timeline := projection.NewTimeline()
	s := NewTimelineSink(timeline)
	ctx := context.Background()

	req.NoError(s.Consume(ctx, event.MessageRelayed{SenderName: "bob", Text: "hello", At: time.Now()}))
	req.NoError(s.Consume(ctx, event.PeerDisconnected{DisplayName: "bob", At: time.Now()}))

	messages := timeline.AllInOrder()
	req.Len(messages, 2)

	req.Equal(domain.Chat, messages[0].Kind)
	req.Equal("bob", messages[0].SenderName)

	req.Equal(domain.System, messages[1].Kind)
	req.Equal(domain.SystemSender, messages[1].SenderName)
	req.Equal("bob has disconnected.", messages[1].Text)
}
