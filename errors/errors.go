package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrEmptyMessage   = fmt.Errorf("message text is empty")
	ErrMessageTooLong = fmt.Errorf("message text exceeds the maximum length")
	ErrNotConnected   = fmt.Errorf("channel is not connected")
	ErrHubUnavailable = fmt.Errorf("hub is unreachable")
	ErrUnknownEvent   = fmt.Errorf("unknown wire event")
)
