//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"chat-relay/domain"
	"chat-relay/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry owns the authoritative set of active sessions. Keeping the
// operations behind an interface leaves room for multi-room routing
// later without touching the hub core.
type IRegistry interface {
	Subscribe(session domain.Session, sink EventSink)
	Unsubscribe(sessionID uuid.UUID) (domain.Session, bool)
	SinksExcept(sessionID uuid.UUID) []EventSink
	DisplayName(sessionID uuid.UUID) (string, bool)
	Len() int
}

// IRelay is the hub boundary the transport talks to. Session ids are
// assigned by the transport at connect time; the hub owns the session
// record from join to disconnect.
type IRelay interface {
	Join(session domain.Session, sink EventSink)
	Dispatch(cmd domain.Command)
}
