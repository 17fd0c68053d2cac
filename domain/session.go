// Package domain contains core concepts of the chat relay.
// This file defines Session entities and identity derivation.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Session is one connected participant as known by the hub.
// The display name is fixed at join time and never changes for the
// lifetime of the session; a reconnecting client gets a new Session.
type Session struct {
	ID          uuid.UUID
	DisplayName string
}

// NewSession pairs a transport-assigned connection id with the display
// name supplied at join.
func NewSession(id uuid.UUID, displayName string) Session {
	return Session{ID: id, DisplayName: displayName}
}

// DeriveDisplayName maps an opaque identity string to the display name
// used for the whole connection. Account identifiers shaped like email
// addresses keep only the local part.
func DeriveDisplayName(identity string) string {
	name, _, _ := strings.Cut(identity, "@")
	return name
}
