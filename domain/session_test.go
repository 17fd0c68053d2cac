package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDeriveDisplayName(t *testing.T) {
	req := require.New(t)

	// An email-shaped identity keeps only the local part
	req.Equal("alice", DeriveDisplayName("alice@example.org"))

	// Everything after the first separator is dropped
	req.Equal("bob", DeriveDisplayName("bob@corp@legacy"))

	// A bare identity is used as-is
	req.Equal("carol", DeriveDisplayName("carol"))
}

func TestDeriveDisplayName_IsDeterministic(t *testing.T) {
	req := require.New(t)

	first := DeriveDisplayName("dave@example.org")
	second := DeriveDisplayName("dave@example.org")
	req.Equal(first, second)
}

func TestNewSession_KeepsTransportAssignedID(t *testing.T) {
	req := require.New(t)

	id := uuid.New()
	session := NewSession(id, "alice")
	req.Equal(id, session.ID)
	req.Equal("alice", session.DisplayName)
}
