package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person travelling on a trip.
// Every trip has exactly one owner, created together with the trip and
// confirmed from the start. Invitees start unconfirmed.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        *string // nil when the invite did not carry a name
	Email       string
	IsOwner     bool
	IsConfirmed bool
	CreatedAt   time.Time
}
