// Package domain contains the core data types for the planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, notify, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; participants, activities and links belong to a trip.
// IsConfirmed flips from false to true once, when the owner follows the emailed link.
type Trip struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	IsConfirmed bool
	CreatedAt   time.Time
}
