package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something scheduled to happen during a trip.
// Activities are immutable once created.
type Activity struct {
	ID       uuid.UUID
	TripID   uuid.UUID
	Title    string
	OccursAt time.Time
}

// DayActivities is one calendar day of a trip together with the activities
// that fall on it, in occurs_at order.
type DayActivities struct {
	Date       time.Time
	Activities []Activity
}
